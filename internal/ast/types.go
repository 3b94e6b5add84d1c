// internal/ast/types.go

// Типы значений языка. Четыре хранимых типа и маркер void,
// допустимый только как возвращаемый тип функции.
package ast

// ValueType — перечисление типов языка.
type ValueType int

const (
	// I64 — 64-битное знаковое целое.
	I64 ValueType = iota
	// F64 — IEEE-754 binary64.
	F64
	// Str — неизменяемая строка UTF-8.
	Str
	// Bool — логический тип.
	Bool
	// Void — маркер «функция ничего не возвращает». Переменной такого типа быть не может.
	Void
)

// String возвращает имя типа так, как оно пишется в исходном коде.
func (t ValueType) String() string {
	switch t {
	case I64:
		return "i64"
	case F64:
		return "f64"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// TypeFromName возвращает ValueType по имени типа из исходного кода.
// Второй результат false, если имя не является именем типа.
func TypeFromName(name string) (ValueType, bool) {
	switch name {
	case "i64":
		return I64, true
	case "f64":
		return F64, true
	case "str":
		return Str, true
	case "bool":
		return Bool, true
	case "void":
		return Void, true
	default:
		return Void, false
	}
}
