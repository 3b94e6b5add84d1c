// Package interp - модель значений и арифметика.
//
// Value — помеченный вариант над четырьмя хранимыми типами языка.
// Вся арифметика, сравнения и приведения типов сосредоточены здесь:
// интерпретатор лишь выбирает операцию по узлу AST.
package interp

import (
	"math"
	"strconv"

	"github.com/semetekare/minilang/internal/ast"
	"github.com/semetekare/minilang/internal/token"
)

// Value представляет значение времени выполнения одного из типов
// i64, f64, str или bool. Значения принадлежат своей области видимости
// и копируются при передаче по значению.
type Value struct {
	typ ast.ValueType
	i   int64
	f   float64
	s   string
	b   bool
}

// IntValue создаёт значение типа i64.
func IntValue(v int64) Value { return Value{typ: ast.I64, i: v} }

// FloatValue создаёт значение типа f64.
func FloatValue(v float64) Value { return Value{typ: ast.F64, f: v} }

// StrValue создаёт значение типа str.
func StrValue(v string) Value { return Value{typ: ast.Str, s: v} }

// BoolValue создаёт значение типа bool.
func BoolValue(v bool) Value { return Value{typ: ast.Bool, b: v} }

// DefaultValue возвращает значение по умолчанию для типа:
// i64=0, f64=0.0, str="", bool=false.
func DefaultValue(t ast.ValueType) Value {
	return Value{typ: t}
}

// Type возвращает тип значения.
func (v Value) Type() ast.ValueType { return v.typ }

// Int возвращает целое значение (для типа i64).
func (v Value) Int() int64 { return v.i }

// Float возвращает дробное значение (для типа f64).
func (v Value) Float() float64 { return v.f }

// Str возвращает строковое значение (для типа str).
func (v Value) Str() string { return v.s }

// Bool возвращает логическое значение (для типа bool).
func (v Value) Bool() bool { return v.b }

// Format возвращает каноническую строковую форму значения:
// для i64 — десятичную запись, для f64 — кратчайшую однозначно
// восстановимую форму, для bool — true/false, строки — как есть.
func (v Value) Format() string {
	switch v.typ {
	case ast.I64:
		return strconv.FormatInt(v.i, 10)
	case ast.F64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ast.Str:
		return v.s
	case ast.Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// bothNumeric возвращает true, если оба значения одного числового типа.
func bothNumeric(a, b Value) bool {
	return a.typ == b.typ && (a.typ == ast.I64 || a.typ == ast.F64)
}

// Add складывает два значения. Для i64 операция проверяемая, для f64 —
// по правилам IEEE-754; сложение двух строк означает конкатенацию.
// Смешение i64 и f64 без явного приведения — ошибка.
func Add(a, b Value, pos token.Position) (Value, error) {
	if a.typ == ast.Str && b.typ == ast.Str {
		return StrValue(a.s + b.s), nil
	}
	if !bothNumeric(a, b) {
		return Value{}, newError(pos, "Cannot perform addition between values of type '%s' and '%s'", a.typ, b.typ)
	}
	if a.typ == ast.F64 {
		return FloatValue(a.f + b.f), nil
	}
	if (b.i > 0 && a.i > math.MaxInt64-b.i) || (b.i < 0 && a.i < math.MinInt64-b.i) {
		return Value{}, newError(pos, "Integer overflow occurred during addition")
	}
	return IntValue(a.i + b.i), nil
}

// Sub вычитает b из a. Для i64 операция проверяемая.
func Sub(a, b Value, pos token.Position) (Value, error) {
	if !bothNumeric(a, b) {
		return Value{}, newError(pos, "Cannot perform subtraction between values of type '%s' and '%s'", a.typ, b.typ)
	}
	if a.typ == ast.F64 {
		return FloatValue(a.f - b.f), nil
	}
	if (b.i < 0 && a.i > math.MaxInt64+b.i) || (b.i > 0 && a.i < math.MinInt64+b.i) {
		return Value{}, newError(pos, "Integer overflow occurred during subtraction")
	}
	return IntValue(a.i - b.i), nil
}

// Mul умножает два значения. Для i64 операция проверяемая.
func Mul(a, b Value, pos token.Position) (Value, error) {
	if !bothNumeric(a, b) {
		return Value{}, newError(pos, "Cannot perform multiplication between values of type '%s' and '%s'", a.typ, b.typ)
	}
	if a.typ == ast.F64 {
		return FloatValue(a.f * b.f), nil
	}
	if mulOverflows(a.i, b.i) {
		return Value{}, newError(pos, "Integer overflow occurred during multiplication")
	}
	return IntValue(a.i * b.i), nil
}

// mulOverflows проверяет переполнение знакового 64-битного умножения.
func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return true
	}
	c := a * b
	return c/b != a
}

// Div делит a на b. Деление i64 на ноль и переполнение — ошибки;
// деление f64 следует IEEE-754 (NaN и Inf распространяются молча).
func Div(a, b Value, pos token.Position) (Value, error) {
	if !bothNumeric(a, b) {
		return Value{}, newError(pos, "Cannot perform division between values of type '%s' and '%s'", a.typ, b.typ)
	}
	if a.typ == ast.F64 {
		return FloatValue(a.f / b.f), nil
	}
	if b.i == 0 {
		return Value{}, newError(pos, "Division by zero")
	}
	if a.i == math.MinInt64 && b.i == -1 {
		return Value{}, newError(pos, "Integer overflow occurred during division")
	}
	return IntValue(a.i / b.i), nil
}

// Compare выполняет сравнение значений одного типа и возвращает bool.
// Строки сравниваются лексикографически по кодовым единицам.
func Compare(op string, a, b Value, pos token.Position) (Value, error) {
	if a.typ != b.typ {
		return Value{}, newError(pos, "Cannot compare values of type '%s' and '%s'", a.typ, b.typ)
	}
	var lt, eq bool
	switch a.typ {
	case ast.I64:
		lt, eq = a.i < b.i, a.i == b.i
	case ast.F64:
		lt, eq = a.f < b.f, a.f == b.f
	case ast.Str:
		lt, eq = a.s < b.s, a.s == b.s
	case ast.Bool:
		if op != "==" && op != "!=" {
			return Value{}, newError(pos, "Cannot perform ordering comparison on values of type 'bool'")
		}
		eq = a.b == b.b
	}
	switch op {
	case "==":
		return BoolValue(eq), nil
	case "!=":
		return BoolValue(!eq), nil
	case "<":
		return BoolValue(lt), nil
	case "<=":
		return BoolValue(lt || eq), nil
	case ">":
		return BoolValue(!lt && !eq), nil
	case ">=":
		return BoolValue(!lt), nil
	default:
		return Value{}, newError(pos, "Unknown comparison operator '%s'", op)
	}
}

// Neg выполняет числовое отрицание. Отрицание минимального i64 — переполнение.
func Neg(v Value, pos token.Position) (Value, error) {
	switch v.typ {
	case ast.I64:
		if v.i == math.MinInt64 {
			return Value{}, newError(pos, "Integer overflow occurred during negation")
		}
		return IntValue(-v.i), nil
	case ast.F64:
		return FloatValue(-v.f), nil
	default:
		return Value{}, newError(pos, "Cannot negate value of type '%s'", v.typ)
	}
}

// Not выполняет логическое отрицание значения типа bool.
func Not(v Value, pos token.Position) (Value, error) {
	if v.typ != ast.Bool {
		return Value{}, newError(pos, "Operator '!' requires value of type 'bool', got '%s'", v.typ)
	}
	return BoolValue(!v.b), nil
}

// Cast приводит значение к целевому типу по правилам языка.
// Приведение к собственному типу — тождественная операция.
func Cast(v Value, to ast.ValueType, pos token.Position) (Value, error) {
	if v.typ == to {
		return v, nil
	}
	switch v.typ {
	case ast.I64:
		switch to {
		case ast.F64:
			return FloatValue(float64(v.i)), nil
		case ast.Str:
			return StrValue(v.Format()), nil
		case ast.Bool:
			return BoolValue(v.i > 0), nil
		}
	case ast.F64:
		switch to {
		case ast.I64:
			t := math.Trunc(v.f)
			// Граница 2^63 представима в f64 точно, сравнение корректно.
			if math.IsNaN(t) || t >= 9223372036854775808.0 || t < -9223372036854775808.0 {
				return Value{}, newError(pos, "Float value '%s' is out of range for type 'i64'", v.Format())
			}
			return IntValue(int64(t)), nil
		case ast.Str:
			return StrValue(v.Format()), nil
		case ast.Bool:
			return BoolValue(v.f > 0), nil
		}
	case ast.Str:
		switch to {
		case ast.I64:
			n, err := strconv.ParseInt(v.s, 10, 64)
			if err != nil {
				return Value{}, newError(pos, "Cannot cast String '%s' to i64", v.s)
			}
			return IntValue(n), nil
		case ast.F64:
			f, err := strconv.ParseFloat(v.s, 64)
			if err != nil {
				return Value{}, newError(pos, "Cannot cast String '%s' to f64", v.s)
			}
			return FloatValue(f), nil
		case ast.Bool:
			return BoolValue(v.s != ""), nil
		}
	}
	return Value{}, newError(pos, "Cannot cast value of type '%s' to '%s'", v.typ, to)
}
