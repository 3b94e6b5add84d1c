// Пакет lexer: статические таблицы ключевых слов/типов/операторов/пунктуации.
package lexer

// Keywords содержит зарезервированные слова языка.
var Keywords = map[string]bool{
	"fn": true, "if": true, "else": true, "for": true, "switch": true,
	"break": true, "return": true, "as": true,
}

// Types содержит имена типов. void допустим только как возвращаемый тип функции,
// это проверяет парсер.
var Types = map[string]bool{
	"i64": true, "f64": true, "str": true, "bool": true, "void": true,
}

// Operators содержит операторы (включая двухсимвольные).
var Operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"=": true, "==": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "&&": true, "||": true, "->": true,
	"!": true, "&": true,
}

// Punctuations содержит пунктуацию-разделители.
var Punctuations = map[string]bool{
	"{": true, "}": true, "(": true, ")": true,
	",": true, ":": true,
}

// Builtins содержит имена встроенных функций. Эти имена зарезервированы:
// объявить функцию с таким именем нельзя.
var Builtins = map[string]bool{
	"print": true, "input": true, "mod": true,
}
