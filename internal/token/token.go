// Пакет token определяет базовые типы для представления лексем (токенов),
// выделяемых лексическим анализатором (лексером), а также их позиций в исходном коде.
package token

import "strconv"

// TokenType — перечисление возможных типов токенов, которые может распознать лексер.
// Каждый тип соответствует определённой категории лексем в языке.
type TokenType int

const (
	// EOF — маркер конца входного потока (end-of-text).
	// Указывает, что лексер достиг конца исходного кода.
	EOF TokenType = iota

	// IDENT — идентификатор: имя переменной или функции.
	// Примеры: x, my_var, is_prime.
	IDENT

	// KEYWORD — зарезервированное ключевое слово языка.
	// Примеры: fn, if, else, for, switch, break, return, as.
	KEYWORD

	// TYPE — имя типа: i64, f64, str, bool, а также маркер void
	// для возвращаемого типа функции.
	TYPE

	// INT — целочисленный литерал. Значение декодируется лексером
	// в поле Int (64-битное знаковое).
	INT

	// FLOAT — литерал с плавающей точкой (binary64).
	// Значение декодируется лексером в поле Float.
	FLOAT

	// STRING — строковый литерал. В поле Literal лежит уже раскодированное
	// содержимое (escape-последовательности обработаны).
	STRING

	// BOOL — булев литерал true или false.
	BOOL

	// OPERATOR — операторы языка.
	// Примеры: +, -, ==, !=, &&, ||, ->, =.
	OPERATOR

	// PUNCT — пунктуационные символы (разделители).
	// Примеры: (, ), {, }, ,, :.
	PUNCT

	// TERMINATOR — отдельный токен для точки с запятой ';',
	// используемой как завершитель операторов.
	TERMINATOR

	// ILLEGAL — недопустимый или не распознанный токен.
	ILLEGAL
)

// Position представляет позицию символа в исходном коде.
// Нумерация строк и колонок начинается с 1 (1-based).
type Position struct {
	Line int // Номер строки (начиная с 1).
	Col  int // Номер колонки (начиная с 1).
}

// String возвращает позицию в виде "line:col".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Token представляет один лексический токен, полученный в результате анализа исходного кода.
type Token struct {
	Type    TokenType // Основной тип токена (см. константы выше).
	Literal string    // Текст токена: лексема для идентификаторов/ключевых слов, раскодированное содержимое для строк.
	Int     int64     // Декодированное значение для INT.
	Float   float64   // Декодированное значение для FLOAT.
	Bool    bool      // Декодированное значение для BOOL.
	Line    int       // Номер строки, в которой начинается токен (1-based).
	Col     int       // Номер колонки начала токена (1-based).
}

// Pos возвращает позицию токена в виде структуры Position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Col: t.Col}
}

// String возвращает человекочитаемое строковое представление токена,
// включая его тип и полезную нагрузку.
// Используется в основном для отладки и диагностических сообщений.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT(" + t.Literal + ")"
	case KEYWORD:
		return "KEYWORD(" + t.Literal + ")"
	case TYPE:
		return "TYPE(" + t.Literal + ")"
	case INT:
		return "INT(" + strconv.FormatInt(t.Int, 10) + ")"
	case FLOAT:
		return "FLOAT(" + strconv.FormatFloat(t.Float, 'g', -1, 64) + ")"
	case STRING:
		return "STRING(" + strconv.Quote(t.Literal) + ")"
	case BOOL:
		return "BOOL(" + strconv.FormatBool(t.Bool) + ")"
	case OPERATOR:
		return "OPERATOR(" + t.Literal + ")"
	case PUNCT:
		return "PUNCT(" + t.Literal + ")"
	case TERMINATOR:
		return "TERMINATOR"
	case ILLEGAL:
		return "ILLEGAL(" + t.Literal + ")"
	default:
		return "UNKNOWN"
	}
}
