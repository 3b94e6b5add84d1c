// Пакет lexer: основная логика лексирования. Токены выдаются лениво,
// по одному на вызов NextToken; Lex собирает весь поток целиком.
package lexer

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"github.com/semetekare/minilang/internal/token"
)

// Значения по умолчанию для лимитов лексера.
const (
	DefaultMaxCommentLen = 500
	DefaultMaxIdentLen   = 64
)

// LexError представляет фатальную ошибку лексического анализа.
// Содержит диагностическое сообщение и позицию в исходном коде.
type LexError struct {
	Msg string
	Pos token.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Lex error at %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// Warning представляет нефатальное замечание лексера (например, незакрытая строка).
// Политику обработки предупреждений определяет вызывающая сторона через обработчик.
type Warning struct {
	Msg string
	Pos token.Position
}

func (w Warning) String() string {
	return fmt.Sprintf("Warning at %d:%d: %s", w.Pos.Line, w.Pos.Col, w.Msg)
}

// LexerUseCase — интерфейс лексера. Отделяет реализацию от места вызова.
type LexerUseCase interface {
	// Lex принимает входную строку и возвращает слайс токенов или ошибку.
	Lex(input string) ([]token.Token, error)
}

// Lexer — лексический анализатор. Читает руны из Scanner и формирует токены
// по требованию. Лимиты и обработчик предупреждений настраиваются полями.
type Lexer struct {
	sc            *Scanner        // сканер исходного текста
	warn          func(Warning)   // обработчик предупреждений (может быть nil)
	MaxCommentLen int             // максимальная длина комментария до предупреждения
	MaxIdentLen   int             // максимальная длина идентификатора до предупреждения
	keywords      map[string]bool // таблица ключевых слов
	types         map[string]bool // таблица имён типов
}

// NewLexer создаёт и инициализирует новый лексер с лимитами по умолчанию.
func NewLexer() *Lexer {
	return &Lexer{
		MaxCommentLen: DefaultMaxCommentLen,
		MaxIdentLen:   DefaultMaxIdentLen,
		keywords:      Keywords,
		types:         Types,
	}
}

// SetWarningHandler устанавливает обработчик нефатальных предупреждений.
func (l *Lexer) SetWarningHandler(h func(Warning)) { l.warn = h }

// Reset подготавливает лексер к разбору новой входной строки.
// После Reset токены выдаются вызовами NextToken.
func (l *Lexer) Reset(input string) {
	l.sc = NewScanner(input)
}

// Lex запускает разбор входной строки целиком и возвращает слайс токенов,
// включая завершающий EOF. Основная точка входа для пакетного использования.
func (l *Lexer) Lex(input string) ([]token.Token, error) {
	l.Reset(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// emitWarning передаёт предупреждение установленному обработчику.
func (l *Lexer) emitWarning(msg string, pos token.Position) {
	if l.warn != nil {
		l.warn(Warning{Msg: msg, Pos: pos})
	}
}

// NextToken пропускает пробелы и комментарии и возвращает ровно один токен.
// На конце входа возвращается токен EOF; каждый последующий вызов также вернёт EOF.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.sc.Pos()
	tok := token.Token{Line: pos.Line, Col: pos.Col}
	ch := l.sc.Ch()

	switch {
	case ch == 0:
		tok.Type = token.EOF
		return tok, nil
	case unicode.IsLetter(ch):
		return l.readIdentifier(tok)
	case unicode.IsDigit(ch):
		return l.readNumber(tok)
	case ch == '"':
		return l.readString(tok)
	default:
		return l.readOpOrPunct(tok)
	}
}

// skipWhitespaceAndComments пропускает пробельные символы и комментарии
// (от '#' до конца строки). Слишком длинный комментарий вызывает предупреждение.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for unicode.IsSpace(l.sc.Ch()) {
			l.sc.Next()
		}
		if l.sc.Ch() != '#' {
			return
		}
		pos := l.sc.Pos()
		length := 0
		for l.sc.Ch() != '\n' && l.sc.Ch() != 0 {
			length++
			l.sc.Next()
		}
		if length > l.MaxCommentLen {
			l.emitWarning(fmt.Sprintf("Comment exceeds maximum length of %d characters", l.MaxCommentLen), pos)
		}
	}
}

// readIdentifier читает идентификатор и классифицирует его по таблицам:
// ключевое слово, имя типа, булев литерал или обычный идентификатор.
func (l *Lexer) readIdentifier(tok token.Token) (token.Token, error) {
	var name []rune
	for unicode.IsLetter(l.sc.Ch()) || unicode.IsDigit(l.sc.Ch()) || l.sc.Ch() == '_' {
		name = append(name, l.sc.Ch())
		l.sc.Next()
	}
	if len(name) > l.MaxIdentLen {
		l.emitWarning(fmt.Sprintf("Identifier exceeds maximum length of %d characters", l.MaxIdentLen), tok.Pos())
	}
	ident := string(name)
	tok.Literal = ident
	switch {
	case ident == "true" || ident == "false":
		tok.Type = token.BOOL
		tok.Bool = ident == "true"
	case l.keywords[ident]:
		tok.Type = token.KEYWORD
	case l.types[ident]:
		tok.Type = token.TYPE
	default:
		tok.Type = token.IDENT
	}
	return tok, nil
}

// readNumber читает целый или дробный литерал. Целая часть накапливается
// проверяемо: переполнение 64-битного знакового — фатальная ошибка.
// Дробный литерал — целая часть, точка и ноль или более цифр; значение
// округляется к ближайшему представимому f64.
func (l *Lexer) readNumber(tok token.Token) (token.Token, error) {
	var lexeme []rune
	var acc int64
	if l.sc.Ch() == '0' {
		lexeme = append(lexeme, '0')
		l.sc.Next()
	} else {
		for unicode.IsDigit(l.sc.Ch()) {
			d := int64(l.sc.Ch() - '0')
			if acc > (math.MaxInt64-d)/10 {
				return tok, &LexError{Msg: "Overflow occurred while parsing integer", Pos: tok.Pos()}
			}
			acc = acc*10 + d
			lexeme = append(lexeme, l.sc.Ch())
			l.sc.Next()
		}
	}

	if l.sc.Ch() != '.' {
		tok.Type = token.INT
		tok.Int = acc
		tok.Literal = string(lexeme)
		return tok, nil
	}

	lexeme = append(lexeme, '.')
	l.sc.Next()
	for unicode.IsDigit(l.sc.Ch()) {
		lexeme = append(lexeme, l.sc.Ch())
		l.sc.Next()
	}
	val, err := strconv.ParseFloat(string(lexeme), 64)
	if err != nil {
		// Лексема вида "1." — ParseFloat её принимает; целая часть уже ограничена
		// проверкой переполнения i64, поэтому на практике эта ветка недостижима.
		return tok, &LexError{Msg: fmt.Sprintf("Malformed float literal '%s'", string(lexeme)), Pos: tok.Pos()}
	}
	tok.Type = token.FLOAT
	tok.Float = val
	tok.Literal = string(lexeme)
	return tok, nil
}

// readString читает строковый литерал в двойных кавычках и раскодирует
// escape-последовательности \" \\ \n \t. Неизвестная последовательность
// проходит без изменений и вызывает предупреждение. Незакрытая строка
// (конец строки или конец текста до закрывающей кавычки) вызывает
// предупреждение "String not closed", частичное содержимое возвращается.
func (l *Lexer) readString(tok token.Token) (token.Token, error) {
	l.sc.Next() // пропускаем открывающую кавычку
	var content []rune
	for {
		ch := l.sc.Ch()
		if ch == '"' {
			l.sc.Next()
			break
		}
		if ch == 0 || ch == '\n' {
			l.emitWarning("String not closed", tok.Pos())
			break
		}
		if ch == '\\' {
			esc := l.sc.Next()
			switch esc {
			case '"':
				content = append(content, '"')
			case '\\':
				content = append(content, '\\')
			case 'n':
				content = append(content, '\n')
			case 't':
				content = append(content, '\t')
			case 0:
				continue // незакрытая строка, обработается на следующей итерации
			default:
				content = append(content, '\\', esc)
				l.emitWarning(fmt.Sprintf("Unknown escape sequence '\\%c'", esc), l.sc.Pos())
			}
			l.sc.Next()
			continue
		}
		content = append(content, ch)
		l.sc.Next()
	}
	tok.Type = token.STRING
	tok.Literal = string(content)
	return tok, nil
}

// readOpOrPunct читает операторы и пунктуацию, пытаясь сначала матчить
// двухсимвольные, затем односимвольные последовательности. Одиночный '|'
// трактуется как опечатка: выдаётся предупреждение и токен '||'.
func (l *Lexer) readOpOrPunct(tok token.Token) (token.Token, error) {
	b1 := string(l.sc.Ch())
	b2 := b1 + string(l.sc.Peek())

	if Operators[b2] {
		l.sc.Next()
		l.sc.Next()
		tok.Type = token.OPERATOR
		tok.Literal = b2
		return tok, nil
	}
	if b1 == "|" {
		l.sc.Next()
		l.emitWarning("Expected '|'", tok.Pos())
		tok.Type = token.OPERATOR
		tok.Literal = "||"
		return tok, nil
	}
	if b1 == ";" {
		l.sc.Next()
		tok.Type = token.TERMINATOR
		tok.Literal = ";"
		return tok, nil
	}
	if Operators[b1] {
		l.sc.Next()
		tok.Type = token.OPERATOR
		tok.Literal = b1
		return tok, nil
	}
	if Punctuations[b1] {
		l.sc.Next()
		tok.Type = token.PUNCT
		tok.Literal = b1
		return tok, nil
	}
	return tok, &LexError{Msg: fmt.Sprintf("Unknown character '%c'", l.sc.Ch()), Pos: tok.Pos()}
}
