// internal/parser/parser.go

// Package parser реализует рекурсивно-нисходящий парсер с базовым восстановлением после ошибок.
package parser

import (
	"fmt"

	"github.com/semetekare/minilang/internal/ast"
	"github.com/semetekare/minilang/internal/lexer"
	"github.com/semetekare/minilang/internal/token"
)

// Parser — основной парсер, управляющий процессом синтаксического анализа.
// Поддерживает сбор ошибок и базовое восстановление после синтаксических ошибок (error recovery).
type Parser struct {
	stream TokenStream     // Поток токенов, полученный от лексического анализатора.
	errors []ParseError    // Список накопленных ошибок парсинга.
	funcs  map[string]bool // Имена уже объявленных функций, включая встроенные.
}

// stmtStart — ключевые слова, с которых может начинаться новая конструкция.
// Используются как точки синхронизации при восстановлении после ошибок.
var stmtStart = map[string]bool{
	"fn": true, "if": true, "for": true, "switch": true, "return": true, "break": true,
}

// ParseError представляет ошибку синтаксического анализа.
// Содержит диагностическое сообщение, токен, вызвавший ошибку, и его позицию в исходном коде.
type ParseError struct {
	Msg string         // Описание ошибки.
	Tok token.Token    // Токен, при обработке которого возникла ошибка.
	Pos token.Position // Позиция токена в исходном файле.
}

// String возвращает человекочитаемое строковое представление ошибки парсинга.
func (pe ParseError) String() string {
	return fmt.Sprintf("Parse error at %d:%d: %s (got '%s')", pe.Pos.Line, pe.Pos.Col, pe.Msg, pe.Tok.Literal)
}

// Error реализует интерфейс error.
func (pe ParseError) Error() string { return pe.String() }

// NewParser создаёт новый экземпляр парсера из списка токенов.
// Токены должны быть получены от лексического анализатора (lexer).
// Имена встроенных функций заранее зарезервированы: объявление функции
// print, input или mod считается переобъявлением.
func NewParser(tokens []token.Token) *Parser {
	funcs := make(map[string]bool, len(lexer.Builtins))
	for name := range lexer.Builtins {
		funcs[name] = true
	}
	return &Parser{stream: NewTokenStream(tokens), funcs: funcs}
}

// ParseProgram запускает полный синтаксический анализ входного потока токенов.
// Возвращает корневой узел AST (Program) и список всех обнаруженных ошибок.
// Даже при наличии ошибок парсер пытается построить частично корректное AST;
// решение об остановке конвейера принимает вызывающая сторона.
func (p *Parser) ParseProgram() (*ast.Program, []ParseError) {
	pos := p.stream.Pos()
	items := []ast.Item{}
	for !p.stream.IsEOF() {
		item := p.parseItem()
		if item != nil {
			items = append(items, item)
		} else {
			// Ошибка в элементе верхнего уровня: восстанавливаемся,
			// чтобы не зациклиться на проблемном токене.
			if p.stream.IsEOF() {
				break
			}
			p.recover(";", "}")
		}
	}
	return ast.NewProgram(pos, items), p.errors
}

// Errors возвращает накопленные ошибки парсинга.
func (p *Parser) Errors() []ParseError { return p.errors }

// error добавляет новую ошибку в список ошибок парсера.
// Принимает диагностическое сообщение и токен, вызвавший ошибку.
func (p *Parser) error(msg string, tok token.Token) {
	p.errors = append(p.errors, ParseError{Msg: msg, Tok: tok, Pos: tok.Pos()})
}

// recover реализует базовую стратегию восстановления после ошибки (error recovery).
// Пропускает токены до тех пор, пока не встретит один из указанных синхронизирующих токенов,
// чтобы позволить парсеру продолжить работу.
// Возвращает true, если восстановление было выполнено (в том числе при достижении EOF).
// Если ошибок нет, восстановление не требуется и функция возвращает false.
func (p *Parser) recover(syncs ...string) bool {
	if len(p.errors) == 0 {
		return false
	}
	for !p.stream.IsEOF() {
		tok := p.stream.Peek()
		// Закрывающую скобку блока не потребляем: её обработает parseBlock.
		if tok.Type == token.PUNCT && tok.Literal == "}" {
			return true
		}
		// Токен, с которого может начаться новая конструкция, тоже
		// оставляем в потоке: с него продолжится обычный разбор.
		if tok.Type == token.TYPE || (tok.Type == token.KEYWORD && stmtStart[tok.Literal]) {
			return true
		}
		// Если текущий токен — один из заданных синхронизирующих литералов,
		// потребляем его и завершаем восстановление.
		for _, s := range syncs {
			if tok.Literal == s {
				p.stream.Next()
				return true
			}
		}
		// Явный конец оператора тоже служит точкой синхронизации.
		if tok.Type == token.TERMINATOR {
			p.stream.Next()
			return true
		}
		p.stream.Next()
	}
	return true
}

// expect проверяет, что следующий токен соответствует ожидаемому типу и/или литералу.
// Если нет — регистрирует ошибку и возвращает текущий токен.
// Если да — потребляет токен и возвращает его.
// Параметр `desc` используется в сообщении об ошибке для пояснения контекста.
func (p *Parser) expect(typ token.TokenType, lit string, desc string) token.Token {
	if p.stream.IsEOF() {
		p.error(fmt.Sprintf("expected %s but got EOF", desc), token.Token{Type: token.EOF})
		return token.Token{Type: token.EOF}
	}

	tok := p.stream.Peek()
	match := tok.Type == typ
	if lit != "" {
		match = match && tok.Literal == lit
	}

	if !match {
		if desc == "" {
			desc = lit
		}
		p.error(fmt.Sprintf("expected %s (got '%s')", desc, tok.Literal), tok)
		return tok
	}

	return p.stream.Next()
}

// peekIs возвращает true, если следующий токен имеет заданный тип и литерал.
func (p *Parser) peekIs(typ token.TokenType, lit string) bool {
	tok := p.stream.Peek()
	return tok.Type == typ && tok.Literal == lit
}
