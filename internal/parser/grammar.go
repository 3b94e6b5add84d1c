// internal/parser/grammar.go

// Package parser реализует рекурсивный спуск по грамматике языка:
// программа состоит из объявлений функций и операторов, выражения
// разбираются по уровням приоритета.
package parser

import (
	"fmt"

	"github.com/semetekare/minilang/internal/ast"
	"github.com/semetekare/minilang/internal/token"
)

// relOps — операторы сравнения. Уровень сравнения нецепочечный:
// между соседними операндами уровня "&&"/"||" допустимо не более одного
// сравнения без скобок ("a < b && c < d" допустимо, "a < b < c" — нет).
var relOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// parseItem парсит элемент верхнего уровня: объявление функции или оператор.
// Грамматика: program ::= { function_declaration | statement }
func (p *Parser) parseItem() ast.Item {
	tok := p.stream.Peek()
	if tok.Type == token.KEYWORD && tok.Literal == "fn" {
		if fn := p.parseFunctionDecl(); fn != nil {
			return fn
		}
		return nil
	}
	if stmt := p.parseStatement(); stmt != nil {
		return stmt
	}
	return nil
}

// parseFunctionDecl парсит объявление функции.
// Грамматика: "fn" identifier "(" parameters ")" ":" (type | "void") block
// Повторное объявление функции (включая имена встроенных print, input, mod)
// регистрируется как ошибка парсинга.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	fnTok := p.stream.Next() // потребляем "fn"
	nameTok := p.expect(token.IDENT, "", "function name after fn")
	if nameTok.Type != token.IDENT {
		return nil
	}
	if p.funcs[nameTok.Literal] {
		p.error(fmt.Sprintf("Redeclaration of function '%s'", nameTok.Literal), nameTok)
	}
	p.funcs[nameTok.Literal] = true

	p.expect(token.PUNCT, "(", "(")
	params := p.parseParameters()
	p.expect(token.PUNCT, ")", ")")
	p.expect(token.PUNCT, ":", "':' before return type")

	retTok := p.expect(token.TYPE, "", "return type")
	retType := ast.Void
	if retTok.Type == token.TYPE {
		retType, _ = ast.TypeFromName(retTok.Literal)
	}

	body := p.parseBlock()
	return ast.NewFunctionDecl(fnTok.Pos(), nameTok.Literal, params, retType, body)
}

// parseParameters парсит список параметров функции.
// Грамматика: parameters ::= [ parameter { "," parameter } ]
// parameter ::= [ "&" ] type identifier
func (p *Parser) parseParameters() []ast.Param {
	params := []ast.Param{}
	for !p.stream.IsEOF() && !p.peekIs(token.PUNCT, ")") {
		pos := p.stream.Pos()
		byRef := false
		if p.peekIs(token.OPERATOR, "&") {
			p.stream.Next()
			byRef = true
		}
		typeTok := p.expect(token.TYPE, "", "parameter type")
		if typeTok.Type != token.TYPE {
			break
		}
		paramType, _ := ast.TypeFromName(typeTok.Literal)
		if paramType == ast.Void {
			p.error("Parameter cannot be of type 'void'", typeTok)
		}
		nameTok := p.expect(token.IDENT, "", "parameter name")
		params = append(params, *ast.NewParam(pos, byRef, paramType, nameTok.Literal))
		if p.peekIs(token.PUNCT, ",") {
			p.stream.Next()
			continue
		}
		break
	}
	return params
}

// parseBlock парсит блок кода, ограниченный фигурными скобками.
// Грамматика: block ::= "{" { statement } "}"
// При ошибке в одном из операторов вызывает метод восстановления recover,
// чтобы продолжить парсинг последующих операторов.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.stream.Pos()
	p.expect(token.PUNCT, "{", "{")
	stmts := []ast.Stmt{}
	for !p.stream.IsEOF() && !p.peekIs(token.PUNCT, "}") {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.recover(";")
		}
	}
	p.expect(token.PUNCT, "}", "}")
	return ast.NewBlock(pos, stmts)
}

// parseStatement парсит один оператор. Диспетчеризация идёт по первому токену:
// имя типа начинает объявление, if/for/switch — управляющие конструкции,
// идентификатор — присваивание или вызов.
func (p *Parser) parseStatement() ast.Stmt {
	tok := p.stream.Peek()
	switch tok.Type {
	case token.TYPE:
		decl := p.parseDeclaration()
		if decl == nil {
			return nil
		}
		p.expect(token.TERMINATOR, ";", "';' after declaration")
		return decl
	case token.KEYWORD:
		switch tok.Literal {
		case "if":
			return p.parseIfStmt()
		case "for":
			return p.parseForStmt()
		case "switch":
			return p.parseSwitchStmt()
		case "return":
			stmt := p.parseReturnStmt()
			p.expect(token.TERMINATOR, ";", "';' after return")
			return stmt
		case "break":
			breakTok := p.stream.Next()
			p.expect(token.TERMINATOR, ";", "';' after break")
			return ast.NewBreakStmt(breakTok.Pos())
		}
	case token.IDENT:
		stmt := p.parseAssignOrCall()
		if stmt == nil {
			return nil
		}
		p.expect(token.TERMINATOR, ";", "';' after statement")
		return stmt
	}
	p.error("expected statement", tok)
	p.stream.Next() // потребляем токен, вызвавший ошибку
	return nil
}

// parseDeclaration парсит объявление переменной без завершающей точки с запятой.
// Грамматика: declaration ::= type identifier [ "=" expression ]
// Тип void для переменной недопустим.
func (p *Parser) parseDeclaration() *ast.DeclStmt {
	typeTok := p.stream.Next()
	declType, _ := ast.TypeFromName(typeTok.Literal)
	if declType == ast.Void {
		p.error("Variable cannot be of type 'void'", typeTok)
		return nil
	}
	nameTok := p.expect(token.IDENT, "", "variable name")
	if nameTok.Type != token.IDENT {
		return nil
	}
	var init ast.Expr
	if p.peekIs(token.OPERATOR, "=") {
		p.stream.Next()
		init = p.parseExpression()
		if init == nil {
			return nil
		}
	}
	return ast.NewDeclStmt(typeTok.Pos(), declType, nameTok.Literal, init)
}

// parseAssignOrCall различает присваивание и вызов по токену,
// следующему за идентификатором: "=" начинает присваивание, "(" — вызов.
func (p *Parser) parseAssignOrCall() ast.Stmt {
	identTok := p.stream.Next()
	next := p.stream.Peek()
	if next.Type == token.OPERATOR && next.Literal == "=" {
		p.stream.Next()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		return ast.NewAssignStmt(identTok.Pos(), identTok.Literal, value)
	}
	if next.Type == token.PUNCT && next.Literal == "(" {
		return ast.NewCallStmt(identTok.Pos(), p.parseCallArgs(identTok))
	}
	p.error("expected '=' or '(' after identifier", next)
	return nil
}

// parseCallArgs парсит список аргументов вызова, начиная с открывающей скобки.
// Грамматика: arguments ::= [ argument { "," argument } ]
// argument ::= [ "&" ] expression
// Всегда возвращает узел вызова; ошибки в аргументах регистрируются,
// проблемные аргументы пропускаются до ',' или ')'.
func (p *Parser) parseCallArgs(identTok token.Token) *ast.CallExpr {
	p.expect(token.PUNCT, "(", "(")
	args := []*ast.Arg{}
	if !p.peekIs(token.PUNCT, ")") {
		for {
			pos := p.stream.Pos()
			byRef := false
			if p.peekIs(token.OPERATOR, "&") {
				p.stream.Next()
				byRef = true
			}
			expr := p.parseExpression()
			if expr != nil {
				args = append(args, ast.NewArg(pos, byRef, expr))
			} else {
				// Ошибка в аргументе: восстанавливаемся до ',' или ')'
				for !p.stream.IsEOF() && !p.peekIs(token.PUNCT, ",") && !p.peekIs(token.PUNCT, ")") {
					p.stream.Next()
				}
			}
			if p.peekIs(token.PUNCT, ",") {
				p.stream.Next()
				continue
			}
			break
		}
	}
	p.expect(token.PUNCT, ")", ")")
	return ast.NewCallExpr(identTok.Pos(), identTok.Literal, args)
}

// parseIfStmt парсит условный оператор.
// Грамматика: "if" "(" expression ")" block [ "else" block ]
func (p *Parser) parseIfStmt() ast.Stmt {
	ifTok := p.stream.Next() // потребляем "if"
	p.expect(token.PUNCT, "(", "(")
	cond := p.parseExpression()
	p.expect(token.PUNCT, ")", ")")
	if cond == nil {
		return nil
	}
	then := p.parseBlock()
	var els *ast.Block
	if p.peekIs(token.KEYWORD, "else") {
		p.stream.Next()
		els = p.parseBlock()
	}
	return ast.NewIfStmt(ifTok.Pos(), cond, then, els)
}

// parseForStmt парсит цикл for.
// Грамматика: "for" "(" [ declaration ] ";" expression ";" [ identifier "=" expression ] ")" block
// Объявленный в заголовке итератор виден только внутри тела цикла.
func (p *Parser) parseForStmt() ast.Stmt {
	forTok := p.stream.Next() // потребляем "for"
	p.expect(token.PUNCT, "(", "(")

	var init *ast.DeclStmt
	if p.stream.Peek().Type == token.TYPE {
		init = p.parseDeclaration()
	}
	p.expect(token.TERMINATOR, ";", "';' after loop declaration")

	cond := p.parseExpression()
	p.expect(token.TERMINATOR, ";", "';' after loop condition")

	var post *ast.AssignStmt
	if p.stream.Peek().Type == token.IDENT {
		identTok := p.stream.Next()
		p.expect(token.OPERATOR, "=", "'=' in loop step")
		value := p.parseExpression()
		if value != nil {
			post = ast.NewAssignStmt(identTok.Pos(), identTok.Literal, value)
		}
	}
	p.expect(token.PUNCT, ")", ")")
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	return ast.NewForStmt(forTok.Pos(), init, cond, post, body)
}

// parseSwitchStmt парсит оператор switch.
// Грамматика: "switch" "(" switch_expression { "," switch_expression } ")" "{" { switch_case } "}"
// switch_expression ::= expression [ ":" identifier ]
// switch_case ::= "(" expression ")" "->" block
func (p *Parser) parseSwitchStmt() ast.Stmt {
	swTok := p.stream.Next() // потребляем "switch"
	p.expect(token.PUNCT, "(", "(")

	exprs := []*ast.SwitchExpr{}
	for {
		pos := p.stream.Pos()
		value := p.parseExpression()
		if value == nil {
			// Ошибка в выражении заголовка: восстанавливаемся до ',' или ')'
			for !p.stream.IsEOF() && !p.peekIs(token.PUNCT, ",") && !p.peekIs(token.PUNCT, ")") {
				p.stream.Next()
			}
		} else {
			alias := ""
			if p.peekIs(token.PUNCT, ":") {
				p.stream.Next()
				aliasTok := p.expect(token.IDENT, "", "alias name after ':'")
				alias = aliasTok.Literal
			}
			exprs = append(exprs, ast.NewSwitchExpr(pos, value, alias))
		}
		if p.peekIs(token.PUNCT, ",") {
			p.stream.Next()
			continue
		}
		break
	}
	p.expect(token.PUNCT, ")", ")")
	p.expect(token.PUNCT, "{", "{")

	cases := []*ast.SwitchCase{}
	for !p.stream.IsEOF() && !p.peekIs(token.PUNCT, "}") {
		casePos := p.stream.Pos()
		p.expect(token.PUNCT, "(", "'(' before case condition")
		cond := p.parseExpression()
		p.expect(token.PUNCT, ")", ")")
		p.expect(token.OPERATOR, "->", "'->' after case condition")
		body := p.parseBlock()
		if cond == nil {
			continue
		}
		cases = append(cases, ast.NewSwitchCase(casePos, cond, body))
	}
	p.expect(token.PUNCT, "}", "}")

	if len(exprs) == 0 {
		p.error("switch requires at least one expression", swTok)
		return nil
	}
	return ast.NewSwitchStmt(swTok.Pos(), exprs, cases)
}

// parseReturnStmt парсит возврат из функции без завершающей точки с запятой.
// Грамматика: return_stmt ::= "return" [ expression ]
func (p *Parser) parseReturnStmt() ast.Stmt {
	retTok := p.stream.Next() // потребляем "return"
	var value ast.Expr
	if p.stream.Peek().Type != token.TERMINATOR {
		value = p.parseExpression()
	}
	return ast.NewReturnStmt(retTok.Pos(), value)
}

// parseExpression парсит выражение с учётом приоритетов операторов
// (от низшего к высшему): "||", "&&", сравнения, "+/-", "*//", "as", унарные.
// Все бинарные операторы левоассоциативны.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseBinary(p.parseAnd, []string{"||"})
}

// parseAnd парсит уровень логического И.
func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinary(p.parseRel, []string{"&&"})
}

// parseRel парсит уровень сравнения. В отличие от остальных уровней,
// сравнения не образуют цепочек: "a < b < c" — синтаксическая ошибка
// на втором операторе.
func (p *Parser) parseRel() ast.Expr {
	left := p.parseAdd()
	if left == nil {
		return nil
	}
	opTok := p.stream.Peek()
	if opTok.Type != token.OPERATOR || !relOps[opTok.Literal] {
		return left
	}
	p.stream.Next()
	right := p.parseAdd()
	if right == nil {
		p.error("expected expression after operator", p.stream.Peek())
		return nil
	}
	return ast.NewBinaryExpr(opTok.Pos(), left, opTok.Literal, right)
}

// parseAdd парсит уровень сложения и вычитания.
func (p *Parser) parseAdd() ast.Expr {
	return p.parseBinary(p.parseMul, []string{"+", "-"})
}

// parseMul парсит уровень умножения и деления.
func (p *Parser) parseMul() ast.Expr {
	return p.parseBinary(p.parseCast, []string{"*", "/"})
}

// parseBinary — обобщённый метод для парсинга левоассоциативных бинарных выражений.
// Принимает функцию для парсинга подвыражения более высокого приоритета
// и список операторов текущего уровня.
func (p *Parser) parseBinary(nextParser func() ast.Expr, ops []string) ast.Expr {
	expr := nextParser()
	for {
		if expr == nil {
			return nil
		}
		opTok := p.stream.Peek()
		if opTok.Type != token.OPERATOR {
			break
		}
		found := false
		for _, o := range ops {
			if opTok.Literal == o {
				found = true
				break
			}
		}
		if !found {
			break
		}
		p.stream.Next()
		right := nextParser()
		if right == nil {
			p.error("expected expression after operator", p.stream.Peek())
			return nil
		}
		expr = ast.NewBinaryExpr(opTok.Pos(), expr, opTok.Literal, right)
	}
	return expr
}

// parseCast парсит приведение типа: unary [ "as" type ].
// Приведения допускают цепочку (x as str as i64) и применяются слева направо.
func (p *Parser) parseCast() ast.Expr {
	expr := p.parseUnary()
	for expr != nil && p.peekIs(token.KEYWORD, "as") {
		asTok := p.stream.Next()
		typeTok := p.expect(token.TYPE, "", "type after 'as'")
		if typeTok.Type != token.TYPE {
			return nil
		}
		castType, _ := ast.TypeFromName(typeTok.Literal)
		if castType == ast.Void {
			p.error("Cannot cast to type 'void'", typeTok)
			return nil
		}
		expr = ast.NewCastExpr(asTok.Pos(), expr, castType)
	}
	return expr
}

// parseUnary парсит унарные выражения "-x" и "!flag".
// Унарный оператор связывается с непосредственно следующим фактором;
// двойное отрицание требует скобок: -(0 - x).
func (p *Parser) parseUnary() ast.Expr {
	tok := p.stream.Peek()
	if tok.Type == token.OPERATOR && (tok.Literal == "-" || tok.Literal == "!") {
		p.stream.Next()
		x := p.parseFactor()
		if x == nil {
			return nil
		}
		return ast.NewUnaryExpr(tok.Pos(), tok.Literal, x)
	}
	return p.parseFactor()
}

// parseFactor парсит первичные (атомарные) выражения:
// литералы, идентификаторы, вызовы функций и скобочные выражения.
// В случае ошибки потребляет проблемный токен, чтобы избежать зацикливания.
func (p *Parser) parseFactor() ast.Expr {
	tok := p.stream.Peek()
	pos := tok.Pos()
	switch tok.Type {
	case token.INT:
		p.stream.Next()
		return ast.NewIntLit(pos, tok.Int)
	case token.FLOAT:
		p.stream.Next()
		return ast.NewFloatLit(pos, tok.Float)
	case token.STRING:
		p.stream.Next()
		return ast.NewStringLit(pos, tok.Literal)
	case token.BOOL:
		p.stream.Next()
		return ast.NewBoolLit(pos, tok.Bool)
	case token.IDENT:
		idTok := p.stream.Next()
		if p.peekIs(token.PUNCT, "(") {
			return p.parseCallArgs(idTok)
		}
		return ast.NewIdent(idTok.Pos(), idTok.Literal)
	case token.PUNCT:
		if tok.Literal == "(" {
			p.stream.Next()
			inner := p.parseExpression()
			p.expect(token.PUNCT, ")", ")")
			return inner
		}
	}
	p.error("expected expression", tok)
	p.stream.Next() // потребляем токен, вызвавший ошибку
	return nil
}
