// Package sema реализует семантический анализ: статическую проверку
// всех мест вызова функций. Анализатор не останавливается на первой
// ошибке — диагностика накапливается и отдаётся целиком.
package sema

import (
	"fmt"

	"github.com/semetekare/minilang/internal/ast"
	"github.com/semetekare/minilang/internal/token"
)

// Checker представляет семантический анализатор.
// Содержит таблицу сигнатур функций и накопленные ошибки.
type Checker struct {
	// Диагностические сообщения о семантических ошибках
	errors []SemanticError

	// Таблица сигнатур: имя функции -> сигнатура
	funcs map[string]*Signature
}

// SemanticError представляет семантическую ошибку
// (неизвестная функция, неверная арность, неверный способ передачи аргумента).
type SemanticError struct {
	Msg string         // Описание ошибки
	Pos token.Position // Позиция в исходном коде
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("Semantic error at %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// ParamInfo описывает один параметр в сигнатуре функции.
type ParamInfo struct {
	Name  string // Имя параметра
	ByRef bool   // Передаётся ли параметр по ссылке
}

// Signature описывает вызываемую функцию: пользовательскую или встроенную.
type Signature struct {
	Name     string      // Имя функции
	Params   []ParamInfo // Параметры в порядке объявления
	Variadic bool        // true для print: произвольное число аргументов по значению
	Builtin  bool        // true для встроенных функций
	Decl     *ast.FunctionDecl
}

// NewChecker создаёт новый семантический анализатор с уже
// зарегистрированными встроенными функциями.
func NewChecker() *Checker {
	c := &Checker{
		errors: make([]SemanticError, 0),
		funcs:  make(map[string]*Signature),
	}
	c.funcs["print"] = &Signature{Name: "print", Variadic: true, Builtin: true}
	c.funcs["input"] = &Signature{Name: "input", Params: []ParamInfo{{Name: "prompt"}}, Builtin: true}
	c.funcs["mod"] = &Signature{Name: "mod", Params: []ParamInfo{{Name: "a"}, {Name: "b"}}, Builtin: true}
	return c
}

// Check выполняет семантический анализ над AST.
// Возвращает список обнаруженных семантических ошибок.
func (c *Checker) Check(program *ast.Program) []SemanticError {
	// Шаг 1: регистрируем все пользовательские функции
	c.registerDeclarations(program)

	// Шаг 2: проверяем места вызова в телах функций и в операторах верхнего уровня
	for _, item := range program.Items {
		switch it := item.(type) {
		case *ast.FunctionDecl:
			c.checkBlock(it.Body)
		case ast.Stmt:
			c.checkStmt(it)
		}
	}

	return c.errors
}

// registerDeclarations заполняет таблицу сигнатур пользовательскими функциями.
// Дубликаты имён отлавливает парсер, здесь последнее объявление побеждает.
func (c *Checker) registerDeclarations(program *ast.Program) {
	for _, item := range program.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		params := make([]ParamInfo, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = ParamInfo{Name: p.Name, ByRef: p.ByRef}
		}
		c.funcs[fn.Name] = &Signature{Name: fn.Name, Params: params, Decl: fn}
	}
}

// checkBlock проверяет все операторы блока.
func (c *Checker) checkBlock(block *ast.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt)
	}
}

// checkStmt проверяет оператор, спускаясь во вложенные блоки и выражения.
func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		c.checkExpr(s.Init)
	case *ast.AssignStmt:
		c.checkExpr(s.Value)
	case *ast.CallStmt:
		c.checkCall(s.Call)
	case *ast.IfStmt:
		c.checkExpr(s.Cond)
		c.checkBlock(s.Then)
		c.checkBlock(s.Else)
	case *ast.ForStmt:
		if s.Init != nil {
			c.checkExpr(s.Init.Init)
		}
		c.checkExpr(s.Cond)
		if s.Post != nil {
			c.checkExpr(s.Post.Value)
		}
		c.checkBlock(s.Body)
	case *ast.SwitchStmt:
		for _, e := range s.Exprs {
			c.checkExpr(e.Value)
		}
		for _, cs := range s.Cases {
			c.checkExpr(cs.Cond)
			c.checkBlock(cs.Body)
		}
	case *ast.ReturnStmt:
		c.checkExpr(s.Value)
	case *ast.Block:
		c.checkBlock(s)
	}
}

// checkExpr рекурсивно обходит выражение в поисках вложенных вызовов.
func (c *Checker) checkExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.CallExpr:
		c.checkCall(e)
	case *ast.UnaryExpr:
		c.checkExpr(e.X)
	case *ast.BinaryExpr:
		c.checkExpr(e.Left)
		c.checkExpr(e.Right)
	case *ast.CastExpr:
		c.checkExpr(e.X)
	}
}

// checkCall проверяет одно место вызова: известность функции, арность
// и форму передачи каждого аргумента (по значению или по ссылке).
func (c *Checker) checkCall(call *ast.CallExpr) {
	// Аргументы проверяются в любом случае: в них могут быть вложенные вызовы
	for _, arg := range call.Args {
		c.checkExpr(arg.Value)
	}

	sig, exists := c.funcs[call.Name]
	if !exists {
		c.error(fmt.Sprintf("Use of undeclared function '%s'", call.Name), call.Pos())
		return
	}

	if sig.Variadic {
		// print принимает любое число аргументов, все по значению
		for _, arg := range call.Args {
			if arg.ByRef {
				c.error(fmt.Sprintf("Argument in function '%s' passed by Reference - should be passed by Value", sig.Name), arg.Pos())
			}
		}
		return
	}

	if len(call.Args) != len(sig.Params) {
		c.error(fmt.Sprintf("Function '%s' expects %d arguments, got %d", sig.Name, len(sig.Params), len(call.Args)), call.Pos())
		return
	}

	for i, arg := range call.Args {
		param := sig.Params[i]
		switch {
		case param.ByRef && !arg.ByRef:
			c.error(fmt.Sprintf("Parameter '%s' in function '%s' passed by Value - should be passed by Reference", param.Name, sig.Name), arg.Pos())
		case !param.ByRef && arg.ByRef:
			c.error(fmt.Sprintf("Parameter '%s' in function '%s' passed by Reference - should be passed by Value", param.Name, sig.Name), arg.Pos())
		case param.ByRef && arg.ByRef:
			if _, ok := arg.Value.(*ast.Ident); !ok {
				c.error(fmt.Sprintf("Reference argument for parameter '%s' in function '%s' must be an identifier", param.Name, sig.Name), arg.Pos())
			}
		}
	}
}

// error добавляет новую семантическую ошибку.
func (c *Checker) error(msg string, pos token.Position) {
	c.errors = append(c.errors, SemanticError{Msg: msg, Pos: pos})
}
