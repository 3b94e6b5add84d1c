// internal/ast/printer.go

// Package ast предоставляет функциональность для печати абстрактного синтаксического дерева (AST)
// в человекочитаемом, отформатированном виде.
package ast

import (
	"strings"
)

// PrettyPrint возвращает отформатированное строковое представление узла AST.
// Результат включает отступы для вложенных узлов, что облегчает визуальный анализ структуры дерева.
// Используется в основном для отладки и логирования.
func PrettyPrint(n Node) string {
	var sb strings.Builder
	prettyPrintNode(&sb, n, 0)
	return sb.String()
}

// prettyPrintNode — рекурсивная вспомогательная функция для печати узла AST с заданным уровнем отступа.
// Функция сначала выводит строковое представление узла (через его метод String()),
// а затем рекурсивно обходит все его дочерние узлы, увеличивая уровень отступа.
// Листовые узлы (литералы, идентификаторы) дополнительной обработки не требуют.
func prettyPrintNode(sb *strings.Builder, n Node, indent int) {
	if n == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix)
	sb.WriteString(n.String())
	sb.WriteString("\n")

	switch node := n.(type) {
	case *Program:
		for _, item := range node.Items {
			prettyPrintNode(sb, item, indent+1)
		}
	case *FunctionDecl:
		for i := range node.Params {
			prettyPrintNode(sb, &node.Params[i], indent+1)
		}
		prettyPrintNode(sb, node.Body, indent+1)
	case *Block:
		for _, stmt := range node.Stmts {
			prettyPrintNode(sb, stmt, indent+1)
		}
	case *DeclStmt:
		prettyPrintNode(sb, node.Init, indent+1)
	case *AssignStmt:
		prettyPrintNode(sb, node.Value, indent+1)
	case *CallStmt:
		prettyPrintNode(sb, node.Call, indent+1)
	case *IfStmt:
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Then, indent+1)
		if node.Else != nil {
			prettyPrintNode(sb, node.Else, indent+1)
		}
	case *ForStmt:
		if node.Init != nil {
			prettyPrintNode(sb, node.Init, indent+1)
		}
		prettyPrintNode(sb, node.Cond, indent+1)
		if node.Post != nil {
			prettyPrintNode(sb, node.Post, indent+1)
		}
		prettyPrintNode(sb, node.Body, indent+1)
	case *SwitchStmt:
		for _, e := range node.Exprs {
			prettyPrintNode(sb, e, indent+1)
		}
		for _, c := range node.Cases {
			prettyPrintNode(sb, c, indent+1)
		}
	case *SwitchExpr:
		prettyPrintNode(sb, node.Value, indent+1)
	case *SwitchCase:
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Body, indent+1)
	case *ReturnStmt:
		prettyPrintNode(sb, node.Value, indent+1)
	case *CallExpr:
		for _, arg := range node.Args {
			prettyPrintNode(sb, arg, indent+1)
		}
	case *Arg:
		prettyPrintNode(sb, node.Value, indent+1)
	case *UnaryExpr:
		prettyPrintNode(sb, node.X, indent+1)
	case *BinaryExpr:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CastExpr:
		prettyPrintNode(sb, node.X, indent+1)
	}
}
