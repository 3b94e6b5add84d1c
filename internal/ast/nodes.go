// internal/ast/nodes.go

// Package ast определяет абстрактное синтаксическое дерево (AST) для представления
// синтаксической структуры исходной программы.
package ast

import (
	"fmt"

	"github.com/semetekare/minilang/internal/token"
)

// Position — псевдоним для token.Position, представляющий позицию в исходном коде.
type Position = token.Position

// Node — базовый интерфейс для всех узлов AST.
// Любой узел должен знать свою позицию в исходном коде и уметь преобразовываться в строку.
type Node interface {
	// Pos возвращает позицию узла в исходном коде.
	Pos() Position
	// String возвращает человекочитаемое строковое представление узла (в основном для отладки).
	String() string
}

// Item — интерфейс для элементов верхнего уровня программы:
// объявлений функций и операторов.
type Item interface {
	Node
	// itemString возвращает строковое представление элемента (для внутреннего использования).
	itemString() string
}

// Stmt — интерфейс для всех видов операторов (statements).
// Любой оператор допустим и на верхнем уровне программы, поэтому Stmt включает Item.
type Stmt interface {
	Item
	// stmtString возвращает строковое представление оператора (для внутреннего использования).
	stmtString() string
}

// Expr — интерфейс для всех выражений.
type Expr interface {
	Node
	// exprString возвращает строковое представление выражения (для внутреннего использования).
	exprString() string
}

// Program представляет корень AST — упорядоченную последовательность
// объявлений функций и операторов верхнего уровня.
type Program struct {
	pos   Position // Позиция начала программы.
	Items []Item   // Элементы верхнего уровня в порядке следования.
}

// Pos возвращает позицию начала программы.
func (p *Program) Pos() Position { return p.pos }

// String возвращает строковое представление программы.
func (p *Program) String() string { return fmt.Sprintf("Program{Items: %d}", len(p.Items)) }

// NewProgram создаёт новый экземпляр Program.
func NewProgram(pos Position, items []Item) *Program {
	return &Program{pos: pos, Items: items}
}

// FunctionDecl представляет объявление функции.
// Грамматика: "fn" identifier "(" parameters ")" ":" (type | "void") block
type FunctionDecl struct {
	pos        Position  // Позиция ключевого слова "fn".
	Name       string    // Имя функции.
	Params     []Param   // Список параметров.
	ReturnType ValueType // Возвращаемый тип (Void для функций без результата).
	Body       *Block    // Тело функции.
}

// Pos возвращает позицию начала функции.
func (f *FunctionDecl) Pos() Position { return f.pos }

// String возвращает строковое представление функции.
func (f *FunctionDecl) String() string { return fmt.Sprintf("FunctionDecl{Name: %s}", f.Name) }

// itemString реализует интерфейс Item.
func (f *FunctionDecl) itemString() string { return f.String() }

// NewFunctionDecl создаёт новый узел FunctionDecl.
func NewFunctionDecl(pos Position, name string, params []Param, returnType ValueType, body *Block) *FunctionDecl {
	return &FunctionDecl{pos: pos, Name: name, Params: params, ReturnType: returnType, Body: body}
}

// Param представляет параметр функции.
// Грамматика: Param ::= [ "&" ] type identifier
type Param struct {
	pos   Position  // Позиция первого токена параметра.
	ByRef bool      // Передаётся ли параметр по ссылке.
	Type  ValueType // Тип параметра.
	Name  string    // Имя параметра.
}

// Pos возвращает позицию начала параметра.
func (p *Param) Pos() Position { return p.pos }

// String возвращает строковое представление параметра.
func (p *Param) String() string {
	if p.ByRef {
		return fmt.Sprintf("Param{&%s %s}", p.Type, p.Name)
	}
	return fmt.Sprintf("Param{%s %s}", p.Type, p.Name)
}

// NewParam создаёт новый узел Param.
func NewParam(pos Position, byRef bool, typ ValueType, name string) *Param {
	return &Param{pos: pos, ByRef: byRef, Type: typ, Name: name}
}

// Block представляет блок кода, ограниченный фигурными скобками.
// Блок может использоваться и как самостоятельный оператор.
type Block struct {
	pos   Position // Позиция открывающей скобки "{".
	Stmts []Stmt   // Список операторов внутри блока.
}

// Pos возвращает позицию начала блока.
func (b *Block) Pos() Position { return b.pos }

// String возвращает строковое представление блока.
func (b *Block) String() string { return fmt.Sprintf("Block{Stmts: %d}", len(b.Stmts)) }

// itemString реализует интерфейс Item.
func (b *Block) itemString() string { return b.String() }

// stmtString реализует интерфейс Stmt.
func (b *Block) stmtString() string { return b.String() }

// NewBlock создаёт новый узел Block.
func NewBlock(pos Position, stmts []Stmt) *Block {
	return &Block{pos: pos, Stmts: stmts}
}

// DeclStmt представляет объявление переменной с необязательным инициализатором.
// Грамматика: type identifier [ "=" expression ]
type DeclStmt struct {
	pos  Position  // Позиция имени типа.
	Type ValueType // Объявленный тип переменной.
	Name string    // Имя переменной.
	Init Expr      // Выражение инициализации (может быть nil).
}

// Pos возвращает позицию начала объявления.
func (d *DeclStmt) Pos() Position { return d.pos }

// String возвращает строковое представление объявления.
func (d *DeclStmt) String() string { return fmt.Sprintf("DeclStmt{%s %s}", d.Type, d.Name) }

// itemString реализует интерфейс Item.
func (d *DeclStmt) itemString() string { return d.String() }

// stmtString реализует интерфейс Stmt.
func (d *DeclStmt) stmtString() string { return d.String() }

// NewDeclStmt создаёт новый узел DeclStmt.
func NewDeclStmt(pos Position, typ ValueType, name string, init Expr) *DeclStmt {
	return &DeclStmt{pos: pos, Type: typ, Name: name, Init: init}
}

// AssignStmt представляет присваивание существующей переменной.
// Грамматика: identifier "=" expression
type AssignStmt struct {
	pos   Position // Позиция идентификатора.
	Name  string   // Имя переменной.
	Value Expr     // Присваиваемое выражение.
}

// Pos возвращает позицию начала присваивания.
func (a *AssignStmt) Pos() Position { return a.pos }

// String возвращает строковое представление присваивания.
func (a *AssignStmt) String() string { return fmt.Sprintf("AssignStmt{%s}", a.Name) }

// itemString реализует интерфейс Item.
func (a *AssignStmt) itemString() string { return a.String() }

// stmtString реализует интерфейс Stmt.
func (a *AssignStmt) stmtString() string { return a.String() }

// NewAssignStmt создаёт новый узел AssignStmt.
func NewAssignStmt(pos Position, name string, value Expr) *AssignStmt {
	return &AssignStmt{pos: pos, Name: name, Value: value}
}

// CallStmt представляет вызов функции в позиции оператора.
type CallStmt struct {
	pos  Position  // Позиция имени функции.
	Call *CallExpr // Само выражение вызова.
}

// Pos возвращает позицию вызова.
func (c *CallStmt) Pos() Position { return c.pos }

// String возвращает строковое представление вызова-оператора.
func (c *CallStmt) String() string { return fmt.Sprintf("CallStmt{%s}", c.Call.Name) }

// itemString реализует интерфейс Item.
func (c *CallStmt) itemString() string { return c.String() }

// stmtString реализует интерфейс Stmt.
func (c *CallStmt) stmtString() string { return c.String() }

// NewCallStmt создаёт новый узел CallStmt.
func NewCallStmt(pos Position, call *CallExpr) *CallStmt {
	return &CallStmt{pos: pos, Call: call}
}

// IfStmt представляет условный оператор с необязательной ветвью else.
// Грамматика: "if" "(" expression ")" block [ "else" block ]
type IfStmt struct {
	pos  Position // Позиция ключевого слова "if".
	Cond Expr     // Условие (должно иметь тип bool).
	Then *Block   // Блок then.
	Else *Block   // Блок else (может быть nil).
}

// Pos возвращает позицию начала оператора if.
func (i *IfStmt) Pos() Position { return i.pos }

// String возвращает строковое представление оператора if.
func (i *IfStmt) String() string { return "IfStmt" }

// itemString реализует интерфейс Item.
func (i *IfStmt) itemString() string { return i.String() }

// stmtString реализует интерфейс Stmt.
func (i *IfStmt) stmtString() string { return i.String() }

// NewIfStmt создаёт новый узел IfStmt.
func NewIfStmt(pos Position, cond Expr, then *Block, els *Block) *IfStmt {
	return &IfStmt{pos: pos, Cond: cond, Then: then, Else: els}
}

// ForStmt представляет цикл с необязательными инициализацией и шагом.
// Грамматика: "for" "(" [ declaration ] ";" expression ";" [ identifier "=" expression ] ")" block
// Итератор из объявления виден только внутри тела цикла.
type ForStmt struct {
	pos  Position    // Позиция ключевого слова "for".
	Init *DeclStmt   // Объявление итератора (может быть nil).
	Cond Expr        // Условие продолжения (обязательно, тип bool).
	Post *AssignStmt // Шаг после каждой итерации (может быть nil).
	Body *Block      // Тело цикла.
}

// Pos возвращает позицию начала цикла.
func (f *ForStmt) Pos() Position { return f.pos }

// String возвращает строковое представление цикла.
func (f *ForStmt) String() string { return "ForStmt" }

// itemString реализует интерфейс Item.
func (f *ForStmt) itemString() string { return f.String() }

// stmtString реализует интерфейс Stmt.
func (f *ForStmt) stmtString() string { return f.String() }

// NewForStmt создаёт новый узел ForStmt.
func NewForStmt(pos Position, init *DeclStmt, cond Expr, post *AssignStmt, body *Block) *ForStmt {
	return &ForStmt{pos: pos, Init: init, Cond: cond, Post: post, Body: body}
}

// SwitchExpr представляет одно выражение заголовка switch с необязательным псевдонимом.
// Грамматика: expression [ ":" identifier ]
type SwitchExpr struct {
	pos   Position // Позиция начала выражения.
	Value Expr     // Выражение заголовка.
	Alias string   // Псевдоним значения (пустая строка, если не задан).
}

// Pos возвращает позицию выражения заголовка.
func (s *SwitchExpr) Pos() Position { return s.pos }

// String возвращает строковое представление выражения заголовка.
func (s *SwitchExpr) String() string {
	if s.Alias != "" {
		return fmt.Sprintf("SwitchExpr{: %s}", s.Alias)
	}
	return "SwitchExpr"
}

// NewSwitchExpr создаёт новый узел SwitchExpr.
func NewSwitchExpr(pos Position, value Expr, alias string) *SwitchExpr {
	return &SwitchExpr{pos: pos, Value: value, Alias: alias}
}

// SwitchCase представляет одну ветвь switch: условие и блок.
// Грамматика: "(" expression ")" "->" block
type SwitchCase struct {
	pos  Position // Позиция открывающей скобки условия.
	Cond Expr     // Условие ветви (тип bool).
	Body *Block   // Тело ветви.
}

// Pos возвращает позицию начала ветви.
func (s *SwitchCase) Pos() Position { return s.pos }

// String возвращает строковое представление ветви.
func (s *SwitchCase) String() string { return "SwitchCase" }

// NewSwitchCase создаёт новый узел SwitchCase.
func NewSwitchCase(pos Position, cond Expr, body *Block) *SwitchCase {
	return &SwitchCase{pos: pos, Cond: cond, Body: body}
}

// SwitchStmt представляет оператор switch: список выражений заголовка
// и упорядоченный список ветвей. Выполняются все ветви с истинным условием
// до первого break.
type SwitchStmt struct {
	pos   Position      // Позиция ключевого слова "switch".
	Exprs []*SwitchExpr // Выражения заголовка (минимум одно).
	Cases []*SwitchCase // Ветви в текстовом порядке.
}

// Pos возвращает позицию начала switch.
func (s *SwitchStmt) Pos() Position { return s.pos }

// String возвращает строковое представление switch.
func (s *SwitchStmt) String() string { return fmt.Sprintf("SwitchStmt{Cases: %d}", len(s.Cases)) }

// itemString реализует интерфейс Item.
func (s *SwitchStmt) itemString() string { return s.String() }

// stmtString реализует интерфейс Stmt.
func (s *SwitchStmt) stmtString() string { return s.String() }

// NewSwitchStmt создаёт новый узел SwitchStmt.
func NewSwitchStmt(pos Position, exprs []*SwitchExpr, cases []*SwitchCase) *SwitchStmt {
	return &SwitchStmt{pos: pos, Exprs: exprs, Cases: cases}
}

// ReturnStmt представляет возврат из функции с необязательным значением.
type ReturnStmt struct {
	pos   Position // Позиция ключевого слова "return".
	Value Expr     // Возвращаемое выражение (nil для void-функций).
}

// Pos возвращает позицию оператора return.
func (r *ReturnStmt) Pos() Position { return r.pos }

// String возвращает строковое представление оператора return.
func (r *ReturnStmt) String() string { return "ReturnStmt" }

// itemString реализует интерфейс Item.
func (r *ReturnStmt) itemString() string { return r.String() }

// stmtString реализует интерфейс Stmt.
func (r *ReturnStmt) stmtString() string { return r.String() }

// NewReturnStmt создаёт новый узел ReturnStmt.
func NewReturnStmt(pos Position, value Expr) *ReturnStmt {
	return &ReturnStmt{pos: pos, Value: value}
}

// BreakStmt представляет оператор break внутри цикла или switch.
type BreakStmt struct {
	pos Position // Позиция ключевого слова "break".
}

// Pos возвращает позицию оператора break.
func (b *BreakStmt) Pos() Position { return b.pos }

// String возвращает строковое представление оператора break.
func (b *BreakStmt) String() string { return "BreakStmt" }

// itemString реализует интерфейс Item.
func (b *BreakStmt) itemString() string { return b.String() }

// stmtString реализует интерфейс Stmt.
func (b *BreakStmt) stmtString() string { return b.String() }

// NewBreakStmt создаёт новый узел BreakStmt.
func NewBreakStmt(pos Position) *BreakStmt {
	return &BreakStmt{pos: pos}
}

// IntLit представляет целочисленный литерал.
type IntLit struct {
	pos   Position // Позиция литерала.
	Value int64    // Значение.
}

// Pos возвращает позицию литерала.
func (l *IntLit) Pos() Position { return l.pos }

// String возвращает строковое представление литерала.
func (l *IntLit) String() string { return fmt.Sprintf("IntLit{%d}", l.Value) }

// exprString реализует интерфейс Expr.
func (l *IntLit) exprString() string { return l.String() }

// NewIntLit создаёт новый узел IntLit.
func NewIntLit(pos Position, value int64) *IntLit {
	return &IntLit{pos: pos, Value: value}
}

// FloatLit представляет литерал с плавающей точкой.
type FloatLit struct {
	pos   Position // Позиция литерала.
	Value float64  // Значение.
}

// Pos возвращает позицию литерала.
func (l *FloatLit) Pos() Position { return l.pos }

// String возвращает строковое представление литерала.
func (l *FloatLit) String() string { return fmt.Sprintf("FloatLit{%g}", l.Value) }

// exprString реализует интерфейс Expr.
func (l *FloatLit) exprString() string { return l.String() }

// NewFloatLit создаёт новый узел FloatLit.
func NewFloatLit(pos Position, value float64) *FloatLit {
	return &FloatLit{pos: pos, Value: value}
}

// StringLit представляет строковый литерал (уже без escape-последовательностей).
type StringLit struct {
	pos   Position // Позиция литерала.
	Value string   // Значение.
}

// Pos возвращает позицию литерала.
func (l *StringLit) Pos() Position { return l.pos }

// String возвращает строковое представление литерала.
func (l *StringLit) String() string { return fmt.Sprintf("StringLit{%q}", l.Value) }

// exprString реализует интерфейс Expr.
func (l *StringLit) exprString() string { return l.String() }

// NewStringLit создаёт новый узел StringLit.
func NewStringLit(pos Position, value string) *StringLit {
	return &StringLit{pos: pos, Value: value}
}

// BoolLit представляет булев литерал.
type BoolLit struct {
	pos   Position // Позиция литерала.
	Value bool     // Значение.
}

// Pos возвращает позицию литерала.
func (l *BoolLit) Pos() Position { return l.pos }

// String возвращает строковое представление литерала.
func (l *BoolLit) String() string { return fmt.Sprintf("BoolLit{%t}", l.Value) }

// exprString реализует интерфейс Expr.
func (l *BoolLit) exprString() string { return l.String() }

// NewBoolLit создаёт новый узел BoolLit.
func NewBoolLit(pos Position, value bool) *BoolLit {
	return &BoolLit{pos: pos, Value: value}
}

// Ident представляет обращение к переменной по имени.
type Ident struct {
	pos  Position // Позиция идентификатора.
	Name string   // Имя переменной.
}

// Pos возвращает позицию идентификатора.
func (i *Ident) Pos() Position { return i.pos }

// String возвращает строковое представление идентификатора.
func (i *Ident) String() string { return fmt.Sprintf("Ident{%s}", i.Name) }

// exprString реализует интерфейс Expr.
func (i *Ident) exprString() string { return i.String() }

// NewIdent создаёт новый узел Ident.
func NewIdent(pos Position, name string) *Ident {
	return &Ident{pos: pos, Name: name}
}

// Arg представляет аргумент вызова функции.
// Грамматика: argument ::= [ "&" ] expression
// При ByRef выражение обязано быть голым идентификатором; это проверяет
// семантический анализатор.
type Arg struct {
	pos   Position // Позиция первого токена аргумента.
	ByRef bool     // Передаётся ли аргумент по ссылке.
	Value Expr     // Выражение аргумента.
}

// Pos возвращает позицию аргумента.
func (a *Arg) Pos() Position { return a.pos }

// String возвращает строковое представление аргумента.
func (a *Arg) String() string {
	if a.ByRef {
		return "Arg{&}"
	}
	return "Arg"
}

// NewArg создаёт новый узел Arg.
func NewArg(pos Position, byRef bool, value Expr) *Arg {
	return &Arg{pos: pos, ByRef: byRef, Value: value}
}

// CallExpr представляет вызов функции.
// Грамматика: identifier "(" arguments ")"
type CallExpr struct {
	pos  Position // Позиция имени функции.
	Name string   // Имя вызываемой функции.
	Args []*Arg   // Аргументы вызова.
}

// Pos возвращает позицию вызова.
func (c *CallExpr) Pos() Position { return c.pos }

// String возвращает строковое представление вызова.
func (c *CallExpr) String() string { return fmt.Sprintf("CallExpr{%s, Args: %d}", c.Name, len(c.Args)) }

// exprString реализует интерфейс Expr.
func (c *CallExpr) exprString() string { return c.String() }

// NewCallExpr создаёт новый узел CallExpr.
func NewCallExpr(pos Position, name string, args []*Arg) *CallExpr {
	return &CallExpr{pos: pos, Name: name, Args: args}
}

// UnaryExpr представляет унарное выражение: "-x" или "!flag".
type UnaryExpr struct {
	pos Position // Позиция оператора.
	Op  string   // Оператор ("-" или "!").
	X   Expr     // Операнд.
}

// Pos возвращает позицию унарного оператора.
func (u *UnaryExpr) Pos() Position { return u.pos }

// String возвращает строковое представление унарного выражения.
func (u *UnaryExpr) String() string { return fmt.Sprintf("UnaryExpr{%s}", u.Op) }

// exprString реализует интерфейс Expr.
func (u *UnaryExpr) exprString() string { return u.String() }

// NewUnaryExpr создаёт новый узел UnaryExpr.
func NewUnaryExpr(pos Position, op string, x Expr) *UnaryExpr {
	return &UnaryExpr{pos: pos, Op: op, X: x}
}

// BinaryExpr представляет бинарное выражение: "a + b", "x == y" и т.д.
type BinaryExpr struct {
	pos   Position // Позиция оператора.
	Left  Expr     // Левый операнд.
	Op    string   // Бинарный оператор.
	Right Expr     // Правый операнд.
}

// Pos возвращает позицию бинарного оператора.
func (b *BinaryExpr) Pos() Position { return b.pos }

// String возвращает строковое представление бинарного выражения.
func (b *BinaryExpr) String() string { return fmt.Sprintf("BinaryExpr{%s}", b.Op) }

// exprString реализует интерфейс Expr.
func (b *BinaryExpr) exprString() string { return b.String() }

// NewBinaryExpr создаёт новый узел BinaryExpr.
func NewBinaryExpr(pos Position, left Expr, op string, right Expr) *BinaryExpr {
	return &BinaryExpr{pos: pos, Left: left, Op: op, Right: right}
}

// CastExpr представляет приведение типа: expression "as" type.
type CastExpr struct {
	pos Position  // Позиция оператора "as".
	X   Expr      // Приводимое выражение.
	To  ValueType // Целевой тип.
}

// Pos возвращает позицию приведения.
func (c *CastExpr) Pos() Position { return c.pos }

// String возвращает строковое представление приведения.
func (c *CastExpr) String() string { return fmt.Sprintf("CastExpr{as %s}", c.To) }

// exprString реализует интерфейс Expr.
func (c *CastExpr) exprString() string { return c.String() }

// NewCastExpr создаёт новый узел CastExpr.
func NewCastExpr(pos Position, x Expr, to ValueType) *CastExpr {
	return &CastExpr{pos: pos, X: x, To: to}
}
