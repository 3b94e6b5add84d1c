// Package interp реализует исполнение программы прямым обходом AST.
//
// Интерпретатор держит стек кадров вызовов; каждый кадр владеет своим
// стеком областей видимости. Сигналы управления break и return — обычные
// поля-флаги, опрашиваемые между операторами блока; никакой нелокальной
// размотки не используется.
package interp

import (
	"bufio"
	"io"

	"github.com/semetekare/minilang/internal/ast"
)

// Interpreter выполняет программу, построенную парсером и проверенную
// семантическим анализатором. Стандартные ввод и вывод внедряются извне,
// что позволяет тестам перехватывать эффекты built-in функций.
type Interpreter struct {
	program *ast.Program
	funcs   map[string]*ast.FunctionDecl

	stack       *CallStack
	lastResult  *Value // результат последнего return (nil для void)
	isBreaking  bool   // установлен оператором break, сбрасывается циклом или switch
	isReturning bool   // установлен оператором return, сбрасывается на границе кадра

	stdin  *bufio.Reader
	stdout io.Writer

	// MaxDepth — предел глубины стека вызовов. Изменение после Run не действует.
	MaxDepth int
}

// NewInterpreter создаёт интерпретатор для готовой программы.
// stdin используется встроенной функцией input, stdout — функцией print.
func NewInterpreter(program *ast.Program, stdin io.Reader, stdout io.Writer) *Interpreter {
	it := &Interpreter{
		program:  program,
		funcs:    make(map[string]*ast.FunctionDecl),
		stdin:    bufio.NewReader(stdin),
		stdout:   stdout,
		MaxDepth: DefaultMaxDepth,
	}
	for _, item := range program.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			it.funcs[fn.Name] = fn
		}
	}
	return it
}

// Run исполняет операторы верхнего уровня в порядке следования.
// Объявления функций исполняемыми операторами не являются.
// Возвращает первую фатальную ошибку времени выполнения или nil.
func (it *Interpreter) Run() error {
	it.stack = NewCallStack(it.MaxDepth)
	it.stack.Push(NewStackFrame("<global>"))
	for _, item := range it.program.Items {
		stmt, ok := item.(ast.Stmt)
		if !ok {
			continue
		}
		if err := it.execStmt(stmt); err != nil {
			return err
		}
		if it.isBreaking {
			return newError(stmt.Pos(), "Break used outside of loop or switch")
		}
		if it.isReturning {
			return newError(stmt.Pos(), "Return used outside of function")
		}
	}
	return nil
}

// execBlock исполняет блок в новой вложенной области видимости.
// Область закрывается при выходе; флаги break/return прерывают блок,
// но обрабатываются выше по дереву.
func (it *Interpreter) execBlock(b *ast.Block) error {
	scopes := it.stack.Top().Scopes
	scopes.Push()
	defer scopes.Pop()
	for _, stmt := range b.Stmts {
		if err := it.execStmt(stmt); err != nil {
			return err
		}
		if it.isBreaking || it.isReturning {
			return nil
		}
	}
	return nil
}

// execStmt исполняет один оператор.
func (it *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		return it.execDecl(s)
	case *ast.AssignStmt:
		return it.execAssign(s)
	case *ast.CallStmt:
		_, err := it.evalCall(s.Call)
		return err
	case *ast.IfStmt:
		return it.execIf(s)
	case *ast.ForStmt:
		return it.execFor(s)
	case *ast.SwitchStmt:
		return it.execSwitch(s)
	case *ast.ReturnStmt:
		return it.execReturn(s)
	case *ast.BreakStmt:
		it.isBreaking = true
		return nil
	case *ast.Block:
		return it.execBlock(s)
	default:
		return newError(stmt.Pos(), "Unsupported statement")
	}
}

// execDecl вычисляет необязательный инициализатор и связывает имя
// в текущей области. Тип инициализатора обязан совпасть с объявленным;
// без инициализатора переменная получает значение по умолчанию.
func (it *Interpreter) execDecl(s *ast.DeclStmt) error {
	v := DefaultValue(s.Type)
	if s.Init != nil {
		init, err := it.evalExpr(s.Init)
		if err != nil {
			return err
		}
		if init.Type() != s.Type {
			return newError(s.Pos(), "Cannot assign value of type '%s' to variable '%s' of type '%s'", init.Type(), s.Name, s.Type)
		}
		v = init
	}
	if !it.stack.Top().Scopes.Declare(s.Name, v) {
		return newError(s.Pos(), "Redeclaration of variable '%s'", s.Name)
	}
	return nil
}

// execAssign перезаписывает существующее связывание. Тип нового значения
// обязан совпасть с типом текущего.
func (it *Interpreter) execAssign(s *ast.AssignStmt) error {
	scopes := it.stack.Top().Scopes
	old, ok := scopes.Lookup(s.Name)
	if !ok {
		return newError(s.Pos(), "Use of undeclared variable '%s'", s.Name)
	}
	v, err := it.evalExpr(s.Value)
	if err != nil {
		return err
	}
	if v.Type() != old.Type() {
		return newError(s.Pos(), "Cannot assign value of type '%s' to variable '%s' of type '%s'", v.Type(), s.Name, old.Type())
	}
	scopes.Assign(s.Name, v)
	return nil
}

// evalCondition вычисляет условие и проверяет, что оно типа bool.
func (it *Interpreter) evalCondition(cond ast.Expr) (bool, error) {
	v, err := it.evalExpr(cond)
	if err != nil {
		return false, err
	}
	if v.Type() != ast.Bool {
		return false, newError(cond.Pos(), "Condition must be of type 'bool', got '%s'", v.Type())
	}
	return v.Bool(), nil
}

// execIf исполняет условный оператор. Каждая ветвь получает свою область.
func (it *Interpreter) execIf(s *ast.IfStmt) error {
	cond, err := it.evalCondition(s.Cond)
	if err != nil {
		return err
	}
	if cond {
		return it.execBlock(s.Then)
	}
	if s.Else != nil {
		return it.execBlock(s.Else)
	}
	return nil
}

// execFor исполняет цикл. Итератор из заголовка живёт в отдельной
// области, закрываемой по выходу из цикла: после for он не виден.
func (it *Interpreter) execFor(s *ast.ForStmt) error {
	scopes := it.stack.Top().Scopes
	scopes.Push()
	defer scopes.Pop()
	if s.Init != nil {
		if err := it.execDecl(s.Init); err != nil {
			return err
		}
	}
	for {
		cond, err := it.evalCondition(s.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := it.execBlock(s.Body); err != nil {
			return err
		}
		if it.isReturning {
			return nil
		}
		if it.isBreaking {
			it.isBreaking = false
			return nil
		}
		if s.Post != nil {
			if err := it.execAssign(s.Post); err != nil {
				return err
			}
		}
	}
}

// execSwitch исполняет switch. Псевдонимы заголовка живут в области switch.
// Исполняются все ветви с истинным условием в текстовом порядке,
// пока одна из них не выполнит break.
func (it *Interpreter) execSwitch(s *ast.SwitchStmt) error {
	scopes := it.stack.Top().Scopes
	scopes.Push()
	defer scopes.Pop()
	for _, se := range s.Exprs {
		v, err := it.evalExpr(se.Value)
		if err != nil {
			return err
		}
		if se.Alias != "" {
			if !scopes.Declare(se.Alias, v) {
				return newError(se.Pos(), "Redeclaration of variable '%s'", se.Alias)
			}
		}
	}
	for _, cs := range s.Cases {
		cond, err := it.evalCondition(cs.Cond)
		if err != nil {
			return err
		}
		if !cond {
			continue
		}
		if err := it.execBlock(cs.Body); err != nil {
			return err
		}
		if it.isReturning {
			return nil
		}
		if it.isBreaking {
			it.isBreaking = false
			return nil
		}
	}
	return nil
}

// execReturn вычисляет необязательное выражение, сохраняет результат
// и поднимает флаг возврата. Ближайшая граница вызова размотает стек.
func (it *Interpreter) execReturn(s *ast.ReturnStmt) error {
	it.lastResult = nil
	if s.Value != nil {
		v, err := it.evalExpr(s.Value)
		if err != nil {
			return err
		}
		it.lastResult = &v
	}
	it.isReturning = true
	return nil
}

// evalExpr вычисляет выражение и возвращает его значение.
func (it *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return IntValue(e.Value), nil
	case *ast.FloatLit:
		return FloatValue(e.Value), nil
	case *ast.StringLit:
		return StrValue(e.Value), nil
	case *ast.BoolLit:
		return BoolValue(e.Value), nil
	case *ast.Ident:
		v, ok := it.stack.Top().Scopes.Lookup(e.Name)
		if !ok {
			return Value{}, newError(e.Pos(), "Use of undeclared variable '%s'", e.Name)
		}
		return v, nil
	case *ast.CallExpr:
		result, err := it.evalCall(e)
		if err != nil {
			return Value{}, err
		}
		if result == nil {
			return Value{}, newError(e.Pos(), "Function '%s' does not return a value", e.Name)
		}
		return *result, nil
	case *ast.UnaryExpr:
		v, err := it.evalExpr(e.X)
		if err != nil {
			return Value{}, err
		}
		if e.Op == "-" {
			return Neg(v, e.Pos())
		}
		return Not(v, e.Pos())
	case *ast.BinaryExpr:
		return it.evalBinary(e)
	case *ast.CastExpr:
		v, err := it.evalExpr(e.X)
		if err != nil {
			return Value{}, err
		}
		return Cast(v, e.To, e.Pos())
	default:
		return Value{}, newError(expr.Pos(), "Unsupported expression")
	}
}

// evalBinary вычисляет бинарное выражение. Логические операторы
// вычисляются лениво: правый операнд не трогается, если левый
// уже определил результат.
func (it *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	if e.Op == "&&" || e.Op == "||" {
		left, err := it.evalExpr(e.Left)
		if err != nil {
			return Value{}, err
		}
		if left.Type() != ast.Bool {
			return Value{}, newError(e.Left.Pos(), "Logical operator '%s' requires values of type 'bool', got '%s'", e.Op, left.Type())
		}
		if e.Op == "&&" && !left.Bool() {
			return BoolValue(false), nil
		}
		if e.Op == "||" && left.Bool() {
			return BoolValue(true), nil
		}
		right, err := it.evalExpr(e.Right)
		if err != nil {
			return Value{}, err
		}
		if right.Type() != ast.Bool {
			return Value{}, newError(e.Right.Pos(), "Logical operator '%s' requires values of type 'bool', got '%s'", e.Op, right.Type())
		}
		return BoolValue(right.Bool()), nil
	}

	left, err := it.evalExpr(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := it.evalExpr(e.Right)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case "+":
		return Add(left, right, e.Pos())
	case "-":
		return Sub(left, right, e.Pos())
	case "*":
		return Mul(left, right, e.Pos())
	case "/":
		return Div(left, right, e.Pos())
	default:
		return Compare(e.Op, left, right, e.Pos())
	}
}

// evaluatedArg — вычисленный аргумент вызова: значение, имя исходной
// переменной (для передачи по ссылке) и отметка о способе передачи.
type evaluatedArg struct {
	value Value
	name  string
	byRef bool
}

// evalArgs вычисляет аргументы вызова слева направо.
func (it *Interpreter) evalArgs(call *ast.CallExpr) ([]evaluatedArg, error) {
	args := make([]evaluatedArg, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := it.evalExpr(a.Value)
		if err != nil {
			return nil, err
		}
		name := ""
		if id, ok := a.Value.(*ast.Ident); ok {
			name = id.Name
		}
		args = append(args, evaluatedArg{value: v, name: name, byRef: a.ByRef})
	}
	return args, nil
}

// refWriteback — отложенная запись финального значения ссылочного
// параметра обратно в связывание вызывающей стороны.
type refWriteback struct {
	name  string
	value Value
}

// evalCall выполняет протокол вызова: вычисление аргументов, проверку
// формы вызова, создание кадра, исполнение тела, проверку результата
// и копирование финальных значений ссылочных параметров обратно.
// Для void-функций возвращается nil.
func (it *Interpreter) evalCall(call *ast.CallExpr) (*Value, error) {
	switch call.Name {
	case "print":
		return nil, it.callPrint(call)
	case "input":
		v, err := it.callInput(call)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case "mod":
		v, err := it.callMod(call)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	fn, ok := it.funcs[call.Name]
	if !ok {
		return nil, newError(call.Pos(), "Use of undeclared function '%s'", call.Name)
	}
	args, err := it.evalArgs(call)
	if err != nil {
		return nil, err
	}

	// Арность и форма передачи проверены семантическим анализатором;
	// здесь они перепроверяются на случай динамических расхождений.
	if len(args) != len(fn.Params) {
		return nil, newError(call.Pos(), "Function '%s' expects %d arguments, got %d", call.Name, len(fn.Params), len(args))
	}
	for i, p := range fn.Params {
		switch {
		case p.ByRef && !args[i].byRef:
			return nil, newError(call.Args[i].Pos(), "Parameter '%s' in function '%s' passed by Value - should be passed by Reference", p.Name, call.Name)
		case !p.ByRef && args[i].byRef:
			return nil, newError(call.Args[i].Pos(), "Parameter '%s' in function '%s' passed by Reference - should be passed by Value", p.Name, call.Name)
		case p.ByRef && args[i].name == "":
			return nil, newError(call.Args[i].Pos(), "Reference argument for parameter '%s' in function '%s' must be an identifier", p.Name, call.Name)
		}
	}

	callerFrame := it.stack.Top()
	frame := NewStackFrame(call.Name)
	for i, p := range fn.Params {
		if args[i].value.Type() != p.Type {
			return nil, newError(call.Args[i].Pos(), "Cannot assign value of type '%s' to parameter '%s' of type '%s'", args[i].value.Type(), p.Name, p.Type)
		}
		if !frame.Scopes.Declare(p.Name, args[i].value) {
			return nil, newError(call.Pos(), "Redeclaration of variable '%s'", p.Name)
		}
	}
	if !it.stack.Push(frame) {
		return nil, newError(call.Pos(), "Stack overflow: call depth exceeds %d", it.MaxDepth)
	}

	it.lastResult = nil
	if err := it.execBlock(fn.Body); err != nil {
		it.stack.Pop()
		return nil, err
	}
	if it.isBreaking {
		it.stack.Pop()
		return nil, newError(call.Pos(), "Break used outside of loop or switch")
	}
	it.isReturning = false

	result := it.lastResult
	it.lastResult = nil
	if fn.ReturnType != ast.Void {
		if result == nil {
			it.stack.Pop()
			return nil, newError(call.Pos(), "Function '%s' must return a value of type '%s'", call.Name, fn.ReturnType)
		}
		if result.Type() != fn.ReturnType {
			it.stack.Pop()
			return nil, newError(call.Pos(), "Function '%s' returned value of type '%s' - expected '%s'", call.Name, result.Type(), fn.ReturnType)
		}
	} else if result != nil {
		it.stack.Pop()
		return nil, newError(call.Pos(), "Function '%s' of type 'void' cannot return a value", call.Name)
	}

	// Собираем финальные значения ссылочных параметров до снятия кадра.
	var writebacks []refWriteback
	for i, p := range fn.Params {
		if !p.ByRef {
			continue
		}
		v, _ := frame.Scopes.Lookup(p.Name)
		writebacks = append(writebacks, refWriteback{name: args[i].name, value: v})
	}
	it.stack.Pop()
	for _, wb := range writebacks {
		callerFrame.Scopes.Assign(wb.name, wb.value)
	}
	return result, nil
}
