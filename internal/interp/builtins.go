// Package interp - встроенные функции print, input и mod.
package interp

import (
	"io"
	"strings"

	"github.com/semetekare/minilang/internal/ast"
)

// callPrint приводит каждый аргумент к канонической строковой форме
// (строки проходят как есть), соединяет их одним пробелом и пишет
// одну строку, завершённую '\n', в стандартный вывод.
func (it *Interpreter) callPrint(call *ast.CallExpr) error {
	args, err := it.evalArgs(call)
	if err != nil {
		return err
	}
	parts := make([]string, len(args))
	for i, a := range args {
		if a.byRef {
			return newError(call.Args[i].Pos(), "Argument in function 'print' passed by Reference - should be passed by Value")
		}
		parts[i] = a.value.Format()
	}
	if _, err := io.WriteString(it.stdout, strings.Join(parts, " ")+"\n"); err != nil {
		return newError(call.Pos(), "Failed to write output: %v", err)
	}
	return nil
}

// callInput пишет приглашение без перевода строки, читает одну строку
// из стандартного ввода, отбрасывает завершающий перевод строки
// и возвращает прочитанное как str.
func (it *Interpreter) callInput(call *ast.CallExpr) (Value, error) {
	args, err := it.evalArgs(call)
	if err != nil {
		return Value{}, err
	}
	if len(args) != 1 {
		return Value{}, newError(call.Pos(), "Function 'input' expects 1 arguments, got %d", len(args))
	}
	if args[0].byRef {
		return Value{}, newError(call.Args[0].Pos(), "Parameter 'prompt' in function 'input' passed by Reference - should be passed by Value")
	}
	if args[0].value.Type() != ast.Str {
		return Value{}, newError(call.Args[0].Pos(), "Cannot assign value of type '%s' to parameter 'prompt' of type 'str'", args[0].value.Type())
	}
	if _, err := io.WriteString(it.stdout, args[0].value.Str()); err != nil {
		return Value{}, newError(call.Pos(), "Failed to write output: %v", err)
	}
	line, err := it.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return Value{}, newError(call.Pos(), "Failed to read input: %v", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return StrValue(line), nil
}

// callMod возвращает остаток от деления со знаком делимого
// (усечённое деление). Остаток от деления на ноль — ошибка.
func (it *Interpreter) callMod(call *ast.CallExpr) (Value, error) {
	args, err := it.evalArgs(call)
	if err != nil {
		return Value{}, err
	}
	if len(args) != 2 {
		return Value{}, newError(call.Pos(), "Function 'mod' expects 2 arguments, got %d", len(args))
	}
	names := [2]string{"a", "b"}
	for i, a := range args {
		if a.byRef {
			return Value{}, newError(call.Args[i].Pos(), "Parameter '%s' in function 'mod' passed by Reference - should be passed by Value", names[i])
		}
		if a.value.Type() != ast.I64 {
			return Value{}, newError(call.Args[i].Pos(), "Cannot assign value of type '%s' to parameter '%s' of type 'i64'", a.value.Type(), names[i])
		}
	}
	if args[1].value.Int() == 0 {
		return Value{}, newError(call.Pos(), "Modulo by zero")
	}
	return IntValue(args[0].value.Int() % args[1].value.Int()), nil
}
