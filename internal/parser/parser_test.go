// internal/parser/parser_test.go
package parser_test

import (
	"strings"
	"testing"

	"github.com/semetekare/minilang/internal/ast"
	"github.com/semetekare/minilang/internal/lexer"
	"github.com/semetekare/minilang/internal/parser"
)

// parseSource токенизирует строку и запускает парсер.
func parseSource(t *testing.T, src string) (*ast.Program, []parser.ParseError) {
	t.Helper()
	lx := lexer.NewLexer()
	toks, err := lx.Lex(src)
	if err != nil {
		t.Fatalf("Lexing failed: %v", err)
	}
	p := parser.NewParser(toks)
	return p.ParseProgram()
}

// mustParse парсит строку и требует отсутствия ошибок.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, errs := parseSource(t, src)
	if len(errs) > 0 {
		for _, e := range errs {
			t.Logf("  %s", e)
		}
		t.Fatalf("Expected 0 errors, got %d", len(errs))
	}
	return program
}

func TestParseFunctionDeclaration(t *testing.T) {
	program := mustParse(t, `
fn add(i64 a, i64 b): i64 {
	return a + b;
}
`)
	if len(program.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(program.Items))
	}
	fn, ok := program.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("Expected FunctionDecl, got %T", program.Items[0])
	}
	if fn.Name != "add" {
		t.Errorf("Expected name 'add', got %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("Expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Type != ast.I64 || fn.Params[0].Name != "a" || fn.Params[0].ByRef {
		t.Errorf("Param 0 mismatch: %+v", fn.Params[0])
	}
	if fn.ReturnType != ast.I64 {
		t.Errorf("Expected return type i64, got %s", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("Expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
}

func TestParseByRefParameter(t *testing.T) {
	program := mustParse(t, `
fn bump(&i64 counter): void {
	counter = counter + 1;
}
`)
	fn := program.Items[0].(*ast.FunctionDecl)
	if !fn.Params[0].ByRef {
		t.Error("Expected by-reference parameter")
	}
	if fn.ReturnType != ast.Void {
		t.Errorf("Expected void return type, got %s", fn.ReturnType)
	}
}

func TestParseDeclarationWithInitializer(t *testing.T) {
	program := mustParse(t, `i64 x = 1 + 2;`)
	decl, ok := program.Items[0].(*ast.DeclStmt)
	if !ok {
		t.Fatalf("Expected DeclStmt, got %T", program.Items[0])
	}
	if decl.Type != ast.I64 || decl.Name != "x" {
		t.Errorf("Declaration mismatch: %+v", decl)
	}
	if _, ok := decl.Init.(*ast.BinaryExpr); !ok {
		t.Errorf("Expected BinaryExpr initializer, got %T", decl.Init)
	}
}

func TestParseDeclarationWithoutInitializer(t *testing.T) {
	program := mustParse(t, `str name;`)
	decl := program.Items[0].(*ast.DeclStmt)
	if decl.Init != nil {
		t.Errorf("Expected nil initializer, got %v", decl.Init)
	}
}

func TestParseAssignVersusCall(t *testing.T) {
	program := mustParse(t, `
x = 1;
print(x);
`)
	if _, ok := program.Items[0].(*ast.AssignStmt); !ok {
		t.Errorf("Expected AssignStmt, got %T", program.Items[0])
	}
	call, ok := program.Items[1].(*ast.CallStmt)
	if !ok {
		t.Fatalf("Expected CallStmt, got %T", program.Items[1])
	}
	if call.Call.Name != "print" || len(call.Call.Args) != 1 {
		t.Errorf("Call mismatch: %+v", call.Call)
	}
}

func TestParseByRefArgument(t *testing.T) {
	program := mustParse(t, `bump(&x);`)
	call := program.Items[0].(*ast.CallStmt)
	if !call.Call.Args[0].ByRef {
		t.Error("Expected by-reference argument")
	}
	if _, ok := call.Call.Args[0].Value.(*ast.Ident); !ok {
		t.Errorf("Expected identifier argument, got %T", call.Call.Args[0].Value)
	}
}

func TestParseIfElse(t *testing.T) {
	program := mustParse(t, `
if (x < 10) {
	print("small");
} else {
	print("big");
}
`)
	ifStmt, ok := program.Items[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("Expected IfStmt, got %T", program.Items[0])
	}
	if ifStmt.Else == nil {
		t.Error("Expected else branch")
	}
}

func TestParseForLoop(t *testing.T) {
	program := mustParse(t, `for (i64 i = 0; i < 3; i = i + 1) { print(i as str); }`)
	forStmt, ok := program.Items[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("Expected ForStmt, got %T", program.Items[0])
	}
	if forStmt.Init == nil || forStmt.Init.Name != "i" {
		t.Errorf("Loop declaration mismatch: %+v", forStmt.Init)
	}
	if forStmt.Post == nil || forStmt.Post.Name != "i" {
		t.Errorf("Loop step mismatch: %+v", forStmt.Post)
	}
}

func TestParseForLoopBareHeader(t *testing.T) {
	program := mustParse(t, `for (; running; ) { step(); }`)
	forStmt := program.Items[0].(*ast.ForStmt)
	if forStmt.Init != nil || forStmt.Post != nil {
		t.Errorf("Expected empty init and step, got %+v / %+v", forStmt.Init, forStmt.Post)
	}
	if forStmt.Cond == nil {
		t.Error("Condition is mandatory")
	}
}

func TestParseSwitch(t *testing.T) {
	program := mustParse(t, `
switch (5: v, x + 1) {
	(v < 10) -> { print("lt10"); }
	(v > 0) -> { print("pos"); break; }
}
`)
	sw, ok := program.Items[0].(*ast.SwitchStmt)
	if !ok {
		t.Fatalf("Expected SwitchStmt, got %T", program.Items[0])
	}
	if len(sw.Exprs) != 2 {
		t.Fatalf("Expected 2 switch expressions, got %d", len(sw.Exprs))
	}
	if sw.Exprs[0].Alias != "v" {
		t.Errorf("Expected alias 'v', got %q", sw.Exprs[0].Alias)
	}
	if sw.Exprs[1].Alias != "" {
		t.Errorf("Expected no alias, got %q", sw.Exprs[1].Alias)
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("Expected 2 cases, got %d", len(sw.Cases))
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 должно разобраться как 1 + (2 * 3)
	program := mustParse(t, `i64 x = 1 + 2 * 3;`)
	decl := program.Items[0].(*ast.DeclStmt)
	add, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("Expected top-level '+', got %v", decl.Init)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("Expected '*' on the right, got %v", add.Right)
	}
}

func TestParseCastPrecedence(t *testing.T) {
	// x as f64 * 2.0 должно разобраться как (x as f64) * 2.0
	program := mustParse(t, `f64 y = x as f64 * 2.0;`)
	decl := program.Items[0].(*ast.DeclStmt)
	mul, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("Expected top-level '*', got %v", decl.Init)
	}
	if _, ok := mul.Left.(*ast.CastExpr); !ok {
		t.Errorf("Expected CastExpr on the left, got %T", mul.Left)
	}
}

func TestParseChainedCast(t *testing.T) {
	program := mustParse(t, `i64 x = y as str as i64;`)
	decl := program.Items[0].(*ast.DeclStmt)
	outer, ok := decl.Init.(*ast.CastExpr)
	if !ok || outer.To != ast.I64 {
		t.Fatalf("Expected outer cast to i64, got %v", decl.Init)
	}
	inner, ok := outer.X.(*ast.CastExpr)
	if !ok || inner.To != ast.Str {
		t.Fatalf("Expected inner cast to str, got %v", outer.X)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 3 - 2 должно разобраться как (10 - 3) - 2
	program := mustParse(t, `i64 x = 10 - 3 - 2;`)
	decl := program.Items[0].(*ast.DeclStmt)
	outer := decl.Init.(*ast.BinaryExpr)
	if outer.Op != "-" {
		t.Fatalf("Expected '-', got %q", outer.Op)
	}
	if _, ok := outer.Left.(*ast.BinaryExpr); !ok {
		t.Errorf("Expected nested BinaryExpr on the left, got %T", outer.Left)
	}
}

func TestParseUnaryInExpression(t *testing.T) {
	program := mustParse(t, `bool b = !done && -x < 0;`)
	decl := program.Items[0].(*ast.DeclStmt)
	and, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || and.Op != "&&" {
		t.Fatalf("Expected '&&' at the top, got %v", decl.Init)
	}
	if _, ok := and.Left.(*ast.UnaryExpr); !ok {
		t.Errorf("Expected UnaryExpr '!' on the left, got %T", and.Left)
	}
}

func TestParseRelationalNotChainable(t *testing.T) {
	_, errs := parseSource(t, `bool b = 1 < 2 < 3;`)
	if len(errs) == 0 {
		t.Fatal("Expected error for chained relational operators")
	}
}

func TestParseFunctionRedeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"user function", "fn f(): void { }\nfn f(): void { }"},
		{"builtin print", "fn print(): void { }"},
		{"builtin input", "fn input(): void { }"},
		{"builtin mod", "fn mod(): void { }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseSource(t, tt.src)
			if len(errs) == 0 {
				t.Fatal("Expected redeclaration error, got none")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e.Msg, "Redeclaration of function") {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected redeclaration message, got %v", errs)
			}
		})
	}
}

func TestParseVoidVariableRejected(t *testing.T) {
	_, errs := parseSource(t, `void x;`)
	if len(errs) == 0 {
		t.Fatal("Expected error for void variable")
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	_, errs := parseSource(t, `i64 x = 1`)
	if len(errs) == 0 {
		t.Fatal("Expected error for missing ';'")
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	// Ошибка в первом операторе не должна скрывать последующие конструкции.
	program, errs := parseSource(t, `
i64 x = ;
i64 y = 2;
`)
	if len(errs) == 0 {
		t.Fatal("Expected at least one error")
	}
	found := false
	for _, item := range program.Items {
		if d, ok := item.(*ast.DeclStmt); ok && d.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Error("Parser did not recover to parse the second declaration")
	}
}

func TestParsePrettyPrintShowsParsedNodes(t *testing.T) {
	program := mustParse(t, `
fn is_even(i64 x): bool {
	return mod(x, 2) == 0;
}
for (i64 i = 0; i < 4; i = i + 1) {
	if (is_even(i)) { print(i as str); }
}
`)
	out := ast.PrettyPrint(program)
	for _, want := range []string{"FunctionDecl{Name: is_even}", "ForStmt", "CallExpr{mod, Args: 2}", "CastExpr{as str}"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyPrint output missing %q:\n%s", want, out)
		}
	}
}
