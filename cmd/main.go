// CLI точка входа интерпретатора minilang.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/semetekare/minilang/internal/ast"
	"github.com/semetekare/minilang/internal/interp"
	"github.com/semetekare/minilang/internal/lexer"
	"github.com/semetekare/minilang/internal/parser"
	"github.com/semetekare/minilang/internal/sema"
)

// main — точка входа полного конвейера: лексер, парсер, семантический
// анализ, интерпретация. Единственный позиционный аргумент — путь к
// исходному файлу в UTF-8. Код возврата 0 при успешном выполнении
// программы, ненулевой — при любой фатальной диагностике.
// CLI: go run ./cmd program.mini
func main() {
	astDump := flag.Bool("ast", false, "print the parsed AST instead of executing")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: minilang [-ast] <file>")
		os.Exit(1)
	}
	inputFile := flag.Arg(0)
	b, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}

	lx := lexer.NewLexer()
	lx.SetWarningHandler(func(w lexer.Warning) {
		fmt.Fprintln(os.Stderr, w)
	})
	toks, err := lx.Lex(string(b))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := parser.NewParser(toks)
	program, parseErrs := p.ParseProgram()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	if *astDump {
		fmt.Print(ast.PrettyPrint(program))
		return
	}

	checker := sema.NewChecker()
	semErrs := checker.Check(program)
	if len(semErrs) > 0 {
		for _, e := range semErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	in := interp.NewInterpreter(program, os.Stdin, os.Stdout)
	if err := in.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
