// Command monkey is the CLI entry point for the monkey-lang toolchain.
//
// Usage:
//
//	monkey tokens <file>            Print tokens
//	monkey tokens <file> --json     Print tokens as JSON
//	monkey parse  <file>            Print AST as JSON
//	monkey run    <file>            Run a source file
//	monkey repl                     Start interactive REPL
package main

import (
	"fmt"
	"os"

	"monkey-lang/internal/ast"
	"monkey-lang/internal/lexer"
	"monkey-lang/internal/parser"
	"monkey-lang/internal/runtime"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "tokens":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdTokens(source, os.Args[2], hasFlag("--json"))
	case "parse":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdParse(source, os.Args[2])
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdRun(source, os.Args[2])
	case "repl":
		cmdRepl()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  monkey tokens <file> [--json]   Tokenize and print tokens")
	fmt.Fprintln(os.Stderr, "  monkey parse  <file>            Parse and print AST (JSON)")
	fmt.Fprintln(os.Stderr, "  monkey run    <file>            Run a source file")
	fmt.Fprintln(os.Stderr, "  monkey repl                     Start interactive REPL")
}

func readFile(filename string) string {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(source)
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args[3:] {
		if arg == flag {
			return true
		}
	}
	return false
}

// ---- tokens command ----

func cmdTokens(source, filename string, jsonMode bool) {
	l := lexer.New(source, filename)
	tokens, diags := l.Tokenize()

	if jsonMode {
		printTokensJSON(tokens, diags)
	} else {
		printTokensText(tokens, diags)
	}

	if len(diags) > 0 {
		os.Exit(1)
	}
}

// ---- parse command ----

func cmdParse(source, filename string) {
	l := lexer.New(source, filename)
	p := parser.New(l)
	program, parseDiags := p.ParseProgram()

	allDiags := append(l.Diags(), parseDiags...)

	output := map[string]interface{}{
		"ast":         ast.NodeToMap(program),
		"diagnostics": diagsToSlice(allDiags),
	}
	printJSON(output)

	if len(allDiags) > 0 {
		os.Exit(1)
	}
}

// ---- run command ----

func cmdRun(source, filename string) {
	ev := runtime.NewEvaluator(os.Stdout)
	env := runtime.NewEnvironment()

	result, diags := ev.Run(source, filename, env)
	if len(diags) > 0 {
		printDiagsText(diags)
		os.Exit(1)
	}
	if runtime.IsError(result) {
		fmt.Fprintln(os.Stderr, result.String())
		os.Exit(1)
	}
}
