package runtime

import (
	"monkey-lang/internal/diag"
	"monkey-lang/internal/lexer"
	"monkey-lang/internal/parser"
)

// Run executes source text front to back: lex, parse, evaluate.
//
// Lexical and syntactic problems are returned as diagnostics and stop
// evaluation; a runtime failure is returned as the result value (an
// error value) with no diagnostics. The environment may be fresh or
// reused across calls, which lets a REPL keep bindings between inputs.
func (e *Evaluator) Run(source, filename string, env *Environment) (Value, []diag.Diagnostic) {
	l := lexer.New(source, filename)
	p := parser.New(l)
	program, parseDiags := p.ParseProgram()

	diags := append(l.Diags(), parseDiags...)
	if len(diags) > 0 {
		return nil, diags
	}

	return e.Eval(program, env), nil
}
