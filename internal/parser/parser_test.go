package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"monkey-lang/internal/ast"
	"monkey-lang/internal/diag"
	"monkey-lang/internal/lexer"
	"monkey-lang/internal/token"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	l := lexer.New(source, "test.monkey")
	p := New(l)
	program, diags := p.ParseProgram()
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if lexDiags := l.Diags(); len(lexDiags) > 0 {
		t.Fatalf("unexpected lexer diagnostics: %v", lexDiags)
	}
	return program
}

func parseWithErrors(t *testing.T, source string) (*ast.Program, []string) {
	t.Helper()
	l := lexer.New(source, "test.monkey")
	p := New(l)
	program, diags := p.ParseProgram()
	return program, diag.Messages(diags)
}

func TestParseLetStatement(t *testing.T) {
	program := parseSource(t, `let answer = 42;`)

	if len(program.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Stmts))
	}
	letStmt, ok := program.Stmts[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", program.Stmts[0])
	}
	if letStmt.Name.Name != "answer" {
		t.Errorf("expected name 'answer', got %q", letStmt.Name.Name)
	}
	lit, ok := letStmt.Value.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected *ast.IntLiteral value, got %T", letStmt.Value)
	}
	if lit.Value != 42 {
		t.Errorf("expected 42, got %d", lit.Value)
	}
}

func TestParseReturnStatement(t *testing.T) {
	program := parseSource(t, `return x + 1;`)

	if len(program.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Stmts))
	}
	retStmt, ok := program.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", program.Stmts[0])
	}
	if _, ok := retStmt.Value.(*ast.InfixExpr); !ok {
		t.Errorf("expected *ast.InfixExpr value, got %T", retStmt.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3).
	program := parseSource(t, `1 + 2 * 3`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	add, ok := exprStmt.Expr.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected *ast.InfixExpr, got %T", exprStmt.Expr)
	}
	if add.Op != token.PLUS {
		t.Fatalf("expected outer op +, got %s", add.Op)
	}
	if lit, ok := add.Left.(*ast.IntLiteral); !ok || lit.Value != 1 {
		t.Errorf("expected left operand 1, got %v", add.Left)
	}
	mul, ok := add.Right.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected right operand *ast.InfixExpr, got %T", add.Right)
	}
	if mul.Op != token.STAR {
		t.Errorf("expected inner op *, got %s", mul.Op)
	}
}

func TestParseGroupingOverridesPrecedence(t *testing.T) {
	// (1 + 2) * 3 parses as (1 + 2) * 3.
	program := parseSource(t, `(1 + 2) * 3`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	mul, ok := exprStmt.Expr.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected *ast.InfixExpr, got %T", exprStmt.Expr)
	}
	if mul.Op != token.STAR {
		t.Fatalf("expected outer op *, got %s", mul.Op)
	}
	if _, ok := mul.Left.(*ast.InfixExpr); !ok {
		t.Errorf("expected left operand *ast.InfixExpr, got %T", mul.Left)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 4 - 3 parses as (10 - 4) - 3.
	program := parseSource(t, `10 - 4 - 3`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	outer := exprStmt.Expr.(*ast.InfixExpr)
	if outer.Op != token.MINUS {
		t.Fatalf("expected outer op -, got %s", outer.Op)
	}
	inner, ok := outer.Left.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected left operand *ast.InfixExpr, got %T", outer.Left)
	}
	if lit, ok := inner.Left.(*ast.IntLiteral); !ok || lit.Value != 10 {
		t.Errorf("expected innermost left 10, got %v", inner.Left)
	}
}

func TestParsePrefixExpressions(t *testing.T) {
	tests := []struct {
		source string
		op     token.Kind
	}{
		{`!true`, token.BANG},
		{`-15`, token.MINUS},
		{`!!x`, token.BANG},
	}

	for _, tt := range tests {
		program := parseSource(t, tt.source)
		exprStmt := program.Stmts[0].(*ast.ExprStmt)
		prefix, ok := exprStmt.Expr.(*ast.PrefixExpr)
		if !ok {
			t.Errorf("%s: expected *ast.PrefixExpr, got %T", tt.source, exprStmt.Expr)
			continue
		}
		if prefix.Op != tt.op {
			t.Errorf("%s: expected op %s, got %s", tt.source, tt.op, prefix.Op)
		}
	}
}

func TestParseIfExpression(t *testing.T) {
	program := parseSource(t, `if (x < y) { x } else { y }`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	ifExpr, ok := exprStmt.Expr.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected *ast.IfExpr, got %T", exprStmt.Expr)
	}
	if _, ok := ifExpr.Condition.(*ast.InfixExpr); !ok {
		t.Errorf("expected *ast.InfixExpr condition, got %T", ifExpr.Condition)
	}
	if len(ifExpr.Consequence.Stmts) != 1 {
		t.Errorf("expected 1 consequence statement, got %d", len(ifExpr.Consequence.Stmts))
	}
	if ifExpr.Alternative == nil {
		t.Fatal("expected alternative block, got nil")
	}
	if len(ifExpr.Alternative.Stmts) != 1 {
		t.Errorf("expected 1 alternative statement, got %d", len(ifExpr.Alternative.Stmts))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	program := parseSource(t, `if (x) { 1 }`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	ifExpr := exprStmt.Expr.(*ast.IfExpr)
	if ifExpr.Alternative != nil {
		t.Errorf("expected nil alternative, got %v", ifExpr.Alternative)
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	program := parseSource(t, `fn(a, b) { a + b }`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	fn, ok := exprStmt.Expr.(*ast.FuncLiteral)
	if !ok {
		t.Fatalf("expected *ast.FuncLiteral, got %T", exprStmt.Expr)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("expected params a, b; got %s, %s", fn.Params[0].Name, fn.Params[1].Name)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
}

func TestParseCallExpression(t *testing.T) {
	program := parseSource(t, `add(1, 2 * 3, other)`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", exprStmt.Expr)
	}
	if ident, ok := call.Callee.(*ast.IdentExpr); !ok || ident.Name != "add" {
		t.Errorf("expected callee 'add', got %v", call.Callee)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
	if _, ok := call.Args[1].(*ast.InfixExpr); !ok {
		t.Errorf("expected arg[1] *ast.InfixExpr, got %T", call.Args[1])
	}
}

func TestParseArrayAndIndex(t *testing.T) {
	program := parseSource(t, `[1, 2, 3][1 + 1]`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	idx, ok := exprStmt.Expr.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected *ast.IndexExpr, got %T", exprStmt.Expr)
	}
	arr, ok := idx.Object.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayLiteral object, got %T", idx.Object)
	}
	if len(arr.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(arr.Elements))
	}
	if _, ok := idx.Index.(*ast.InfixExpr); !ok {
		t.Errorf("expected *ast.InfixExpr index, got %T", idx.Index)
	}
}

func TestParseHashLiteral(t *testing.T) {
	program := parseSource(t, `{"one": 1, "two": 2}`)

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	hash, ok := exprStmt.Expr.(*ast.HashLiteral)
	if !ok {
		t.Fatalf("expected *ast.HashLiteral, got %T", exprStmt.Expr)
	}
	if len(hash.Keys) != 2 || len(hash.Values) != 2 {
		t.Fatalf("expected 2 pairs, got %d keys, %d values", len(hash.Keys), len(hash.Values))
	}
	key, ok := hash.Keys[0].(*ast.StringLiteral)
	if !ok || key.Value != "one" {
		t.Errorf("expected first key \"one\", got %v", hash.Keys[0])
	}
}

func TestParseEmptyHashVsBlock(t *testing.T) {
	// A leading { in expression position opens a hash literal.
	program := parseSource(t, `let empty = {};`)

	letStmt := program.Stmts[0].(*ast.LetStmt)
	hash, ok := letStmt.Value.(*ast.HashLiteral)
	if !ok {
		t.Fatalf("expected *ast.HashLiteral, got %T", letStmt.Value)
	}
	if len(hash.Keys) != 0 {
		t.Errorf("expected empty hash, got %d keys", len(hash.Keys))
	}
}

func TestParseErrorMissingIdent(t *testing.T) {
	_, msgs := parseWithErrors(t, `let = 5;`)
	if len(msgs) == 0 {
		t.Fatal("expected diagnostics, got none")
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// The bad first statement must not swallow the valid ones after it.
	source := "let = 5;\nlet x = 10;\nlet y = 20;"
	program, msgs := parseWithErrors(t, source)

	if len(msgs) == 0 {
		t.Fatal("expected diagnostics, got none")
	}

	valid := 0
	for _, stmt := range program.Stmts {
		if letStmt, ok := stmt.(*ast.LetStmt); ok && letStmt.Name != nil {
			valid++
		}
	}
	if valid < 2 {
		t.Errorf("expected at least 2 recovered let statements, got %d", valid)
	}
}

func TestParseIntegerOverflow(t *testing.T) {
	_, msgs := parseWithErrors(t, `99999999999999999999`)
	if len(msgs) == 0 {
		t.Fatal("expected overflow diagnostic, got none")
	}
}

func TestParseIdempotent(t *testing.T) {
	source := `let f = fn(x) { x * 2 }; f(21); [1, {"k": true}][0]`

	first := parseSource(t, source)
	second := parseSource(t, source)

	if diff := cmp.Diff(ast.NodeToMap(first), ast.NodeToMap(second)); diff != "" {
		t.Errorf("ASTs differ between runs (-first +second):\n%s", diff)
	}
}

func TestParseIdempotentDiagnostics(t *testing.T) {
	source := "let = 5;\nfoo +;\nlet x = 10;"

	firstProgram, firstMsgs := parseWithErrors(t, source)
	secondProgram, secondMsgs := parseWithErrors(t, source)

	if len(firstMsgs) == 0 {
		t.Fatal("expected diagnostics, got none")
	}
	if diff := cmp.Diff(firstMsgs, secondMsgs); diff != "" {
		t.Errorf("diagnostics differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(ast.NodeToMap(firstProgram), ast.NodeToMap(secondProgram)); diff != "" {
		t.Errorf("recovered ASTs differ between runs (-first +second):\n%s", diff)
	}
}

func TestNodeToMapShape(t *testing.T) {
	program := parseSource(t, `let x = 1;`)

	node := ast.NodeToMap(program)
	if node["kind"] != "Program" {
		t.Errorf("expected kind Program, got %v", node["kind"])
	}
	stmts, ok := node["stmts"].([]interface{})
	if !ok || len(stmts) != 1 {
		t.Fatalf("expected 1 stmt in map, got %v", node["stmts"])
	}
	letMap, ok := stmts[0].(map[string]interface{})
	if !ok || letMap["kind"] != "LetStmt" {
		t.Errorf("expected LetStmt map, got %v", stmts[0])
	}
}
