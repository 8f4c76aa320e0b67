package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"monkey-lang/internal/span"
	"monkey-lang/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeSimple(t *testing.T) {
	source := `let x = 1 + 2;`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.KW_LET, token.IDENT, token.ASSIGN,
		token.INT, token.PLUS, token.INT, token.SEMICOLON, token.EOF,
	}

	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeKeywords(t *testing.T) {
	source := `let fn if else return true false`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.KW_LET, token.KW_FN, token.KW_IF, token.KW_ELSE,
		token.KW_RETURN, token.KW_TRUE, token.KW_FALSE, token.EOF,
	}

	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeOperators(t *testing.T) {
	source := `= == != < > + - * / !`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.ASSIGN, token.EQ, token.NEQ, token.LT, token.GT,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.BANG,
		token.EOF,
	}

	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeDelimiters(t *testing.T) {
	source := `( ) { } [ ] , ; :`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.SEMICOLON,
		token.COLON, token.EOF,
	}

	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeString(t *testing.T) {
	source := `"hello world"`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != token.STRING {
		t.Errorf("expected STRING, got %s", tokens[0].Kind)
	}
	if tokens[0].Lexeme != "hello world" {
		t.Errorf("expected lexeme %q, got %q", "hello world", tokens[0].Lexeme)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	source := `"no closing quote`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Code != "E1001" {
		t.Errorf("expected code E1001, got %s", diags[0].Code)
	}
	if diags[0].Hint == "" {
		t.Error("expected a hint on the unterminated string diagnostic")
	}
	if tokens[0].Kind != token.ILLEGAL {
		t.Errorf("expected ILLEGAL token, got %s", tokens[0].Kind)
	}
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	source := `let x = 1 @ 2`
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Code != "E1002" {
		t.Errorf("expected code E1002, got %s", diags[0].Code)
	}

	found := false
	for _, tok := range tokens {
		if tok.Kind == token.ILLEGAL && tok.Lexeme == "@" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ILLEGAL '@' token in stream, got %v", kinds(tokens))
	}
}

func TestTokenizePositions(t *testing.T) {
	source := "let x = 1;\nlet y = 2;"
	l := New(source, "test.monkey")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []span.Position{
		{Offset: 0, Line: 1, Column: 1},   // let
		{Offset: 4, Line: 1, Column: 5},   // x
		{Offset: 6, Line: 1, Column: 7},   // =
		{Offset: 8, Line: 1, Column: 9},   // 1
		{Offset: 9, Line: 1, Column: 10},  // ;
		{Offset: 11, Line: 2, Column: 1},  // let
		{Offset: 15, Line: 2, Column: 5},  // y
		{Offset: 17, Line: 2, Column: 7},  // =
		{Offset: 19, Line: 2, Column: 9},  // 2
		{Offset: 20, Line: 2, Column: 10}, // ;
	}

	for i, want := range expected {
		if tokens[i].Pos != want {
			t.Errorf("token[%d] %q: expected pos %+v, got %+v", i, tokens[i].Lexeme, want, tokens[i].Pos)
		}
	}
}

func TestNextTokenStreaming(t *testing.T) {
	source := `x == y`
	l := New(source, "test.monkey")

	first := l.NextToken()
	if first.Kind != token.IDENT || first.Lexeme != "x" {
		t.Errorf("expected IDENT x, got %s %q", first.Kind, first.Lexeme)
	}
	second := l.NextToken()
	if second.Kind != token.EQ {
		t.Errorf("expected EQ, got %s", second.Kind)
	}
	third := l.NextToken()
	if third.Kind != token.IDENT || third.Lexeme != "y" {
		t.Errorf("expected IDENT y, got %s %q", third.Kind, third.Lexeme)
	}
	if tok := l.NextToken(); tok.Kind != token.EOF {
		t.Errorf("expected EOF, got %s", tok.Kind)
	}
	// NextToken stays at EOF once exhausted.
	if tok := l.NextToken(); tok.Kind != token.EOF {
		t.Errorf("expected EOF on repeated call, got %s", tok.Kind)
	}
}
