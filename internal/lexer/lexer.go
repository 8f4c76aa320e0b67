// Package lexer implements lexical analysis (tokenization) for monkey-lang.
package lexer

import (
	"monkey-lang/internal/diag"
	"monkey-lang/internal/span"
	"monkey-lang/internal/token"
)

// Lexer scans source code into a sequence of tokens. It is stateful:
// each NextToken call advances an internal cursor, with at most one
// character of lookahead.
type Lexer struct {
	source   string
	filename string

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based)

	diags []diag.Diagnostic
}

// New creates a new Lexer for the given source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

// Tokenize scans the entire source and returns all tokens and diagnostics.
// The token slice always ends with an EOF token.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diags
}

// Diags returns the diagnostics recorded so far. Useful for callers
// that consume tokens one at a time via NextToken.
func (l *Lexer) Diags() []diag.Diagnostic {
	return l.diags
}

// ---- internal helpers ----

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// peekNext returns the character after current, or 0 if at end.
func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

// advance consumes the current character and returns it.
func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// curPos returns the current cursor location.
func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
}

// addError records a diagnostic error.
func (l *Lexer) addError(code string, pos span.Position, format string, args ...interface{}) {
	l.diags = append(l.diags, diag.Errorf(code, pos, format, args...))
}

// ---- token reading ----

// NextToken returns the next token in the source, or an EOF token once
// the input is exhausted. Unrecognized characters yield ILLEGAL tokens;
// the scan never fails.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return token.Token{Kind: token.EOF, Lexeme: "", Pos: l.curPos()}
	}

	start := l.curPos()
	ch := l.peek()

	// String literal
	if ch == '"' {
		return l.readString(start)
	}

	// Integer literal
	if isDigit(ch) {
		return l.readNumber(start)
	}

	// Identifier or keyword
	if isIdentStart(ch) {
		return l.readIdentifier(start)
	}

	// Operators and delimiters
	return l.readOperator(start)
}

// readString reads a double-quoted string literal. Escape sequences are
// not processed: the scan runs straight to the closing quote. Hitting
// end of input first yields an ILLEGAL token.
func (l *Lexer) readString(start span.Position) token.Token {
	l.advance() // skip opening "
	valueStart := l.pos

	for l.pos < len(l.source) {
		if l.peek() == '"' {
			value := l.source[valueStart:l.pos]
			l.advance() // skip closing "
			return token.Token{Kind: token.STRING, Lexeme: value, Pos: start}
		}
		l.advance()
	}

	d := diag.Errorf("E1001", start, "unterminated string literal")
	d.Hint = "add a closing '\"'"
	l.diags = append(l.diags, d)
	return token.Token{Kind: token.ILLEGAL, Lexeme: l.source[valueStart:l.pos], Pos: start}
}

// readNumber reads a base-10 integer literal.
func (l *Lexer) readNumber(start span.Position) token.Token {
	numStart := l.pos
	for l.pos < len(l.source) && isDigit(l.peek()) {
		l.advance()
	}
	return token.Token{Kind: token.INT, Lexeme: l.source[numStart:l.pos], Pos: start}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	identStart := l.pos
	for l.pos < len(l.source) && isIdentPart(l.peek()) {
		l.advance()
	}
	lexeme := l.source[identStart:l.pos]
	return token.Token{Kind: token.LookupIdent(lexeme), Lexeme: lexeme, Pos: start}
}

// readOperator reads an operator or delimiter token. Two-character
// operators (== and !=) take one character of lookahead.
func (l *Lexer) readOperator(start span.Position) token.Token {
	ch := l.advance()

	switch ch {
	case '(':
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Pos: start}
	case ')':
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Pos: start}
	case '{':
		return token.Token{Kind: token.LBRACE, Lexeme: "{", Pos: start}
	case '}':
		return token.Token{Kind: token.RBRACE, Lexeme: "}", Pos: start}
	case '[':
		return token.Token{Kind: token.LBRACKET, Lexeme: "[", Pos: start}
	case ']':
		return token.Token{Kind: token.RBRACKET, Lexeme: "]", Pos: start}
	case ',':
		return token.Token{Kind: token.COMMA, Lexeme: ",", Pos: start}
	case ';':
		return token.Token{Kind: token.SEMICOLON, Lexeme: ";", Pos: start}
	case ':':
		return token.Token{Kind: token.COLON, Lexeme: ":", Pos: start}
	case '+':
		return token.Token{Kind: token.PLUS, Lexeme: "+", Pos: start}
	case '-':
		return token.Token{Kind: token.MINUS, Lexeme: "-", Pos: start}
	case '*':
		return token.Token{Kind: token.STAR, Lexeme: "*", Pos: start}
	case '/':
		return token.Token{Kind: token.SLASH, Lexeme: "/", Pos: start}
	case '<':
		return token.Token{Kind: token.LT, Lexeme: "<", Pos: start}
	case '>':
		return token.Token{Kind: token.GT, Lexeme: ">", Pos: start}
	case '=':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.EQ, Lexeme: "==", Pos: start}
		}
		return token.Token{Kind: token.ASSIGN, Lexeme: "=", Pos: start}
	case '!':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.NEQ, Lexeme: "!=", Pos: start}
		}
		return token.Token{Kind: token.BANG, Lexeme: "!", Pos: start}
	default:
		l.addError("E1002", start, "unexpected character: '%c'", ch)
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Pos: start}
	}
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
