// Package parser implements syntax analysis for monkey-lang.
// It uses recursive descent for statements and Pratt parsing
// (precedence climbing) for expressions.
package parser

import (
	"strconv"

	"monkey-lang/internal/ast"
	"monkey-lang/internal/diag"
	"monkey-lang/internal/lexer"
	"monkey-lang/internal/span"
	"monkey-lang/internal/token"
)

// ============================================================
// Binding power (precedence) levels
// ============================================================

const (
	bpNone       = 0
	bpEquality   = 10 // == !=
	bpComparison = 20 // < >
	bpAdditive   = 30 // + -
	bpMultiply   = 40 // * /
	bpPrefix     = 50 // ! -
	bpPostfix    = 60 // () []
)

// infixBP returns the left binding power for an infix/postfix operator.
func infixBP(kind token.Kind) int {
	switch kind {
	case token.EQ, token.NEQ:
		return bpEquality
	case token.LT, token.GT:
		return bpComparison
	case token.PLUS, token.MINUS:
		return bpAdditive
	case token.STAR, token.SLASH:
		return bpMultiply
	case token.LPAREN, token.LBRACKET:
		return bpPostfix
	default:
		return bpNone
	}
}

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on the token stream produced by a
// Lexer. It holds exactly two lookahead slots: the current token and
// the peeked token.
type Parser struct {
	lexer *lexer.Lexer
	cur   token.Token
	peek  token.Token
	diags []diag.Diagnostic
}

// New creates a new parser reading from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}
	// Prime both lookahead slots.
	p.next()
	p.next()
	return p
}

// ParseProgram parses the entire input and returns the program root
// and any diagnostics. A malformed statement is skipped and parsing
// resumes at the next statement boundary, so partial programs still
// parse.
func (p *Parser) ParseProgram() (*ast.Program, []diag.Diagnostic) {
	program := &ast.Program{NodeBase: ast.NodeBase{Pos: p.cur.Pos}}

	for p.cur.Kind != token.EOF {
		stmt := p.parseStmt()
		if stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
		}
		if p.cur.Kind == token.EOF {
			break
		}
		p.next()
	}

	return program, p.diags
}

// ---- navigation helpers ----

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// expectPeek advances when the peeked token has the wanted kind;
// otherwise it records an error naming both tokens and stays put.
func (p *Parser) expectPeek(kind token.Kind) bool {
	if p.peek.Kind == kind {
		p.next()
		return true
	}
	p.errorf("E2001", p.peek.Pos, "expected '%s', got '%s'", kind, p.peek.Kind)
	return false
}

func (p *Parser) errorf(code string, pos span.Position, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.Errorf(code, pos, format, args...))
}

// ============================================================
// Error recovery
// ============================================================

// synchronize skips tokens until a likely statement boundary: a
// semicolon, a closing brace, end of input, or a statement-starting
// keyword about to begin.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.EOF {
		if p.cur.Kind == token.SEMICOLON || p.cur.Kind == token.RBRACE {
			return
		}
		if p.peek.Kind == token.KW_LET || p.peek.Kind == token.KW_RETURN {
			return
		}
		p.next()
	}
}

// ============================================================
// Statement parsing
// ============================================================

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case token.KW_LET:
		return p.parseLetStmt()
	case token.KW_RETURN:
		return p.parseReturnStmt()
	case token.SEMICOLON:
		return nil // stray separator
	default:
		return p.parseExprStmt()
	}
}

// parseLetStmt parses: let IDENT = EXPR ;
func (p *Parser) parseLetStmt() ast.Stmt {
	stmt := &ast.LetStmt{StmtBase: makeStmtBase(p.cur.Pos)}

	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	stmt.Name = &ast.IdentExpr{ExprBase: makeExprBase(p.cur.Pos), Name: p.cur.Lexeme}

	if !p.expectPeek(token.ASSIGN) {
		p.synchronize()
		return nil
	}

	p.next()
	stmt.Value = p.parseExpr(bpNone)
	if stmt.Value == nil {
		p.synchronize()
		return nil
	}

	if p.peek.Kind == token.SEMICOLON {
		p.next()
	}
	return stmt
}

// parseReturnStmt parses: return EXPR ;
func (p *Parser) parseReturnStmt() ast.Stmt {
	stmt := &ast.ReturnStmt{StmtBase: makeStmtBase(p.cur.Pos)}

	p.next()
	stmt.Value = p.parseExpr(bpNone)
	if stmt.Value == nil {
		p.synchronize()
		return nil
	}

	if p.peek.Kind == token.SEMICOLON {
		p.next()
	}
	return stmt
}

// parseExprStmt parses an expression used as a statement.
func (p *Parser) parseExprStmt() ast.Stmt {
	pos := p.cur.Pos
	expr := p.parseExpr(bpNone)
	if expr == nil {
		p.synchronize()
		return nil
	}

	if p.peek.Kind == token.SEMICOLON {
		p.next()
	}
	return &ast.ExprStmt{StmtBase: makeStmtBase(pos), Expr: expr}
}

// parseBlock parses the statements of a braced block. The current
// token must be '{' on entry; on exit it is the closing '}'.
func (p *Parser) parseBlock() *ast.BlockStmt {
	block := &ast.BlockStmt{StmtBase: makeStmtBase(p.cur.Pos)}

	p.next()
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.cur.Kind == token.RBRACE || p.cur.Kind == token.EOF {
			break
		}
		p.next()
	}

	if p.cur.Kind != token.RBRACE {
		p.errorf("E2001", p.cur.Pos, "expected '}', got '%s'", p.cur.Kind)
	}
	return block
}

// ============================================================
// Expression parsing (Pratt / precedence climbing)
// ============================================================

// parseExpr parses an expression with the given minimum binding power.
// The current token must be the first token of the expression; on exit
// it is the last token of the expression. Returns nil on failure (the
// error has already been recorded).
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.nud()
	if left == nil {
		return nil
	}

	for p.peek.Kind != token.SEMICOLON && infixBP(p.peek.Kind) > minBP {
		p.next()
		left = p.led(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// nud handles prefix (null denotation) parsing for the current token.
func (p *Parser) nud() ast.Expr {
	tok := p.cur

	switch tok.Kind {
	case token.INT:
		val, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf("E2003", tok.Pos, "integer literal out of range: %s", tok.Lexeme)
			return nil
		}
		return &ast.IntLiteral{ExprBase: makeExprBase(tok.Pos), Value: val}

	case token.STRING:
		return &ast.StringLiteral{ExprBase: makeExprBase(tok.Pos), Value: tok.Lexeme}

	case token.KW_TRUE:
		return &ast.BoolLiteral{ExprBase: makeExprBase(tok.Pos), Value: true}

	case token.KW_FALSE:
		return &ast.BoolLiteral{ExprBase: makeExprBase(tok.Pos), Value: false}

	case token.IDENT:
		return &ast.IdentExpr{ExprBase: makeExprBase(tok.Pos), Name: tok.Lexeme}

	case token.BANG, token.MINUS:
		// Prefix: !expr, -expr
		p.next()
		operand := p.parseExpr(bpPrefix)
		if operand == nil {
			return nil
		}
		return &ast.PrefixExpr{
			ExprBase: makeExprBase(tok.Pos),
			Op:       tok.Kind,
			Operand:  operand,
		}

	case token.LPAREN:
		// Grouped expression: ( expr ) — resets to the lowest level
		p.next()
		expr := p.parseExpr(bpNone)
		if expr == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return expr

	case token.KW_IF:
		return p.parseIfExpr()

	case token.KW_FN:
		return p.parseFuncLiteral()

	case token.LBRACKET:
		return p.parseArrayLiteral()

	case token.LBRACE:
		return p.parseHashLiteral()

	default:
		p.errorf("E2002", tok.Pos, "unexpected token '%s' in expression", tok.Kind)
		return nil
	}
}

// led handles infix/postfix (left denotation) parsing. The current
// token is the operator.
func (p *Parser) led(left ast.Expr) ast.Expr {
	tok := p.cur

	switch tok.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.EQ, token.NEQ, token.LT, token.GT:
		// Binary infix operator (left-associative)
		bp := infixBP(tok.Kind)
		p.next()
		right := p.parseExpr(bp)
		if right == nil {
			return nil
		}
		return &ast.InfixExpr{
			ExprBase: makeExprBase(left.GetPos()),
			Op:       tok.Kind,
			Left:     left,
			Right:    right,
		}

	case token.LPAREN:
		// Call expression: callee(args)
		args, ok := p.parseExprList(token.RPAREN)
		if !ok {
			return nil
		}
		return &ast.CallExpr{
			ExprBase: makeExprBase(left.GetPos()),
			Callee:   left,
			Args:     args,
		}

	case token.LBRACKET:
		// Index expression: object[index]
		p.next()
		index := p.parseExpr(bpNone)
		if index == nil {
			return nil
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.IndexExpr{
			ExprBase: makeExprBase(left.GetPos()),
			Object:   left,
			Index:    index,
		}

	default:
		return left
	}
}

// parseIfExpr parses: if ( expr ) block [ else block ]
func (p *Parser) parseIfExpr() ast.Expr {
	expr := &ast.IfExpr{ExprBase: makeExprBase(p.cur.Pos)}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.next()
	expr.Condition = p.parseExpr(bpNone)
	if expr.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlock()

	if p.peek.Kind == token.KW_ELSE {
		p.next()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlock()
	}

	return expr
}

// parseFuncLiteral parses: fn ( params ) block
func (p *Parser) parseFuncLiteral() ast.Expr {
	lit := &ast.FuncLiteral{ExprBase: makeExprBase(p.cur.Pos)}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}
	lit.Params = params

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	lit.Body = p.parseBlock()
	return lit
}

// parseParamList parses: ident, ident, ... ) with '(' current on entry.
func (p *Parser) parseParamList() ([]*ast.IdentExpr, bool) {
	params := []*ast.IdentExpr{}

	if p.peek.Kind == token.RPAREN {
		p.next()
		return params, true
	}

	if !p.expectPeek(token.IDENT) {
		return nil, false
	}
	params = append(params, &ast.IdentExpr{ExprBase: makeExprBase(p.cur.Pos), Name: p.cur.Lexeme})

	for p.peek.Kind == token.COMMA {
		p.next()
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		params = append(params, &ast.IdentExpr{ExprBase: makeExprBase(p.cur.Pos), Name: p.cur.Lexeme})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseArrayLiteral parses: [ expr, expr, ... ]
func (p *Parser) parseArrayLiteral() ast.Expr {
	pos := p.cur.Pos
	elements, ok := p.parseExprList(token.RBRACKET)
	if !ok {
		return nil
	}
	return &ast.ArrayLiteral{ExprBase: makeExprBase(pos), Elements: elements}
}

// parseExprList parses a comma-separated expression list terminated by
// end. The opening delimiter is current on entry; end is current on exit.
func (p *Parser) parseExprList(end token.Kind) ([]ast.Expr, bool) {
	list := []ast.Expr{}

	if p.peek.Kind == end {
		p.next()
		return list, true
	}

	p.next()
	expr := p.parseExpr(bpNone)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peek.Kind == token.COMMA {
		p.next()
		p.next()
		expr := p.parseExpr(bpNone)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

// parseHashLiteral parses: { key : value, ... }
func (p *Parser) parseHashLiteral() ast.Expr {
	lit := &ast.HashLiteral{ExprBase: makeExprBase(p.cur.Pos)}

	for p.peek.Kind != token.RBRACE {
		p.next()
		key := p.parseExpr(bpNone)
		if key == nil {
			return nil
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.next()
		value := p.parseExpr(bpNone)
		if value == nil {
			return nil
		}
		lit.Keys = append(lit.Keys, key)
		lit.Values = append(lit.Values, value)

		if p.peek.Kind != token.RBRACE && !p.expectPeek(token.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}

// ============================================================
// Position helpers
// ============================================================

func makeExprBase(pos span.Position) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Pos: pos}}
}

func makeStmtBase(pos span.Position) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NodeBase{Pos: pos}}
}
