// Package parser builds a ParaCL internal/ast tree from a token stream.
// It is out of spec.md's core scope (§1 "Lexing and parsing... the spec
// fixes the tree's shape, not the grammar") but is required for an
// end-to-end CLI. Grounded on internal/parser/parser.go's Pratt
// (precedence-climbing) design: prefix/infix parse-function tables keyed
// by token type, and a precedence ladder — scaled down from DWScript's
// many operators to ParaCL's handful.
package parser

import (
	"fmt"

	"github.com/paracl-go/paracl/internal/arena"
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/diag"
	"github.com/paracl-go/paracl/internal/lexer"
)

// Precedence levels, lowest to highest binding.
const (
	LOWEST int = iota
	OR
	AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.OR_OR:    OR,
	lexer.AND_AND:  AND,
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.LE:       LESSGREATER,
	lexer.GE:       LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.LPAREN:   CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(left ast.Expression) ast.Expression
)

// Parser turns a token stream into an *ast.Program. It owns the arena
// that every node of this one compilation is allocated from (spec §3
// "one arena per compilation").
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	errors []*diag.CompilerError
	source string
	file   string

	arena       *arena.Arena
	anonCounter int

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading from l. source and file are used only to
// frame diagnostics.
func New(l *lexer.Lexer, source, file string) *Parser {
	p := &Parser{l: l, source: source, file: file, arena: arena.New()}

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.INT:      p.parseIntLiteral,
		lexer.UNDEF:    p.parseUndefLiteral,
		lexer.QUESTION: p.parseInputExpr,
		lexer.IDENT:    p.parseLvalue,
		lexer.LPAREN:   p.parseGroupedOrBlockExpr,
		lexer.MINUS:    p.parseUnaryExpr,
		lexer.PLUS:     p.parseUnaryExpr,
		lexer.BANG:     p.parseUnaryExpr,
		lexer.LBRACK:   p.parseArrayLiteral,
		lexer.REPEAT:   p.parseRepeatExpr,
		lexer.FUNC:     p.parseFuncLiteral,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseBinaryExpr,
		lexer.MINUS:    p.parseBinaryExpr,
		lexer.ASTERISK: p.parseBinaryExpr,
		lexer.SLASH:    p.parseBinaryExpr,
		lexer.PERCENT:  p.parseBinaryExpr,
		lexer.EQ:       p.parseBinaryExpr,
		lexer.NOT_EQ:   p.parseBinaryExpr,
		lexer.LT:       p.parseBinaryExpr,
		lexer.GT:       p.parseBinaryExpr,
		lexer.LE:       p.parseBinaryExpr,
		lexer.GE:       p.parseBinaryExpr,
		lexer.OR_OR:    p.parseBinaryExpr,
		lexer.AND_AND:  p.parseBinaryExpr,
		lexer.LPAREN:   p.parseCallExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Arena returns the parser's compilation arena, so callers can Release
// it once they no longer need the tree (e.g. after execution completes).
func (p *Parser) Arena() *arena.Arena { return p.arena }

// Errors returns every syntax error collected so far.
func (p *Parser) Errors() []*diag.CompilerError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) addError(pos lexer.Position, length int, format string, args ...any) {
	p.errors = append(p.errors, diag.New(diag.Syntax, pos, length, fmt.Sprintf(format, args...), p.source, p.file))
}

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.addError(p.peekToken.Pos, len(p.peekToken.Literal), "expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func add[T any](p *Parser, v T) *T { return arena.Add(p.arena, v) }

// ParseProgram parses the whole input as a top-level statement block.
func (p *Parser) ParseProgram() *ast.Program {
	body := p.parseStatementsUntil(lexer.EOF)
	block := add(p, ast.Block{Statements: body, IsExpr: false})
	return &ast.Program{Body: block}
}

func (p *Parser) parseStatementsUntil(end lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for p.curToken.Type != end && p.curToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
	return stmts
}

// parseBlock parses a `{ … }` sequence. If isExpr is true, a trailing
// explicit return or implicit last expression-statement is promoted into
// the Block's ReturnExpr (spec §6 "return (implicit last expression or
// explicit)").
func (p *Parser) parseBlock(isExpr bool) *ast.Block {
	pos := p.curToken.Pos
	if !p.expectPeek(lexer.LBRACE) {
		return add(p, ast.Block{IsExpr: isExpr, P: pos})
	}
	p.nextToken()

	stmts := p.parseStatementsUntil(lexer.RBRACE)
	// curToken is RBRACE here (or EOF on malformed input)
	if p.curToken.Type != lexer.RBRACE {
		p.addError(p.curToken.Pos, 1, "expected '}', got %s instead", p.curToken.Type)
	}

	block := &ast.Block{Statements: stmts, IsExpr: isExpr, P: pos}
	if isExpr && len(stmts) > 0 {
		last := stmts[len(stmts)-1]
		switch s := last.(type) {
		case *ast.ReturnStmt:
			block.ReturnExpr = s.Value
			block.Statements = stmts[:len(stmts)-1]
		case *ast.ExprStmt:
			block.ReturnExpr = s.X
			block.Statements = stmts[:len(stmts)-1]
		}
	}
	return add(p, *block)
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.LBRACE:
		body := p.parseBlock(false)
		return add(p, ast.BlockStmt{Body: body, P: body.P})
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parsePrintStmt() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	x := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMICOLON) {
		return add(p, ast.PrintStmt{X: x, P: pos})
	}
	return add(p, ast.PrintStmt{X: x, P: pos})
}

func (p *Parser) parseWhileStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	body := p.parseBlock(false)
	return add(p, ast.WhileStmt{Cond: cond, Body: body, P: pos})
}

func (p *Parser) parseIfStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	then := p.parseBlock(false)

	var elseBlock *ast.Block
	if p.peekToken.Type == lexer.ELSE {
		p.nextToken()
		elseBlock = p.parseBlock(false)
	}
	return add(p, ast.IfStmt{Cond: cond, Then: then, Else: elseBlock, P: pos})
}

func (p *Parser) parseReturnStmt() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMICOLON) {
		return add(p, ast.ReturnStmt{Value: value, P: pos})
	}
	return add(p, ast.ReturnStmt{Value: value, P: pos})
}

// parseSimpleStatement parses an assignment or an expression statement,
// distinguishing the two only after fully parsing the leading
// expression, so `a[0] = 7;` and `f(1, 2);` both flow through the same
// Pratt parser.
func (p *Parser) parseSimpleStatement() ast.Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression(LOWEST)

	if lv, ok := expr.(*ast.Lvalue); ok && p.peekToken.Type == lexer.ASSIGN {
		p.nextToken() // consume '='
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.SEMICOLON) {
			return add(p, ast.AssignStmt{Target: lv, Value: value, P: pos})
		}
		return add(p, ast.AssignStmt{Target: lv, Value: value, P: pos})
	}

	// A block's trailing expression may omit its ';' (`{ x + 1 }`);
	// parseBlock then promotes it into the block's ReturnExpr.
	if p.peekToken.Type == lexer.RBRACE {
		return add(p, ast.ExprStmt{X: expr, P: pos})
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return add(p, ast.ExprStmt{X: expr, P: pos})
	}
	return add(p, ast.ExprStmt{X: expr, P: pos})
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.addError(p.curToken.Pos, len(p.curToken.Literal), "no prefix parse function for %s found", p.curToken.Type)
		return add(p, ast.UndefLiteral{P: p.curToken.Pos})
	}
	left := prefix()

	for p.peekToken.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.curToken
	var v int64
	for _, ch := range tok.Literal {
		v = v*10 + int64(ch-'0')
	}
	return add(p, ast.IntLiteral{Value: v, P: tok.Pos})
}

func (p *Parser) parseUndefLiteral() ast.Expression {
	return add(p, ast.UndefLiteral{P: p.curToken.Pos})
}

func (p *Parser) parseInputExpr() ast.Expression {
	return add(p, ast.InputExpr{P: p.curToken.Pos})
}

func (p *Parser) parseLvalue() ast.Expression {
	tok := p.curToken
	var indexes []ast.Expression
	for p.peekToken.Type == lexer.LBRACK {
		p.nextToken() // consume '['
		p.nextToken()
		idx := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RBRACK) {
			break
		}
		indexes = append(indexes, idx)
	}
	reverse(indexes)
	return add(p, ast.Lvalue{Name: tok.Literal, Indexes: indexes, P: tok.Pos})
}

func (p *Parser) parseGroupedOrBlockExpr() ast.Expression {
	pos := p.curToken.Pos
	if p.peekToken.Type == lexer.LBRACE {
		p.nextToken()
		body := p.parseBlock(true)
		if !p.expectPeek(lexer.RPAREN) {
			return add(p, ast.BlockExpr{Body: body, P: pos})
		}
		return add(p, ast.BlockExpr{Body: body, P: pos})
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return add(p, ast.UnaryExpr{Op: tok.Type, Operand: operand, P: tok.Pos})
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return add(p, ast.BinaryExpr{Op: tok.Type, Left: left, Right: right, P: tok.Pos})
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.curToken.Pos
	var items []ast.Expression
	if p.peekToken.Type != lexer.RBRACK {
		p.nextToken()
		items = append(items, p.parseExpression(LOWEST))
		for p.peekToken.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			items = append(items, p.parseExpression(LOWEST))
		}
	}
	if !p.expectPeek(lexer.RBRACK) {
		return add(p, ast.ArrayLiteral{Items: items, P: pos})
	}

	var lit ast.Expression = add(p, ast.ArrayLiteral{Items: items, P: pos})

	var indexes []ast.Expression
	for p.peekToken.Type == lexer.LBRACK {
		p.nextToken()
		p.nextToken()
		idx := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RBRACK) {
			break
		}
		indexes = append(indexes, idx)
	}
	if len(indexes) > 0 {
		reverse(indexes)
		lit = add(p, ast.IndexExpr{Target: lit, Indexes: indexes, P: pos})
	}
	return lit
}

func (p *Parser) parseRepeatExpr() ast.Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(lexer.LPAREN) {
		return add(p, ast.UndefLiteral{P: pos})
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.COMMA) {
		return add(p, ast.UndefLiteral{P: pos})
	}
	p.nextToken()
	count := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return add(p, ast.UndefLiteral{P: pos})
	}
	return add(p, ast.RepeatExpr{Value: value, Count: count, P: pos})
}

func (p *Parser) nextAnonName() string {
	p.anonCounter++
	return fmt.Sprintf("#default_function_name_%d_#", p.anonCounter)
}

func (p *Parser) parseFuncLiteral() ast.Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(lexer.LPAREN) {
		return add(p, ast.UndefLiteral{P: pos})
	}

	var params []string
	if p.peekToken.Type != lexer.RPAREN {
		p.nextToken()
		params = append(params, p.curToken.Literal)
		for p.peekToken.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			params = append(params, p.curToken.Literal)
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return add(p, ast.UndefLiteral{P: pos})
	}

	body := p.parseBlock(true)
	return add(p, ast.FuncLiteral{Name: p.nextAnonName(), Params: params, Body: body, P: pos})
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	var args []ast.Expression
	if p.peekToken.Type != lexer.RPAREN {
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
		for p.peekToken.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return add(p, ast.CallExpr{Callee: callee, Args: args, P: pos})
	}
	return add(p, ast.CallExpr{Callee: callee, Args: args, P: pos})
}

func reverse(xs []ast.Expression) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
