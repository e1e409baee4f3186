// Package parser builds an internal/ast.Program from a Molang token
// stream via recursive-descent, precedence-climbing expression parsing.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"j5.nz/molang/internal/ast"
	"j5.nz/molang/internal/token"
)

// Error is a parse error carrying the offending token's source position.
type Error struct {
	Message string
	Offset  int
	Line    int
	Col     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d col %d: %s", e.Line, e.Col, e.Message)
}

// Parser consumes a token slice produced by internal/lexer.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New returns a Parser over tokens (which must end with an EOF token).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete program, failing on the first syntax error.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(kind token.Kind) bool { return p.peek().Kind == kind }

func (p *Parser) errorf(format string, args ...interface{}) error {
	tok := p.peek()
	return &Error{Message: fmt.Sprintf(format, args...), Offset: tok.Offset, Line: tok.Line, Col: tok.Col}
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if !p.at(kind) {
		return token.Token{}, p.errorf("expected %s, got %s", kind, p.peek())
	}
	return p.advance(), nil
}

func (p *Parser) skipSemicolons() {
	for p.at(token.SEMICOLON) {
		p.advance()
	}
}

// ParseProgram parses a full program: statements separated by `;`
// (optional trailing), per spec §6.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipSemicolons()
	for !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipSemicolons()
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peek().Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.RETURN:
		p.advance()
		if p.at(token.SEMICOLON) || p.at(token.RBRACE) || p.at(token.EOF) {
			return ast.Return{}, nil
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.Return{Expr: expr}, nil
	case token.LOOP:
		return p.parseLoop()
	case token.FOR_EACH:
		return p.parseForEach()
	default:
		return p.parseExprOrAssignment()
	}
}

func (p *Parser) parseBlock() (ast.Statement, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	p.skipSemicolons()
	for !p.at(token.RBRACE) {
		if p.at(token.EOF) {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipSemicolons()
	}
	p.advance()
	return ast.Block{Statements: stmts}, nil
}

// loop(count, body) and for_each(variable, collection, body) are parsed
// here rather than as ordinary calls since their third argument is a
// statement, not an expression (spec §6).
func (p *Parser) parseLoop() (ast.Statement, error) {
	p.advance() // "loop"
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	count, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	body, err := p.parseBodyStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return ast.Loop{Count: count, Body: body}, nil
}

func (p *Parser) parseForEach() (ast.Statement, error) {
	p.advance() // "for_each"
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	variable, err := p.parsePathSegments()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	collection, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	body, err := p.parseBodyStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return ast.ForEach{Variable: variable, Collection: collection, Body: body}, nil
}

// parseBodyStatement parses a block or a single statement, per spec §6's
// "third argument is a block or a single statement".
func (p *Parser) parseBodyStatement() (ast.Statement, error) {
	if p.at(token.LBRACE) {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseExprOrAssignment() (ast.Statement, error) {
	start := p.pos
	if segs, ok := p.tryParsePathSegments(); ok && p.at(token.ASSIGN) {
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.Assignment{Target: segs, Value: value}, nil
	}
	p.pos = start
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) parsePathSegments() ([]string, error) {
	segs, ok := p.tryParsePathSegments()
	if !ok {
		return nil, p.errorf("expected a path, got %s", p.peek())
	}
	return segs, nil
}

// tryParsePathSegments speculatively parses `ident(.ident)*` without
// consuming input on failure, used to distinguish assignment targets from
// arbitrary expressions at statement start.
func (p *Parser) tryParsePathSegments() ([]string, bool) {
	if !p.at(token.IDENT) {
		return nil, false
	}
	start := p.pos
	segs := []string{p.advance().Text}
	for p.at(token.DOT) {
		save := p.pos
		p.advance()
		if !p.at(token.IDENT) {
			p.pos = save
			break
		}
		segs = append(segs, p.advance().Text)
	}
	_ = start
	return segs, true
}

// Expression parsing: precedence-climbing over the table in spec §6
// (lowest to highest): ??, ?:, ||, &&, ==/!=, </<=/>/>=, +/-, */÷,
// unary +/-/!, call/index/member.

func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseCoalesce() }

func (p *Parser) parseCoalesce() (ast.Expr, error) {
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	for p.at(token.COALESCE) {
		p.advance()
		right, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: ast.NullCoalesce, Left: left, Right: right}
	}
	return left, nil
}

// parseConditional handles `cond ? then : else`, right-associative with
// an optional else, and also plain `cond ? then` used as `break`/`continue`
// guards in the end-to-end scenarios.
func (p *Parser) parseConditional() (ast.Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.QUESTION) {
		return cond, nil
	}
	p.advance()
	then, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	var elseExpr ast.Expr
	if p.at(token.COLON) {
		p.advance()
		elseExpr, err = p.parseConditional()
		if err != nil {
			return nil, err
		}
	}
	return ast.Conditional{Condition: cond, Then: then, Else: elseExpr}, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: ast.Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: ast.And, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.at(token.EQ) || p.at(token.NEQ) {
		op := ast.Equal
		if p.at(token.NEQ) {
			op = ast.NotEqual
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.LT:
			op = ast.Less
		case token.LE:
			op = ast.LessEqual
		case token.GT:
			op = ast.Greater
		case token.GE:
			op = ast.GreaterEqual
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := ast.Add
		if p.at(token.MINUS) {
			op = ast.Sub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := ast.Mul
		if p.at(token.SLASH) {
			op = ast.Div
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.peek().Kind {
	case token.PLUS:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: ast.UnaryPlus, Expr: e}, nil
	case token.MINUS:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: ast.UnaryMinus, Expr: e}, nil
	case token.BANG:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: ast.UnaryNot, Expr: e}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case token.LPAREN:
			p.advance()
			args, err := p.parseArgList(token.RPAREN)
			if err != nil {
				return nil, err
			}
			expr = ast.Call{Target: expr, Args: args}
		case token.LBRACK:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACK); err != nil {
				return nil, err
			}
			expr = ast.Index{Target: expr, Index: idx}
		case token.DOT:
			path, ok := expr.(ast.Path)
			if !ok {
				return expr, nil
			}
			save := p.pos
			p.advance()
			if !p.at(token.IDENT) {
				p.pos = save
				return expr, nil
			}
			expr = ast.Path{Segments: append(append([]string{}, path.Segments...), p.advance().Text)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList(end token.Kind) ([]ast.Expr, error) {
	var args []ast.Expr
	if p.at(end) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		if _, err := p.expect(end); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("malformed number %q", tok.Text), Offset: tok.Offset, Line: tok.Line, Col: tok.Col}
		}
		return ast.Number{Value: v}, nil
	case token.STRING:
		p.advance()
		return ast.String{Value: tok.Text}, nil
	case token.BREAK:
		p.advance()
		return ast.Flow{Kind: ast.FlowBreak}, nil
	case token.CONTINUE:
		p.advance()
		return ast.Flow{Kind: ast.FlowContinue}, nil
	case token.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case token.LBRACK:
		p.advance()
		elems, err := p.parseArgList(token.RBRACK)
		if err != nil {
			return nil, err
		}
		return ast.Array{Elements: elems}, nil
	case token.LBRACE:
		return p.parseStructLiteral()
	case token.IDENT:
		segs, _ := p.tryParsePathSegments()
		return ast.Path{Segments: segs}, nil
	default:
		return nil, p.errorf("unexpected token %s", tok)
	}
}

func (p *Parser) parseStructLiteral() (ast.Expr, error) {
	p.advance() // {
	var fields []ast.StructField
	seen := make(map[string]bool)
	if p.at(token.RBRACE) {
		p.advance()
		return ast.Struct{Fields: fields}, nil
	}
	for {
		key, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		name := strings.ToLower(key.Text)
		if seen[name] {
			return nil, &Error{Message: fmt.Sprintf("duplicate struct field %q", name), Offset: key.Offset, Line: key.Line, Col: key.Col}
		}
		seen[name] = true
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructField{Name: name, Value: value})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		if _, err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
		return ast.Struct{Fields: fields}, nil
	}
}
