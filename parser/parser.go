// Package parser implements a recursive-descent parser over a token
// stream, producing an *ast.Program. There is no error recovery: the
// first mismatched token is a fatal parse error.
package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fjc-oai/tiny-interpreter/ast"
	"github.com/fjc-oai/tiny-interpreter/token"
)

// SyntaxError is a fatal parse error naming the offending token.
type SyntaxError struct {
	Token   token.Token
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s (got %s %q)", e.Token.Line, e.Message, e.Token.Kind, e.Token.Lexeme)
}

// Parser holds the state during parsing.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over tokens, which must end with a single EOF
// token (as produced by scanner.Scan).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens into an *ast.Program.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).Parse()
}

func (p *Parser) Parse() (prog *ast.Program, err error) {
	prog = &ast.Program{}
	for !p.check(token.EOF) {
		node, perr := p.statement()
		if perr != nil {
			return nil, perr
		}
		prog.Nodes = append(prog.Nodes, node)
	}
	logrus.Debugf("parser: parsed %d top-level nodes", len(prog.Nodes))
	return prog, nil
}

// --- token stream helpers ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.check(token.EOF) {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, &SyntaxError{Token: p.peek(), Message: message}
}

// --- statements ---

func (p *Parser) statement() (ast.Node, error) {
	switch {
	case p.check(token.PRINT):
		return p.printStmt()
	case p.check(token.VAR):
		return p.declStmt()
	case p.check(token.FUNC):
		return p.funcDecl()
	case p.check(token.LEFT_BRACE):
		return p.block()
	case p.check(token.IF):
		return p.ifStmt()
	case p.check(token.WHILE):
		return p.whileStmt()
	case p.check(token.FOR):
		return p.forStmt()
	case p.check(token.RETURN):
		return p.returnStmt()
	case p.check(token.IDENTIFIER) && p.peekAt(1).Kind == token.EQUAL:
		return p.assignStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (ast.Node, error) {
	kw := p.advance()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after print statement"); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Keyword: kw, Expr: expr}, nil
}

func (p *Parser) declStmt() (*ast.DeclStmt, error) {
	p.advance() // 'var'
	name, err := p.expect(token.IDENTIFIER, "expected variable name")
	if err != nil {
		return nil, err
	}
	var init ast.Node
	if p.match(token.EQUAL) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.DeclStmt{Name: name, Initializer: init}, nil
}

func (p *Parser) assignStmt() (*ast.AssignStmt, error) {
	name := p.advance()
	if _, err := p.expect(token.EQUAL, "expected '=' in assignment"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after assignment"); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Name: name, Expr: expr}, nil
}

func (p *Parser) exprStmt() (ast.Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) block() (*ast.Block, error) {
	lbrace := p.advance() // '{'
	var nodes []ast.Node
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		node, err := p.statement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if _, err := p.expect(token.RIGHT_BRACE, "expected '}' to close block"); err != nil {
		return nil, err
	}
	return &ast.Block{LBrace: lbrace, Nodes: nodes}, nil
}

func (p *Parser) ifStmt() (*ast.IfStmt, error) {
	kw := p.advance() // 'if'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Node
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Keyword: kw, Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) whileStmt() (*ast.WhileStmt, error) {
	kw := p.advance() // 'while'
	if _, err := p.expect(token.LEFT_PAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RIGHT_PAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Keyword: kw, Cond: cond, Body: body}, nil
}

func (p *Parser) forStmt() (*ast.ForStmt, error) {
	kw := p.advance() // 'for'
	if _, err := p.expect(token.LEFT_PAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init ast.Node
	var err error
	if p.check(token.VAR) {
		init, err = p.declStmt()
	} else {
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after for condition"); err != nil {
		return nil, err
	}

	update, err := p.assignStmt()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RIGHT_PAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{Keyword: kw, Init: init, Cond: cond, Update: update, Body: body}, nil
}

func (p *Parser) funcDecl() (*ast.FuncDecl, error) {
	p.advance() // 'def'
	name, err := p.expect(token.IDENTIFIER, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LEFT_PAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			param, err := p.expect(token.IDENTIFIER, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RIGHT_PAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if !p.check(token.LEFT_BRACE) {
		return nil, &SyntaxError{Token: p.peek(), Message: "expected '{' to begin function body"}
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) returnStmt() (*ast.ReturnStmt, error) {
	kw := p.advance() // 'return'
	var expr ast.Node
	var err error
	if !p.check(token.SEMICOLON) {
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after return"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: kw, Expr: expr}, nil
}

// --- expressions, ascending precedence ---

func (p *Parser) expression() (ast.Node, error) {
	return p.or()
}

func (p *Parser) or() (ast.Node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		op := p.advance()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) and() (ast.Node, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		op := p.advance()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) equality() (ast.Node, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.BANG_EQUAL) || p.check(token.EQUAL_EQUAL) {
		op := p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) comparison() (ast.Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.check(token.GREATER) || p.check(token.GREATER_EQUAL) || p.check(token.LESS) || p.check(token.LESS_EQUAL) {
		op := p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) term() (ast.Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) factor() (ast.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Node, error) {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Right: right}, nil
	}
	return p.funcCall()
}

func (p *Parser) funcCall() (ast.Node, error) {
	if p.check(token.IDENTIFIER) && p.peekAt(1).Kind == token.LEFT_PAREN {
		name := p.advance()
		p.advance() // '('
		var args []ast.Node
		if !p.check(token.RIGHT_PAREN) {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.expect(token.RIGHT_PAREN, "expected ')' after arguments"); err != nil {
			return nil, err
		}
		return &ast.FuncCall{Name: name, Args: args}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Node, error) {
	switch {
	case p.check(token.NUMBER), p.check(token.STRING), p.check(token.TRUE),
		p.check(token.FALSE), p.check(token.NIL), p.check(token.IDENTIFIER):
		return &ast.Literal{Token: p.advance()}, nil
	case p.check(token.LEFT_PAREN):
		lparen := p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RIGHT_PAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{LParen: lparen, Inner: inner}, nil
	default:
		return nil, &SyntaxError{Token: p.peek(), Message: "unexpected token"}
	}
}
