// Package ast defines the abstract syntax tree produced by the parser.
//
// Every node is immutable once constructed and is owned by exactly one
// parent; no node is shared between two parents. The sum type is closed:
// the interpreter's dispatch switches exhaustively over these variants.
package ast

import (
	"fmt"
	"strings"

	"github.com/fjc-oai/tiny-interpreter/token"
)

// Node is implemented by every AST node, statement or expression alike.
// Block and Program hold ordered sequences of Node rather than a
// separate statement type, since a bare expression ("fib(5);") is a
// valid top-level statement in its own right.
type Node interface {
	// Line returns the source line of the node's leading token.
	Line() int
	String() string
}

// Literal reads a number/string/bool/nil constant, or an identifier.
type Literal struct {
	Token token.Token
}

func (l *Literal) Line() int { return l.Token.Line }
func (l *Literal) String() string {
	if l.Token.Kind == token.STRING {
		return fmt.Sprintf("%q", l.Token.Literal)
	}
	return l.Token.Lexeme
}

// Unary is a prefix `-` or `!` expression.
type Unary struct {
	Op    token.Token
	Right Node
}

func (u *Unary) Line() int { return u.Op.Line }
func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right)
}

// Binary covers arithmetic, comparison, and short-circuit and/or.
type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (b *Binary) Line() int { return b.Op.Line }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right)
}

// Grouping is a parenthesised expression.
type Grouping struct {
	LParen token.Token
	Inner  Node
}

func (g *Grouping) Line() int { return g.LParen.Line }
func (g *Grouping) String() string {
	return fmt.Sprintf("(group %s)", g.Inner)
}

// FuncCall is a direct, name-based call: `IDENT(args)`.
type FuncCall struct {
	Name token.Token
	Args []Node
}

func (c *FuncCall) Line() int { return c.Name.Line }
func (c *FuncCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", c.Name.Lexeme, strings.Join(parts, " "))
}

// PrintStmt evaluates Expr and writes its stringification to stdout.
type PrintStmt struct {
	Keyword token.Token
	Expr    Node
}

func (p *PrintStmt) Line() int { return p.Keyword.Line }
func (p *PrintStmt) String() string {
	return fmt.Sprintf("(print %s)", p.Expr)
}

// DeclStmt is `var x [= expr];`.
type DeclStmt struct {
	Name        token.Token
	Initializer Node // nil if absent
}

func (d *DeclStmt) Line() int { return d.Name.Line }
func (d *DeclStmt) String() string {
	if d.Initializer == nil {
		return fmt.Sprintf("(var %s)", d.Name.Lexeme)
	}
	return fmt.Sprintf("(var %s %s)", d.Name.Lexeme, d.Initializer)
}

// AssignStmt is `x = expr;`.
type AssignStmt struct {
	Name token.Token
	Expr Node
}

func (a *AssignStmt) Line() int { return a.Name.Line }
func (a *AssignStmt) String() string {
	return fmt.Sprintf("(set %s %s)", a.Name.Lexeme, a.Expr)
}

// Block is `{ ... }`: an ordered sequence of nodes with its own lexical
// scope.
type Block struct {
	LBrace token.Token
	Nodes  []Node
}

func (b *Block) Line() int { return b.LBrace.Line }
func (b *Block) String() string {
	parts := make([]string, len(b.Nodes))
	for i, n := range b.Nodes {
		parts[i] = n.String()
	}
	return fmt.Sprintf("(block %s)", strings.Join(parts, " "))
}

// Program is the root node: an ordered sequence of top-level nodes.
type Program struct {
	Nodes []Node
}

func (p *Program) Line() int {
	if len(p.Nodes) > 0 {
		return p.Nodes[0].Line()
	}
	return 0
}
func (p *Program) String() string {
	parts := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, "\n")
}

// IfStmt is `if cond thenNode (else elseNode)?`.
type IfStmt struct {
	Keyword token.Token
	Cond    Node
	Then    Node
	Else    Node // nil if absent
}

func (i *IfStmt) Line() int { return i.Keyword.Line }
func (i *IfStmt) String() string {
	if i.Else == nil {
		return fmt.Sprintf("(if %s %s)", i.Cond, i.Then)
	}
	return fmt.Sprintf("(if %s %s %s)", i.Cond, i.Then, i.Else)
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Keyword token.Token
	Cond    Node
	Body    Node
}

func (w *WhileStmt) Line() int { return w.Keyword.Line }
func (w *WhileStmt) String() string {
	return fmt.Sprintf("(while %s %s)", w.Cond, w.Body)
}

// ForStmt is the C-style `for (init; cond; update) body`.
type ForStmt struct {
	Keyword token.Token
	Init    Node // DeclStmt or a bare expression, never nil
	Cond    Node
	Update  *AssignStmt
	Body    Node
}

func (f *ForStmt) Line() int { return f.Keyword.Line }
func (f *ForStmt) String() string {
	return fmt.Sprintf("(for %s %s %s %s)", f.Init, f.Cond, f.Update, f.Body)
}

// FuncDecl is `def name(params) { body }`.
type FuncDecl struct {
	Name   token.Token
	Params []token.Token
	Body   *Block
}

func (fd *FuncDecl) Line() int { return fd.Name.Line }
func (fd *FuncDecl) String() string {
	names := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		names[i] = p.Lexeme
	}
	return fmt.Sprintf("(def %s (%s) %s)", fd.Name.Lexeme, strings.Join(names, " "), fd.Body)
}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	Keyword token.Token
	Expr    Node // nil if absent
}

func (r *ReturnStmt) Line() int { return r.Keyword.Line }
func (r *ReturnStmt) String() string {
	if r.Expr == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", r.Expr)
}
