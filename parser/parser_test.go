package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjc-oai/tiny-interpreter/ast"
	"github.com/fjc-oai/tiny-interpreter/parser"
	"github.com/fjc-oai/tiny-interpreter/scanner"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := scanner.Scan(source)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	return prog
}

func TestPrecedence(t *testing.T) {
	prog := parseSource(t, "1 + 2 * 3;")
	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, "(+ 1 (* 2 3))", prog.Nodes[0].String())
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	prog := parseSource(t, "(1 + 2) * 3;")
	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, "(* (group (+ 1 2)) 3)", prog.Nodes[0].String())
}

func TestLeftAssociativity(t *testing.T) {
	prog := parseSource(t, "1 - 2 - 3;")
	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, "(- (- 1 2) 3)", prog.Nodes[0].String())
}

func TestUnaryIsRightAssociative(t *testing.T) {
	prog := parseSource(t, "- - -1;")
	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, "(- (- (- 1)))", prog.Nodes[0].String())
}

func TestVarDeclAndAssign(t *testing.T) {
	prog := parseSource(t, "var a = 1; a = 2;")
	require.Len(t, prog.Nodes, 2)
	decl, ok := prog.Nodes[0].(*ast.DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "a", decl.Name.Lexeme)
	assign, ok := prog.Nodes[1].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name.Lexeme)
}

func TestBlockShadowing(t *testing.T) {
	prog := parseSource(t, "var a=1; { var a=4; print a; } print a;")
	require.Len(t, prog.Nodes, 3)
	_, ok := prog.Nodes[1].(*ast.Block)
	require.True(t, ok)
}

func TestIfElse(t *testing.T) {
	prog := parseSource(t, "if (true) { print 1; } else { print 2; }")
	require.Len(t, prog.Nodes, 1)
	ifStmt, ok := prog.Nodes[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestWhile(t *testing.T) {
	prog := parseSource(t, "while (i < 3) { print i; }")
	_, ok := prog.Nodes[0].(*ast.WhileStmt)
	require.True(t, ok)
}

func TestForRequiresTrailingSemicolonOnUpdate(t *testing.T) {
	prog := parseSource(t, "for (var i=0; i<3; i = i+1;) { print i; }")
	forStmt, ok := prog.Nodes[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Update.Name.Lexeme)

	tokens, err := scanner.Scan("for (var i=0; i<3; i = i+1) { print i; }")
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
}

func TestFuncDeclAndCall(t *testing.T) {
	prog := parseSource(t, "def add(a, b) { return a + b; } print add(1, 2);")
	require.Len(t, prog.Nodes, 2)
	decl, ok := prog.Nodes[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, []string{decl.Params[0].Lexeme, decl.Params[1].Lexeme})
}

func TestMissingClosingParenIsFatal(t *testing.T) {
	tokens, err := scanner.Scan("print (1 + 2;")
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
	var syn *parser.SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestEOFConsumedExactlyOnce(t *testing.T) {
	tokens, err := scanner.Scan("print 1;")
	require.NoError(t, err)
	p := parser.New(tokens)
	_, err = p.Parse()
	require.NoError(t, err)
}
