package astprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjc-oai/tiny-interpreter/astprint"
	"github.com/fjc-oai/tiny-interpreter/parser"
	"github.com/fjc-oai/tiny-interpreter/scanner"
)

func TestPrintRendersLispStyle(t *testing.T) {
	tokens, err := scanner.Scan("1 + 2 * 3;")
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, "(+ 1 (* 2 3))", astprint.Print(prog.Nodes[0]))
}

func TestPrintProgramJoinsTopLevelNodes(t *testing.T) {
	tokens, err := scanner.Scan("var a = 1; print a;")
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	out := astprint.PrintProgram(prog)
	assert.Equal(t, "(var a 1)\n(print a)", out)
}

func TestScanThenParseIsDeterministic(t *testing.T) {
	source := "def add(a, b) { return a + b; } print add(1, 2);"

	tokensA, err := scanner.Scan(source)
	require.NoError(t, err)
	progA, err := parser.Parse(tokensA)
	require.NoError(t, err)

	tokensB, err := scanner.Scan(source)
	require.NoError(t, err)
	progB, err := parser.Parse(tokensB)
	require.NoError(t, err)

	assert.Equal(t, astprint.PrintProgram(progA), astprint.PrintProgram(progB))
}
