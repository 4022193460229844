// Package astprint renders a parsed program as a Lisp-like expression
// tree, for the `--print-ast` debug flag and for tests that assert on
// parser output shape.
package astprint

import (
	"strings"

	"github.com/fjc-oai/tiny-interpreter/ast"
)

// Print renders node as a parenthesized expression, e.g. `(+ 1 (* 2 3))`
// for `1 + 2 * 3`. Every ast.Node already implements String() in this
// same style; Print exists as the stable, named entry point external
// callers (the CLI, tests) depend on instead of reaching into ast
// directly.
func Print(node ast.Node) string {
	return node.String()
}

// PrintProgram renders every top-level node of prog, one per line.
func PrintProgram(prog *ast.Program) string {
	lines := make([]string, len(prog.Nodes))
	for i, n := range prog.Nodes {
		lines[i] = Print(n)
	}
	return strings.Join(lines, "\n")
}
