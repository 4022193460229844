package interp

import "github.com/fjc-oai/tiny-interpreter/ast"

// Function is the runtime representation of a callable. A Function is
// either user-defined (Body set, from a FuncDecl) or native (Native
// set, for built-ins like time and sleep); never both.
type Function struct {
	Name   string
	Params []string
	Body   *ast.Block
	Native func(args []Value) (Value, error)
}

func (f *Function) String() string {
	return "<fn " + f.Name + ">"
}

func (f *Function) arity() int {
	return len(f.Params)
}
