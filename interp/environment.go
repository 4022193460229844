package interp

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Value is the dynamically-typed runtime value domain:
// float64 | string | bool | nil | *Function.
type Value = any

type table map[string]Value

// frame is a per-call stack of lookup tables. Frame 0 (the call-root
// frame) is where top-level declarations and global functions live.
type frame struct {
	tables []table
}

// Environment is the interpreter's scope stack: a stack of frames, each
// itself a stack of lookup tables. See spec §3/§4.4.
type Environment struct {
	frames []*frame
}

// NewEnvironment creates an Environment with a single call-root frame
// containing a single empty table.
func NewEnvironment() *Environment {
	return &Environment{frames: []*frame{{tables: []table{{}}}}}
}

func (e *Environment) top() *frame {
	return e.frames[len(e.frames)-1]
}

// PushBlock introduces a new lexical block scope in the current frame.
func (e *Environment) PushBlock() {
	f := e.top()
	f.tables = append(f.tables, table{})
}

// PopBlock closes the innermost lexical block scope in the current frame.
func (e *Environment) PopBlock() {
	f := e.top()
	f.tables = f.tables[:len(f.tables)-1]
}

// PushCall pushes a new call frame whose bottom table is a copy of the
// current frame's bottom table (a snapshot of globals as they stood at
// call time), followed by a fresh empty table for parameter bindings.
// Mutations to globals made inside the call are therefore not visible
// to the caller once the call returns — a deliberate isolating
// semantics, not a bug (spec §4.4, §9).
func (e *Environment) PushCall() {
	cur := e.top()
	snapshot := make(table, len(cur.tables[0]))
	for k, v := range cur.tables[0] {
		snapshot[k] = v
	}
	e.frames = append(e.frames, &frame{tables: []table{snapshot, {}}})
	logrus.Tracef("env: pushed call frame, depth now %d", len(e.frames))
}

// PopCall pops the current call frame.
func (e *Environment) PopCall() {
	e.frames = e.frames[:len(e.frames)-1]
	logrus.Tracef("env: popped call frame, depth now %d", len(e.frames))
}

// Depth reports (frame count, table count in the current frame), used
// by tests to assert the balanced-scope invariant.
func (e *Environment) Depth() (frames int, tables int) {
	return len(e.frames), len(e.top().tables)
}

// Define binds name in the innermost table of the current frame. It is
// an error to redefine a name already present in that exact table.
func (e *Environment) Define(name string, value Value) error {
	f := e.top()
	innermost := f.tables[len(f.tables)-1]
	if _, exists := innermost[name]; exists {
		return fmt.Errorf("variable already defined in this scope: %s", name)
	}
	innermost[name] = value
	return nil
}

// Assign walks the current frame's tables from innermost to outermost,
// updating the first one that already binds name. It never crosses a
// frame boundary.
func (e *Environment) Assign(name string, value Value) error {
	f := e.top()
	for i := len(f.tables) - 1; i >= 0; i-- {
		if _, ok := f.tables[i][name]; ok {
			f.tables[i][name] = value
			return nil
		}
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Get walks the current frame's tables from innermost to outermost. It
// never crosses a frame boundary.
func (e *Environment) Get(name string) (Value, bool) {
	f := e.top()
	for i := len(f.tables) - 1; i >= 0; i-- {
		if v, ok := f.tables[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}
