package interp

import "fmt"

// RuntimeError is raised for a dynamic-type or name failure discovered
// during evaluation: an operator applied to operands of the wrong kind,
// a reference to an undefined variable, or a call with the wrong number
// of arguments. It is always fatal — execution does not resume.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func newRuntimeError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}
