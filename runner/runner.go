// Package runner wires the scanner, parser, and interpreter into a
// single call, the way a small scripting language's top-level driver
// usually does.
package runner

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fjc-oai/tiny-interpreter/astprint"
	"github.com/fjc-oai/tiny-interpreter/interp"
	"github.com/fjc-oai/tiny-interpreter/parser"
	"github.com/fjc-oai/tiny-interpreter/scanner"
)

// Options controls optional diagnostics around a run; it never changes
// program semantics.
type Options struct {
	// PrintAST writes the parsed program's Lisp-style form to output
	// before evaluating it.
	PrintAST bool
	// Trace enables logrus.Debug-level tracing of scan/parse/eval. The
	// process-wide level is still set by loggingcfg; this only decides
	// whether runner itself emits a trace line per stage.
	Trace bool
}

// Run scans, parses, and evaluates source against a freshly constructed
// interpreter, writing `print` output to output. It returns the first
// fatal error encountered; none of scanner/parser/interp errors are
// recovered from internally.
func Run(source string, output io.Writer, opts Options) error {
	if opts.Trace {
		logrus.Debug("runner: scanning")
	}
	tokens, err := scanner.Scan(source)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if opts.Trace {
		logrus.Debug("runner: parsing")
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if opts.PrintAST {
		fmt.Fprintln(output, astprint.PrintProgram(prog))
	}

	if opts.Trace {
		logrus.Debug("runner: evaluating")
	}
	in := interp.New(output)
	if err := in.Run(prog); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

// REPL wraps a single persistent interpreter so that declarations made
// on one line remain visible to the next — source arriving incrementally
// rather than as one string, for the interactive session.
type REPL struct {
	in     *interp.Interpreter
	Output io.Writer
	opts   Options
}

// NewREPL constructs a REPL with its own long-lived interpreter.
func NewREPL(output io.Writer, opts Options) *REPL {
	return &REPL{in: interp.New(output), Output: output, opts: opts}
}

// Eval scans, parses, and evaluates one line (or balanced block) of
// source against the REPL's persistent interpreter.
func (r *REPL) Eval(source string) error {
	if r.opts.Trace {
		logrus.Debug("repl: scanning")
	}
	tokens, err := scanner.Scan(source)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if r.opts.Trace {
		logrus.Debug("repl: parsing")
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if r.opts.PrintAST {
		fmt.Fprintln(r.Output, astprint.PrintProgram(prog))
	}

	if r.opts.Trace {
		logrus.Debug("repl: evaluating")
	}
	if err := r.in.Run(prog); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
