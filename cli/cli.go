// Package cli is the command-line adapter: argument parsing, a one-shot
// file runner, and an interactive REPL, all delegating to runner for
// the actual scan/parse/eval pipeline.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/chzyer/readline"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjc-oai/tiny-interpreter/interp"
	"github.com/fjc-oai/tiny-interpreter/loggingcfg"
	"github.com/fjc-oai/tiny-interpreter/runner"
	"github.com/fjc-oai/tiny-interpreter/term"
)

// flags holds the state shared by every subcommand.
type flags struct {
	debug    bool
	printAST bool
	noColor  bool
}

// NewRootCommand builds the `lox` command tree. output is where program
// `print` statements and --print-ast dumps go; in production this is os.Stdout.
func NewRootCommand(output io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "lox",
		Short: "A tree-walking interpreter for a small scripting language",
		Long: heredoc.Doc(`
			lox runs programs written in a small dynamically-typed
			scripting language: C-style control flow, first-class
			functions, and nothing else.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runFile(f, output, args[0])
		},
	}
	root.PersistentFlags().BoolVar(&f.debug, "debug", false, "enable debug-level logging of scan/parse/eval")
	root.PersistentFlags().BoolVar(&f.printAST, "print-ast", false, "print the parsed program before running it")
	root.PersistentFlags().BoolVar(&f.noColor, "no-color", false, "disable ANSI coloring of print output even on a terminal")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a source file to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(f, output, args[0])
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(f, output)
		},
	}

	root.AddCommand(runCmd, replCmd)
	return root
}

func runFile(f *flags, output io.Writer, path string) error {
	loggingcfg.Configure(loggingcfg.Options{Debug: f.debug})

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	printer := term.NewPrinter(output, f.noColor)
	runErr := runner.Run(string(source), colorAdaptingWriter{printer}, runner.Options{
		PrintAST: f.printAST,
		Trace:    f.debug,
	})

	if runErr != nil {
		logrus.Fatal(runErr)
	}
	return nil
}

func runREPL(f *flags, output io.Writer) error {
	loggingcfg.Configure(loggingcfg.Options{Debug: f.debug})

	rl, err := readline.New("lox> ")
	if err != nil {
		return fmt.Errorf("starting REPL: %w", err)
	}
	defer func() {
		closeErr := rl.Close()
		if closeErr != nil {
			logrus.Debugf("repl: error closing readline: %v", closeErr)
		}
	}()

	printer := term.NewPrinter(output, f.noColor)
	repl := runner.NewREPL(colorAdaptingWriter{printer}, runner.Options{
		PrintAST: f.printAST,
		Trace:    f.debug,
	})

	var errs *multierror.Error
	for {
		line, readErr := rl.Readline()
		if readErr == readline.ErrInterrupt {
			continue
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			errs = multierror.Append(errs, readErr)
			break
		}
		if line == "" {
			continue
		}
		if evalErr := repl.Eval(line); evalErr != nil {
			fmt.Fprintln(os.Stderr, evalErr)
		}
	}
	return errs.ErrorOrNil()
}

// colorAdaptingWriter routes runner/interp output through a
// term.Printer so print statements honor --no-color, while still
// satisfying io.Writer for runner.Run/REPL.Eval. `print`-tagged lines
// are colorized; anything else (astprint dumps) passes through plain.
type colorAdaptingWriter struct {
	printer *term.Printer
}

func (w colorAdaptingWriter) Write(p []byte) (int, error) {
	text := string(p)
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
	}
	w.printer.Println(text, colorFor(text))
	return len(p), nil
}

// colorFor picks the color a written line should be printed in.
// `print`-statement output (tagged by interp.PrintTag) is colorized;
// everything else (e.g. --print-ast dumps) is left plain.
func colorFor(text string) term.Color {
	if strings.HasPrefix(text, interp.PrintTag) {
		return term.Green
	}
	return term.Plain
}
