// Command lox is the entry point for the interpreter's command-line
// tool: run a file, or start an interactive REPL.
package main

import (
	"os"

	"github.com/fjc-oai/tiny-interpreter/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
