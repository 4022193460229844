package runner_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjc-oai/tiny-interpreter/interp"
	"github.com/fjc-oai/tiny-interpreter/runner"
)

func TestRunExecutesSource(t *testing.T) {
	var buf bytes.Buffer
	err := runner.Run("var a=1; var b=2; print a+b;", &buf, runner.Options{})
	require.NoError(t, err)
	assert.Equal(t, interp.PrintTag+"3\n", buf.String())
}

func TestRunPrintsASTWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	err := runner.Run("print 1+2;", &buf, runner.Options{PrintAST: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(print (+ 1 2))")
	assert.Contains(t, buf.String(), interp.PrintTag+"3\n")
}

func TestRunSurfacesScanErrors(t *testing.T) {
	var buf bytes.Buffer
	err := runner.Run("@", &buf, runner.Options{})
	require.Error(t, err)
}

func TestRunSurfacesParseErrors(t *testing.T) {
	var buf bytes.Buffer
	err := runner.Run("print 1", &buf, runner.Options{})
	require.Error(t, err)
}

func TestRunSurfacesRuntimeErrors(t *testing.T) {
	var buf bytes.Buffer
	err := runner.Run("print undefined_var;", &buf, runner.Options{})
	require.Error(t, err)
}

func TestREPLPersistsStateAcrossLines(t *testing.T) {
	var buf bytes.Buffer
	repl := runner.NewREPL(&buf, runner.Options{})
	require.NoError(t, repl.Eval("var a = 1;"))
	require.NoError(t, repl.Eval("a = a + 1;"))
	require.NoError(t, repl.Eval("print a;"))
	assert.Equal(t, interp.PrintTag+"2\n", buf.String())
}
