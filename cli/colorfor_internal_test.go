package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fjc-oai/tiny-interpreter/interp"
	"github.com/fjc-oai/tiny-interpreter/term"
)

func TestColorForTagsPrintOutputGreen(t *testing.T) {
	assert.Equal(t, term.Green, colorFor(interp.PrintTag+"3"))
}

func TestColorForLeavesUntaggedLinesPlain(t *testing.T) {
	assert.Equal(t, term.Plain, colorFor("(print (+ 1 2))"))
}
