// Package term colorizes `print` output when it is going to a real
// terminal, and leaves it untouched otherwise, so piped or captured
// output never carries stray escape codes.
package term

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color names the small fixed palette print output can be tagged with.
type Color int

const (
	Plain Color = iota
	Green
	Yellow
	Red
	Cyan
)

// Printer writes `print` output, optionally colorized.
type Printer struct {
	out     io.Writer
	enabled bool
}

// NewPrinter wraps out. Coloring is enabled only when out is a terminal
// and forceDisable is false.
func NewPrinter(out io.Writer, forceDisable bool) *Printer {
	enabled := !forceDisable && isTerminal(out)
	return &Printer{out: out, enabled: enabled}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Println writes text followed by a newline, in the given color when
// coloring is enabled.
func (p *Printer) Println(text string, c Color) {
	if !p.enabled || c == Plain {
		io.WriteString(p.out, text+"\n")
		return
	}
	io.WriteString(p.out, colorFunc(c)(text)+"\n")
}

func colorFunc(c Color) func(...any) string {
	switch c {
	case Green:
		return color.New(color.FgGreen).SprintFunc()
	case Yellow:
		return color.New(color.FgYellow).SprintFunc()
	case Red:
		return color.New(color.FgRed).SprintFunc()
	case Cyan:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return fmt.Sprint
	}
}
