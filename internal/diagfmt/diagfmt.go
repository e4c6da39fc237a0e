// Package diagfmt renders diagnostics for humans: one header line per
// diagnostic with the source line and a caret underneath.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pl0/internal/diag"
	"pl0/internal/source"
)

// Printer writes formatted diagnostics to one output.
type Printer struct {
	out      io.Writer
	severity map[diag.Severity]*color.Color
	location *color.Color
}

// New builds a printer. When colored is false every color is disabled;
// when true colors are forced even if out is not a terminal.
func New(out io.Writer, colored bool) *Printer {
	p := &Printer{
		out: out,
		severity: map[diag.Severity]*color.Color{
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevFatal:   color.New(color.FgRed, color.Bold),
		},
		location: color.New(color.Bold),
	}
	for _, c := range p.severity {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	if colored {
		p.location.EnableColor()
	} else {
		p.location.DisableColor()
	}
	return p
}

// Print renders one diagnostic against its source file.
func (p *Printer) Print(file *source.File, d diag.Diagnostic) {
	line, col := file.LineCol(d.Pos)
	fmt.Fprintf(p.out, "%s[%s] %s: %s\n",
		p.severity[d.Severity].Sprint(d.Severity),
		d.Code,
		p.location.Sprintf("%s:%d:%d", file.Name(), line, col),
		d.Message)
	text := file.LineText(line)
	if text == "" {
		return
	}
	fmt.Fprintf(p.out, "  %s\n", text)
	fmt.Fprintf(p.out, "  %s%s\n", indentFor(text, col), p.severity[d.Severity].Sprint("^"))
}

// PrintAll renders every diagnostic in the bag, sorted, and returns the
// number of errors.
func (p *Printer) PrintAll(file *source.File, bag *diag.Bag) int {
	bag.Sort()
	for _, d := range bag.Items() {
		p.Print(file, d)
	}
	return bag.ErrorCount()
}

// indentFor aligns the caret under column col, preserving tabs so the
// caret lines up with the rendered source line.
func indentFor(text string, col int) string {
	var b strings.Builder
	for i, r := range text {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
