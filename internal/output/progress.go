package output

import (
	"io"

	"github.com/fatih/color"
)

// Progress prints numbered stage lines for multi-step operations.
type Progress struct {
	out     io.Writer
	total   int
	current int
	noColor bool
}

// NewProgress creates a Progress writing to out with the given total steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{
		out:   out,
		total: total,
	}
}

// Progress returns a Progress on the logger's output that follows its colour setting.
func (l *Logger) Progress(total int) *Progress {
	p := NewProgress(l.out, total)
	p.SetNoColor(l.noColor)
	return p
}

// SetNoColor disables colored output.
func (p *Progress) SetNoColor(noColor bool) {
	p.noColor = noColor
}

// Stage prints a progress stage message in format [N/M] Description...
func (p *Progress) Stage(description string) {
	p.current++
	p.paint(color.FgCyan).Fprintf(p.out, "[%d/%d] %s...\n", p.current, p.total, description)
}

func (p *Progress) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if p.noColor {
		c.DisableColor()
	}
	return c
}
