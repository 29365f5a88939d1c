package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget draws itself into at most width columns. Height is whatever the
// content needs.
type Widget interface {
	Render(width int) string
}

// Func adapts a function to Widget.
type Func func(width int) string

func (f Func) Render(width int) string {
	if f == nil {
		return ""
	}
	return f(width)
}

// Text is plain text wrapped to the available width.
type Text string

func (t Text) Render(width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Wrap(string(t), width, " -")
}

// Lines splits rendered output into rows; empty output has no rows.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Fit truncates every row of s to width columns.
func Fit(s string, width int) string {
	lines := Lines(s)
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "")
	}
	return strings.Join(lines, "\n")
}
