// Package row lays out fixed-width text columns for terminal listings.
package row

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

type Option func(*Layout)

// WithStyles sets per-column styles. Columns without a style render
// plain.
func WithStyles(styles ...lipgloss.Style) Option {
	return func(l *Layout) {
		l.styles = styles
	}
}

type Layout struct {
	widths []int
	styles []lipgloss.Style
}

// New returns a layout with one column per width.
func New(widths []int, opts ...Option) Layout {
	l := Layout{widths: widths}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

func (l Layout) Columns() int {
	return len(l.widths)
}

func (l Layout) style(idx int) lipgloss.Style {
	if idx < len(l.styles) {
		return l.styles[idx]
	}
	return lipgloss.NewStyle()
}

// String renders one logical row. Cells longer than their column wrap
// onto extra lines; missing cells are blank.
func (l Layout) String(cells ...string) string {
	columns := make([][]string, len(l.widths))
	lines := 1

	for idx, width := range l.widths {
		if idx >= len(cells) || cells[idx] == "" {
			continue
		}
		text := wrap.String(wordwrap.String(cells[idx], width), width)
		columns[idx] = strings.Split(text, "\n")
		if n := len(columns[idx]); n > lines {
			lines = n
		}
	}

	var b strings.Builder
	for line := 0; line < lines; line++ {
		if line > 0 {
			b.WriteByte('\n')
		}
		for idx, width := range l.widths {
			col := columns[idx]
			// padding.String does not pad empty strings.
			if line < len(col) && col[line] != "" {
				b.WriteString(padding.String(l.style(idx).Render(col[line]), uint(width)))
			} else {
				b.WriteString(strings.Repeat(" ", width))
			}
		}
	}
	return b.String()
}

// Lines renders every row and trims trailing blanks from each line.
func (l Layout) Lines(rows [][]string) string {
	var b strings.Builder
	for _, cells := range rows {
		for _, line := range strings.Split(l.String(cells...), "\n") {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
