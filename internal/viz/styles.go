package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	bodies lipgloss.Style
	tree   lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	warn   lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		bodies: lipgloss.NewStyle().Foreground(t.Bodies),
		tree:   lipgloss.NewStyle().Foreground(t.Tree),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(panelWidth),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		warn:   lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values as block characters scaled between
// their minimum and maximum.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// composite merges the body layer over the tree layer cell by cell, colouring
// each run of cells by the layer that owns it.
func composite(bodies, tree *Canvas, st styles) string {
	var out strings.Builder
	for row := range bodies.cells {
		var run []rune
		owner := -1
		flush := func() {
			if len(run) == 0 {
				return
			}
			switch owner {
			case 0:
				out.WriteString(st.bodies.Render(string(run)))
			case 1:
				out.WriteString(st.tree.Render(string(run)))
			default:
				out.WriteString(string(run))
			}
			run = run[:0]
		}

		for col, cell := range bodies.cells[row] {
			layer := 2
			if cell != brailleBlank {
				layer = 0
			}
			if tree != nil {
				if tc := tree.cells[row][col]; tc != brailleBlank {
					cell |= tc
					if layer != 0 {
						layer = 1
					}
				}
			}
			if layer != owner {
				flush()
				owner = layer
			}
			run = append(run, cell)
		}
		flush()
		out.WriteByte('\n')
	}
	return out.String()
}
