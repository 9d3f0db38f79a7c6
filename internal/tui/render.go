package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"blotter/internal/row"
	"blotter/internal/vdom"
)

const defaultWidth = 10

var widths = map[string]int{
	"symbol":    8,
	"edge":      8,
	"max_edge":  9,
	"trader":    10,
	"bsize":     7,
	"bid":       10,
	"ask":       10,
	"asize":     7,
	"position":  9,
	"last_fill": 13,
}

var cols = func() []string {
	var names []string
	for _, col := range row.Columns().Columns() {
		names = append(names, col.Name)
	}
	return names
}()

func width(id string) int {
	id = strings.TrimPrefix(id, "header-")
	if w, ok := widths[id]; ok {
		return w
	}
	return defaultWidth
}

// renderer turns node trees into terminal lines. The active input, if any,
// is drawn by the caller-provided function instead of from its node value.
type renderer struct {
	styles Styles
	active string
	input  func() string
}

// row draws a tr node as one line of fixed-width cells.
func (r renderer) row(tr *vdom.Node) string {
	cells := make([]string, 0, len(tr.Children))
	for i, cell := range tr.Children {
		w := width(cell.ID)
		if cell.ID == "" && i < len(cols) {
			w = width(cols[i])
		}
		cells = append(cells, r.cell(cell, w))
	}
	line := strings.Join(cells, " ")
	return r.classes(tr.Classes).Render(line)
}

func (r renderer) cell(td *vdom.Node, w int) string {
	var text string
	style := r.classes(td.Classes)

	for _, child := range td.Children {
		switch {
		case child.Kind == vdom.Text:
			text += child.Text
		case child.Tag == "input" && child.ID == r.active && r.input != nil:
			text += r.input()
		case child.Tag == "input":
			text += "[" + child.Value + "]"
			style = style.Inherit(r.styles.Input).Inherit(r.classes(child.Classes))
		}
	}
	return style.Width(w).MaxWidth(w).Render(text)
}

func (r renderer) classes(names []string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, name := range names {
		if s, ok := r.styles.class(name); ok {
			style = style.Inherit(s)
		}
	}
	return style
}

// columnAt maps a screen x offset to a column index.
func columnAt(x int) (int, bool) {
	left := 0
	for i, name := range cols {
		right := left + width(name)
		if x >= left && x < right {
			return i, true
		}
		left = right + 1
	}
	return 0, false
}
