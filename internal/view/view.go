package view

import (
	"time"

	"blotter/internal/column"
	"blotter/internal/highlight"
	"blotter/internal/row"
	"blotter/internal/vdom"
)

// Class names attached to nodes.
const (
	ClassSorted  = "sorted"
	ClassFocusMe = "focus-me"
	ClassFocused = "focused"
	ClassEditing = "editing"
)

// Input is everything a row view depends on. The callbacks belong to the
// grid; the view never changes the row's mode itself.
type Input struct {
	Model        row.Row
	Mode         row.Mode
	SortColumn   string // Empty when the grid is unsorted
	Now          time.Time
	FocusMe      func()
	RememberEdit func(name, raw string)
}

// InputID is the element id of the edit box for a column.
func InputID(name string) string {
	return name + "-input"
}

// Row renders one row as a tr of td cells in column order.
func Row(in Input) *vdom.Node {
	return render(in, highlight.At(in.Model.LastFill, in.Now))
}

func render(in Input, class highlight.Class) *vdom.Node {
	cols := row.Columns().Columns()
	cells := make([]*vdom.Node, 0, len(cols))
	for _, col := range cols {
		cells = append(cells, cell(in, col, class))
	}

	attrs := []vdom.Attr{vdom.Class(rowClass(in.Mode))}
	if in.FocusMe != nil {
		attrs = append(attrs, vdom.OnClick(in.FocusMe))
	}
	return vdom.Tr(attrs, cells...)
}

func cell(in Input, col column.Column[row.Row], class highlight.Class) *vdom.Node {
	attrs := []vdom.Attr{vdom.ID(col.Name)}

	// The sort marker would clash with the focus marker.
	if in.Mode == row.Unfocused && col.Name == in.SortColumn {
		attrs = append(attrs, vdom.Class(ClassSorted))
	}
	if col.Name == row.PositionColumn {
		attrs = append(attrs, vdom.Class(class.String()))
	}

	if in.Mode != row.Editing || !col.CanEdit() {
		return vdom.Td(attrs, vdom.NewText(col.Get(in.Model)))
	}

	// The box always shows the committed value; keystrokes go straight to
	// the grid, which folds them into the next model.
	input := []vdom.Attr{
		vdom.ID(InputID(col.Name)),
		vdom.Value(col.Get(in.Model)),
	}
	if col.FocusOnEdit {
		input = append(input, vdom.Class(ClassFocusMe))
	}
	if in.RememberEdit != nil {
		name := col.Name
		remember := in.RememberEdit
		input = append(input, vdom.OnInput(func(raw string) { remember(name, raw) }))
	}
	return vdom.Td(attrs, vdom.Input(input...))
}

func rowClass(mode row.Mode) string {
	switch mode {
	case row.Focused:
		return ClassFocused
	case row.Editing:
		return ClassEditing
	}
	return ""
}
