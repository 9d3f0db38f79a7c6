package view

import (
	"blotter/internal/row"
	"blotter/internal/vdom"
)

const (
	arrowUp   = " ▲"
	arrowDown = " ▼"
)

// Header renders the group row and the column-name row. Clicking a name
// calls onSort with that column.
func Header(sortColumn string, descending bool, onSort func(name string)) []*vdom.Node {
	reg := row.Columns()

	var groups []*vdom.Node
	for _, span := range reg.Groups() {
		cells := make([]*vdom.Node, span.Width)
		for i := range cells {
			cells[i] = vdom.Th([]vdom.Attr{vdom.Class("group")}, vdom.NewText(""))
		}
		cells[0].Children[0].Text = span.Group
		groups = append(groups, cells...)
	}

	var names []*vdom.Node
	for _, col := range reg.Columns() {
		label := col.Name
		attrs := []vdom.Attr{vdom.ID("header-" + col.Name)}
		if col.Name == sortColumn {
			attrs = append(attrs, vdom.Class(ClassSorted))
			if descending {
				label += arrowDown
			} else {
				label += arrowUp
			}
		}
		if onSort != nil {
			name := col.Name
			attrs = append(attrs, vdom.OnClick(func() { onSort(name) }))
		}
		names = append(names, vdom.Th(attrs, vdom.NewText(label)))
	}

	return []*vdom.Node{
		vdom.Tr([]vdom.Attr{vdom.Class("groups")}, groups...),
		vdom.Tr([]vdom.Attr{vdom.Class("names")}, names...),
	}
}
