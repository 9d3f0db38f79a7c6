package column

import (
	"fmt"
)

// Registry is the fixed, ordered column set of a record type. It is built once
// and only read afterwards, so it is safe to share between rows.
type Registry[R any] struct {
	columns []Column[R]
	index   map[string]int
	focus   int // index of the FocusOnEdit column, -1 if none
}

// Span is a run of adjacent columns sharing a header group.
type Span struct {
	Group string
	Width int
}

// NewRegistry keeps columns in the order given. Duplicate names or more than
// one FocusOnEdit column are table bugs and panic.
func NewRegistry[R any](cols ...Column[R]) Registry[R] {
	reg := Registry[R]{
		columns: make([]Column[R], len(cols)),
		index:   make(map[string]int, len(cols)),
		focus:   -1,
	}
	copy(reg.columns, cols)

	for i, col := range reg.columns {
		if _, ok := reg.index[col.Name]; ok {
			panic(fmt.Sprintf("column: duplicate column %q", col.Name))
		}
		reg.index[col.Name] = i

		if col.FocusOnEdit {
			if reg.focus >= 0 {
				panic(fmt.Sprintf(
					"column: %q and %q both focus on edit",
					reg.columns[reg.focus].Name, col.Name,
				))
			}
			reg.focus = i
		}
	}
	return reg
}

// Columns returns the columns in declared order. The slice must not be
// modified.
func (reg Registry[R]) Columns() []Column[R] {
	return reg.columns
}

func (reg Registry[R]) Len() int {
	return len(reg.columns)
}

func (reg Registry[R]) Lookup(name string) (Column[R], bool) {
	i, ok := reg.index[name]
	if !ok {
		return Column[R]{}, false
	}
	return reg.columns[i], true
}

func (reg Registry[R]) FocusColumn() (Column[R], bool) {
	if reg.focus < 0 {
		return Column[R]{}, false
	}
	return reg.columns[reg.focus], true
}

// Edit writes raw into the named column of row. The row is returned untouched
// alongside any error.
func (reg Registry[R]) Edit(row R, name, raw string) (R, error) {
	col, ok := reg.Lookup(name)
	if !ok || !col.CanEdit() {
		return row, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	updated, err := col.Set(row, raw)
	if err != nil {
		return row, fmt.Errorf("column %q: %w", name, err)
	}
	return updated, nil
}

// Groups collapses adjacent columns with the same group into header spans.
// Ungrouped columns get a span of their own with an empty group.
func (reg Registry[R]) Groups() []Span {
	var spans []Span
	for _, col := range reg.columns {
		n := len(spans)
		if n > 0 && col.Group != "" && spans[n-1].Group == col.Group {
			spans[n-1].Width++
			continue
		}
		spans = append(spans, Span{Group: col.Group, Width: 1})
	}
	return spans
}
