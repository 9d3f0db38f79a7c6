package column

import (
	"errors"
)

var (
	ErrParseFailure  = errors.New("unable to parse edit input")
	ErrUnknownColumn = errors.New("unknown or read-only column")
)

// Column describes one field of a record R: how to display it, how to order
// rows by it and, for editable fields, how to write raw input back into it.
type Column[R any] struct {
	Name        string                     // Identifier, edit target and element id prefix
	Group       string                     // Optional header group
	Get         func(R) string             // Display text
	Set         func(R, string) (R, error) // Nil for read-only fields
	SortKey     func(R) SortKey            // Same kind for every row
	Editable    bool                       //
	FocusOnEdit bool                       // Receives keyboard focus when a row enters edit mode
}

// CanEdit reports whether the column accepts edits at all.
func (c Column[R]) CanEdit() bool {
	return c.Editable && c.Set != nil
}

// Comparator builds the row ordering for a column out of its sort key.
func Comparator[R any](c Column[R]) func(a, b R) int {
	return func(a, b R) int {
		return Compare(c.SortKey(a), c.SortKey(b))
	}
}
