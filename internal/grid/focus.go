package grid

import (
	"fmt"

	"blotter/internal/row"

	"github.com/rs/zerolog/log"
)

// Focus moves focus to the row, ending any edit on the previous one.
func (g *Grid) Focus(id string) error {
	s, ok := g.slots[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRow, id)
	}
	if g.focus == id {
		return nil
	}
	g.blur()
	s.mode = row.Focused
	g.focus = id
	return nil
}

// Focused returns the focused row, if any.
func (g *Grid) Focused() (Entry, bool) {
	s, ok := g.slots[g.focus]
	if !ok {
		return Entry{}, false
	}
	return s.entry(), true
}

// MoveFocus moves focus delta visible rows up (negative) or down, clamped to
// the ends. With nothing focused it starts from the first or last row.
func (g *Grid) MoveFocus(delta int) {
	rows := g.Rows()
	if len(rows) == 0 {
		return
	}

	cur := -1
	for i, e := range rows {
		if e.ID == g.focus {
			cur = i
			break
		}
	}

	var next int
	switch {
	case cur < 0 && delta < 0:
		next = len(rows) - 1
	case cur < 0:
		next = 0
	default:
		next = min(max(cur+delta, 0), len(rows)-1)
	}
	_ = g.Focus(rows[next].ID)
}

// StartEdit puts the focused row into edit mode.
func (g *Grid) StartEdit() error {
	s, ok := g.slots[g.focus]
	if !ok {
		return ErrNoFocus
	}
	s.mode = row.Editing
	log.Debug().Str("symbol", s.model.Symbol).Msg("editing")
	return nil
}

// StopEdit returns an editing row to plain focus.
func (g *Grid) StopEdit() {
	if s, ok := g.slots[g.focus]; ok && s.mode == row.Editing {
		s.mode = row.Focused
	}
}

func (g *Grid) blur() {
	if s, ok := g.slots[g.focus]; ok {
		s.mode = row.Unfocused
	}
	g.focus = ""
}

// Blur clears focus, ending any edit.
func (g *Grid) Blur() {
	g.blur()
}
