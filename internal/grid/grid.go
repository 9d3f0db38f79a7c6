package grid

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"blotter/internal/column"
	"blotter/internal/highlight"
	"blotter/internal/incr"
	"blotter/internal/row"
	"blotter/internal/vdom"
	"blotter/internal/view"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"
)

var (
	ErrNoSuchRow = errors.New("no such row")
	ErrNoFocus   = errors.New("no focused row")
)

type slot struct {
	id    string
	seq   uint64 // Insertion order, the tie-breaker for every sort
	model row.Row
	mode  row.Mode
}

// Entry is a read-only snapshot of one grid row.
type Entry struct {
	ID    string
	Model row.Row
	Mode  row.Mode
}

type sortIndex = btree.BTreeG[*slot]

// Grid owns the rows of a blotter: their models, their modes, the sort order
// and the filter. It is the only place a row's model or mode changes.
//
// A Grid is not safe for concurrent use; all calls come from the UI loop.
type Grid struct {
	clock *incr.Clock
	rng   *rand.Rand

	slots map[string]*slot
	index *sortIndex
	views *view.Cache[string]

	sortColumn string
	descending bool
	filter     string
	focus      string // ID of the focused row, empty if none

	// Some book keeping
	nextSeq uint64
	nEdits  uint64 // Edits that changed a row
	nKicks  uint64 // Simulated actions applied
}

func New(clock *incr.Clock, rng *rand.Rand) *Grid {
	g := &Grid{
		clock: clock,
		rng:   rng,
		slots: make(map[string]*slot),
		views: view.NewCache[string](),
	}
	g.index = g.newIndex()
	return g
}

// newIndex orders slots by the current sort column, then by insertion order
// so that the order is total even when keys tie.
func (g *Grid) newIndex() *sortIndex {
	var compare func(a, b row.Row) int
	if col, ok := row.Columns().Lookup(g.sortColumn); ok {
		compare = column.Comparator(col)
	}
	descending := g.descending

	return btree.NewBTreeG(func(a, b *slot) bool {
		if compare != nil {
			c := compare(a.model, b.model)
			if descending {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return a.seq < b.seq
	})
}

// Add inserts a row and returns its ID.
func (g *Grid) Add(r row.Row) string {
	s := &slot{
		id:    uuid.NewString(),
		seq:   g.nextSeq,
		model: r,
	}
	g.nextSeq++
	g.slots[s.id] = s
	g.index.Set(s)

	log.Debug().Str("id", s.id).Str("symbol", r.Symbol).Msg("row added")
	return s.id
}

func (g *Grid) Remove(id string) error {
	s, ok := g.slots[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRow, id)
	}
	g.index.Delete(s)
	delete(g.slots, id)
	g.views.Forget(id)
	if g.focus == id {
		g.focus = ""
	}
	return nil
}

func (g *Grid) Len() int {
	return len(g.slots)
}

func (g *Grid) Get(id string) (Entry, bool) {
	s, ok := g.slots[id]
	if !ok {
		return Entry{}, false
	}
	return s.entry(), true
}

// Rows returns the rows passing the filter in display order.
func (g *Grid) Rows() []Entry {
	entries := make([]Entry, 0, g.index.Len())
	g.index.Scan(func(s *slot) bool {
		if row.MatchesFilter(s.model, g.filter) {
			entries = append(entries, s.entry())
		}
		return true
	})
	return entries
}

// SortBy orders rows by the named column. Sorting by the current column again
// flips the direction; an empty name restores insertion order.
func (g *Grid) SortBy(name string) error {
	if name != "" {
		if _, ok := row.Columns().Lookup(name); !ok {
			return fmt.Errorf("%w: %q", column.ErrUnknownColumn, name)
		}
	}

	if name == g.sortColumn && name != "" {
		g.descending = !g.descending
	} else {
		g.sortColumn = name
		g.descending = false
	}

	index := g.newIndex()
	for _, s := range g.slots {
		index.Set(s)
	}
	g.index = index

	log.Debug().Str("column", name).Bool("descending", g.descending).Msg("sort changed")
	return nil
}

func (g *Grid) Sort() (name string, descending bool) {
	return g.sortColumn, g.descending
}

// SetFilter keeps only rows whose symbol or trader contains pattern. A focused
// row that is filtered out loses focus.
func (g *Grid) SetFilter(pattern string) {
	g.filter = pattern
	if s, ok := g.slots[g.focus]; ok && !row.MatchesFilter(s.model, pattern) {
		g.blur()
	}
}

func (g *Grid) Filter() string {
	return g.filter
}

// update swaps a slot's model, re-keying it in the index.
func (g *Grid) update(s *slot, next row.Row) bool {
	if next == s.model {
		return false
	}
	g.index.Delete(s)
	s.model = next
	g.index.Set(s)
	return true
}

// RememberEdit folds one edit of a row's field into a new model. Invalid input
// leaves the row as it was.
func (g *Grid) RememberEdit(id, name, raw string) error {
	s, ok := g.slots[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRow, id)
	}
	if g.update(s, row.ApplyEdit(s.model, name, raw)) {
		g.nEdits++
		log.Info().
			Str("symbol", s.model.Symbol).
			Str("column", name).
			Str("value", raw).
			Msg("edit committed")
	}
	return nil
}

// Apply runs a simulated action against one row at the clock's current time.
func (g *Grid) Apply(id string, action row.Action) error {
	s, ok := g.slots[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRow, id)
	}
	g.update(s, row.ApplyAction(action, s.model, g.rng, g.clock.Now()))
	g.nKicks++
	return nil
}

// ApplyRandom runs the action against a uniformly chosen row, filtered or
// not. It returns the row's ID, or false when the grid is empty.
func (g *Grid) ApplyRandom(action row.Action) (string, bool) {
	n := g.index.Len()
	if n == 0 {
		return "", false
	}
	s, _ := g.index.GetAt(g.rng.IntN(n))
	_ = g.Apply(s.id, action)
	return s.id, true
}

// NextChange is the earliest time after now at which any row's highlight
// moves. The scheduler re-samples the clock then instead of polling.
func (g *Grid) NextChange() (time.Time, bool) {
	now := g.clock.Now()
	var (
		earliest time.Time
		found    bool
	)
	for _, s := range g.slots {
		next, ok := highlight.NextChange(s.model.LastFill, now)
		if ok && (!found || next.Before(earliest)) {
			earliest, found = next, true
		}
	}
	return earliest, found
}

// View renders the header rows followed by every visible row.
func (g *Grid) View() (header, rows []*vdom.Node) {
	header = view.Header(g.sortColumn, g.descending, func(name string) {
		_ = g.SortBy(name)
	})

	now := g.clock.Now()
	for _, e := range g.Rows() {
		id := e.ID
		rows = append(rows, g.views.Row(id, view.Input{
			Model:      e.Model,
			Mode:       e.Mode,
			SortColumn: g.sortColumn,
			Now:        now,
			FocusMe:    func() { _ = g.Focus(id) },
			RememberEdit: func(name, raw string) {
				_ = g.RememberEdit(id, name, raw)
			},
		}))
	}
	return header, rows
}

// Stats returns edits committed and simulated actions applied.
func (g *Grid) Stats() (edits, kicks uint64) {
	return g.nEdits, g.nKicks
}

func (s *slot) entry() Entry {
	return Entry{ID: s.id, Model: s.model, Mode: s.mode}
}
