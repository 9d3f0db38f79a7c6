package row

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"blotter/internal/column"

	"github.com/rs/zerolog/log"
)

// Row is one instrument line of the blotter. Values are never modified in
// place: edits and kicks return a new Row.
type Row struct {
	Symbol   string    // Instrument identifier
	Edge     float64   // Quoted edge
	MaxEdge  float64   // Edge ceiling
	Trader   string    // Owning trader
	BidSize  int       //
	Bid      float64   //
	Ask      float64   //
	AskSize  int       //
	Position int       // Signed net position
	LastFill time.Time // Time of the most recent fill
}

type Mode int

const (
	Unfocused Mode = iota
	Focused
	Editing
)

func (m Mode) String() string {
	switch m {
	case Focused:
		return "focused"
	case Editing:
		return "editing"
	}
	return "unfocused"
}

// Columns is the shared column table for Row, built on first use.
var Columns = sync.OnceValue(func() column.Registry[Row] {
	return column.NewRegistry(
		column.Of(column.Field[Row, string]{
			Name: "symbol",
			Get:  func(r Row) string { return r.Symbol },
		}, column.Text),
		column.Of(column.Field[Row, float64]{
			Name:        "edge",
			Get:         func(r Row) float64 { return r.Edge },
			Set:         func(r Row, v float64) Row { r.Edge = v; return r },
			FocusOnEdit: true,
		}, column.Float),
		column.Of(column.Field[Row, float64]{
			Name: "max_edge",
			Get:  func(r Row) float64 { return r.MaxEdge },
			Set:  func(r Row, v float64) Row { r.MaxEdge = v; return r },
		}, column.Float),
		column.Of(column.Field[Row, string]{
			Name: "trader",
			Get:  func(r Row) string { return r.Trader },
			Set:  func(r Row, v string) Row { r.Trader = v; return r },
		}, column.Text),
		column.Of(column.Field[Row, int]{
			Name:  "bsize",
			Group: "bid",
			Get:   func(r Row) int { return r.BidSize },
		}, column.Int),
		column.Of(column.Field[Row, float64]{
			Name:  "bid",
			Group: "bid",
			Get:   func(r Row) float64 { return r.Bid },
		}, column.Float),
		column.Of(column.Field[Row, float64]{
			Name:  "ask",
			Group: "ask",
			Get:   func(r Row) float64 { return r.Ask },
		}, column.Float),
		column.Of(column.Field[Row, int]{
			Name:  "asize",
			Group: "ask",
			Get:   func(r Row) int { return r.AskSize },
		}, column.Int),
		column.Of(column.Field[Row, int]{
			Name: "position",
			Get:  func(r Row) int { return r.Position },
		}, column.Int),
		column.Of(column.Field[Row, time.Time]{
			Name: "last_fill",
			Get:  func(r Row) time.Time { return r.LastFill },
		}, column.Timestamp),
	)
})

// Column names referenced outside the table.
const (
	PositionColumn = "position"
)

// ApplyEdit writes raw into the named column. Unknown or read-only columns and
// unparsable input leave the row exactly as it was.
func ApplyEdit(r Row, name, raw string) Row {
	updated, err := Columns().Edit(r, name, raw)
	if err != nil {
		log.Debug().
			Err(err).
			Str("symbol", r.Symbol).
			Str("column", name).
			Str("input", raw).
			Msg("edit discarded")
		return r
	}
	return updated
}

// MatchesFilter reports whether pattern occurs in the symbol or the trader,
// ignoring case. No other field is searchable.
func MatchesFilter(r Row, pattern string) bool {
	pattern = strings.ToLower(pattern)
	return strings.Contains(strings.ToLower(r.Symbol), pattern) ||
		strings.Contains(strings.ToLower(r.Trader), pattern)
}

func (r Row) String() string {
	return fmt.Sprintf(
		`Symbol:   %s
Edge:     %v (Max: %v)
Trader:   %s
Bid:      %d @ %v
Ask:      %d @ %v
Position: %d
LastFill: %v`,
		r.Symbol,
		r.Edge,
		r.MaxEdge,
		r.Trader,
		r.BidSize,
		r.Bid,
		r.AskSize,
		r.Ask,
		r.Position,
		r.LastFill.Format(time.RFC3339Nano),
	)
}
