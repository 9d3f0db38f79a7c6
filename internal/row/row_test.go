package row

import (
	"math/rand/v2"
	"testing"
	"time"

	"blotter/internal/column"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Setup & Helpers --------------------------------------------------------

var t0 = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

func testRow() Row {
	return Row{
		Symbol:   "AAPL",
		Edge:     0.25,
		MaxEdge:  2,
		Trader:   "hsimmons",
		BidSize:  300,
		Bid:      187.5,
		Ask:      187.75,
		AskSize:  200,
		Position: -40,
		LastFill: t0,
	}
}

// --- Tests ------------------------------------------------------------------

func TestColumns_Table(t *testing.T) {
	reg := Columns()

	var names, editable []string
	for _, col := range reg.Columns() {
		names = append(names, col.Name)
		if col.CanEdit() {
			editable = append(editable, col.Name)
		}
	}
	assert.Equal(t, []string{
		"symbol", "edge", "max_edge", "trader", "bsize",
		"bid", "ask", "asize", "position", "last_fill",
	}, names)
	assert.Equal(t, []string{"edge", "max_edge", "trader"}, editable)

	focus, ok := reg.FocusColumn()
	require.True(t, ok)
	assert.Equal(t, "edge", focus.Name)

	// Built once and shared.
	assert.Same(t, &Columns().Columns()[0], &reg.Columns()[0])
}

func TestColumns_SortKeyKinds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, col := range Columns().Columns() {
		want := col.SortKey(testRow()).Kind()
		for range 20 {
			assert.Equal(t, want, col.SortKey(Random(rng, t0)).Kind(), col.Name)
		}
	}
	symbol, _ := Columns().Lookup("symbol")
	position, _ := Columns().Lookup("position")
	assert.Equal(t, column.StringKind, symbol.SortKey(testRow()).Kind())
	assert.Equal(t, column.FloatKind, position.SortKey(testRow()).Kind())
}

func TestColumns_Get(t *testing.T) {
	r := testRow()
	want := map[string]string{
		"symbol":    "AAPL",
		"edge":      "0.25",
		"max_edge":  "2",
		"trader":    "hsimmons",
		"bsize":     "300",
		"bid":       "187.5",
		"ask":       "187.75",
		"asize":     "200",
		"position":  "-40",
		"last_fill": "09:30:00.000",
	}
	for _, col := range Columns().Columns() {
		assert.Equal(t, want[col.Name], col.Get(r), col.Name)
	}
}

func TestColumns_SetRoundTrip(t *testing.T) {
	inputs := map[string][2]string{
		"edge":     {"0.050", "0.05"},
		"max_edge": {"3", "3"},
		"trader":   {"bkent", "bkent"},
	}
	for name, io := range inputs {
		col, ok := Columns().Lookup(name)
		require.True(t, ok)
		updated, err := col.Set(testRow(), io[0])
		require.NoError(t, err, name)
		assert.Equal(t, io[1], col.Get(updated), name)
	}
}

func TestApplyEdit(t *testing.T) {
	r := testRow()

	// 1. Unknown and read-only columns are no-ops.
	assert.Equal(t, r, ApplyEdit(r, "nonexistent-column", "anything"))
	assert.Equal(t, r, ApplyEdit(r, "bid", "1"))

	// 2. Parse failure is a no-op.
	assert.Equal(t, r, ApplyEdit(r, "edge", "not-a-number"))
	assert.Equal(t, r, ApplyEdit(r, "edge", ""))
	assert.Equal(t, r, ApplyEdit(r, "edge", "1e400"))
	assert.Equal(t, r, ApplyEdit(r, "max_edge", "-1e400"))

	// 3. A valid edit touches only its field.
	want := r
	want.Edge = 0.05
	assert.Equal(t, want, ApplyEdit(r, "edge", "0.05"))
	assert.Equal(t, 0.25, r.Edge)

	want = r
	want.Trader = "jpham"
	assert.Equal(t, want, ApplyEdit(r, "trader", "jpham"))
}

func TestMatchesFilter(t *testing.T) {
	r := testRow()

	assert.True(t, MatchesFilter(r, "aap"))
	assert.True(t, MatchesFilter(r, "AAPL"))
	assert.True(t, MatchesFilter(r, "SIMM"))
	assert.True(t, MatchesFilter(r, ""))
	assert.False(t, MatchesFilter(r, "msft"))

	// Only symbol and trader are searchable.
	assert.False(t, MatchesFilter(r, "187.5"))
	assert.False(t, MatchesFilter(r, "-40"))
}

func TestApplyAction_KickPrice(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	r := testRow()

	for range 500 {
		next := ApplyAction(KickPrice, r, rng, t0)
		assert.GreaterOrEqual(t, next.Bid, bidFloor)
		assert.InDelta(t, r.Ask-r.Bid, next.Ask-next.Bid, 1e-9, "spread preserved")
		assert.LessOrEqual(t, next.Bid-r.Bid, maxPriceStep)
		assert.Equal(t, r.Position, next.Position)
		assert.Equal(t, r.LastFill, next.LastFill)
		r = next
	}

	// Near the floor the bid is clamped.
	low := testRow()
	low.Bid, low.Ask = 10, 10.5
	for range 100 {
		low = ApplyAction(KickPrice, low, rng, t0)
		assert.GreaterOrEqual(t, low.Bid, bidFloor)
		assert.InDelta(t, 0.5, low.Ask-low.Bid, 1e-9)
	}
}

func TestApplyAction_KickFillTime(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	r := testRow()
	now := t0.Add(time.Minute)

	for range 500 {
		next := ApplyAction(KickFillTime, r, rng, now)
		delta := next.Position - r.Position
		assert.GreaterOrEqual(t, delta, -maxPositionKick)
		assert.LessOrEqual(t, delta, maxPositionKick)
		assert.Equal(t, now, next.LastFill)
		assert.Equal(t, r.Bid, next.Bid)
	}
	assert.Equal(t, t0, r.LastFill, "input untouched")
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for range 100 {
		r := Random(rng, t0)
		assert.GreaterOrEqual(t, r.Bid, bidFloor)
		assert.Greater(t, r.Ask, r.Bid)
		assert.NotEmpty(t, r.Symbol)
		assert.Contains(t, traders, r.Trader)
		assert.Equal(t, t0, r.LastFill)
	}
}
