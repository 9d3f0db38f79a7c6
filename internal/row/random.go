package row

import (
	"math"
	"math/rand/v2"
	"time"
)

var (
	traders  = []string{"hsimmons", "bkent", "jpham", "ewarren", "mchen", "tlopez"}
	alphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
)

// New builds a row with both sides of the quote set and no position.
func New(symbol, trader string, bid, ask float64, now time.Time) Row {
	return Row{
		Symbol:   symbol,
		Edge:     0.25,
		MaxEdge:  1,
		Trader:   trader,
		BidSize:  100,
		Bid:      bid,
		Ask:      ask,
		AskSize:  100,
		LastFill: now,
	}
}

// Random generates a plausible row for demos and tests.
func Random(rng *rand.Rand, now time.Time) Row {
	symbol := make([]rune, 3+rng.IntN(2))
	for i := range symbol {
		symbol[i] = alphabet[rng.IntN(len(alphabet))]
	}

	bid := round2(bidFloor + rng.Float64()*90)
	return Row{
		Symbol:   string(symbol),
		Edge:     round2(rng.Float64()),
		MaxEdge:  round2(1 + rng.Float64()*4),
		Trader:   traders[rng.IntN(len(traders))],
		BidSize:  100 * (1 + rng.IntN(20)),
		Bid:      bid,
		Ask:      round2(bid + 0.01 + rng.Float64()),
		AskSize:  100 * (1 + rng.IntN(20)),
		Position: rng.IntN(2001) - 1000,
		LastFill: now,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
