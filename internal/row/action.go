package row

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Action is a simulated market event for a single row.
type Action int

const (
	KickPrice Action = iota
	KickFillTime
)

const (
	bidFloor        = 10.0
	maxPriceStep    = 1.0
	maxPositionKick = 200
)

func (a Action) String() string {
	switch a {
	case KickPrice:
		return "kick_price"
	case KickFillTime:
		return "kick_fill_time"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ApplyAction returns the row after the action. It never mutates r.
//
// KickPrice walks the bid by up to one unit either way, never below the floor,
// and keeps the spread. KickFillTime books a fill of up to 200 either way at now.
func ApplyAction(a Action, r Row, rng *rand.Rand, now time.Time) Row {
	switch a {
	case KickPrice:
		spread := r.Ask - r.Bid
		r.Bid = math.Max(bidFloor, r.Bid+(rng.Float64()*2-1)*maxPriceStep)
		r.Ask = r.Bid + spread
	case KickFillTime:
		r.Position += rng.IntN(2*maxPositionKick+1) - maxPositionKick
		r.LastFill = now
	}
	return r
}
