package sim

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"blotter/internal/row"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

var ErrInvalidInterval = errors.New("kick interval must be positive")

// Kick asks the grid to apply Action to a random row.
type Kick struct {
	Action row.Action
	At     time.Time
}

// Sink receives kicks. It must hand them over to the UI loop rather than
// touch the grid itself, since it runs on the driver's goroutine.
type Sink = func(Kick)

// Driver emits simulated market activity at a fixed interval. It only decides
// what happens; the grid applies it.
type Driver struct {
	interval  time.Duration
	fillRatio float64 // Share of kicks that are fills rather than price moves
	rng       *rand.Rand
	sink      Sink
}

func NewDriver(interval time.Duration, fillRatio float64, seed uint64, sink Sink) (*Driver, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Driver{
		interval:  interval,
		fillRatio: fillRatio,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sink:      sink,
	}, nil
}

// Start runs the driver until ctx is done or the returned tomb is killed.
func (d *Driver) Start(ctx context.Context) *tomb.Tomb {
	t, _ := tomb.WithContext(ctx)
	t.Go(func() error {
		return d.Run(t)
	})
	return t
}

// Run ticks until the tomb starts dying.
func (d *Driver) Run(t *tomb.Tomb) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", d.interval).Msg("simulation running")
	for {
		select {
		case <-t.Dying():
			log.Info().Msg("simulation stopped")
			return nil
		case now := <-ticker.C:
			d.sink(Kick{Action: d.next(), At: now})
		}
	}
}

func (d *Driver) next() row.Action {
	if d.rng.Float64() < d.fillRatio {
		return row.KickFillTime
	}
	return row.KickPrice
}
