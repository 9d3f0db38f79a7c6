// Package highlight decays a "just changed" marker over two seconds without
// any per-row timer: the class is a step function of the change timestamp,
// sampled at whatever time the scheduler passes in.
package highlight

import (
	"time"

	"blotter/internal/incr"
)

type Class int

const (
	None Class = iota
	Fading
	New
)

const (
	FadeAfter  = time.Second
	ClearAfter = 2 * time.Second
)

// String is the class name attached to the highlighted cell.
func (c Class) String() string {
	switch c {
	case New:
		return "new"
	case Fading:
		return "fading"
	}
	return ""
}

// Schedule returns the class over time for a change at changedAt. A new
// change builds a new schedule; nothing is shared between rows.
func Schedule(changedAt time.Time) incr.StepFunction[Class] {
	return incr.NewStepFunction(New,
		incr.Step[Class]{At: changedAt.Add(FadeAfter), Value: Fading},
		incr.Step[Class]{At: changedAt.Add(ClearAfter), Value: None},
	)
}

// At is the class at now for a change at changedAt.
func At(changedAt, now time.Time) Class {
	return Schedule(changedAt).At(now)
}

// NextChange is the next time after now at which the class for changedAt
// moves, or false once it has reached None.
func NextChange(changedAt, now time.Time) (time.Time, bool) {
	return Schedule(changedAt).NextChange(now)
}
