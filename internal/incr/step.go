package incr

import (
	"slices"
	"time"
)

// Step is one breakpoint of a StepFunction: from At onwards the value is
// Value, until the next breakpoint.
type Step[T any] struct {
	At    time.Time
	Value T
}

// StepFunction maps time to a value that only changes at fixed breakpoints.
// It holds no timer; callers sample it with whatever "now" they have.
type StepFunction[T any] struct {
	init  T
	steps []Step[T]
}

// NewStepFunction sorts the breakpoints by time. Breakpoints sharing a time
// keep their given order, the last one wins.
func NewStepFunction[T any](init T, steps ...Step[T]) StepFunction[T] {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b Step[T]) int {
		return a.At.Compare(b.At)
	})
	return StepFunction[T]{init: init, steps: sorted}
}

// At returns the value in effect at t.
func (f StepFunction[T]) At(t time.Time) T {
	value := f.init
	for _, step := range f.steps {
		if t.Before(step.At) {
			break
		}
		value = step.Value
	}
	return value
}

// NextChange returns the first breakpoint strictly after t, or false when the
// function is constant from t on.
func (f StepFunction[T]) NextChange(t time.Time) (time.Time, bool) {
	for _, step := range f.steps {
		if step.At.After(t) {
			return step.At, true
		}
	}
	return time.Time{}, false
}
