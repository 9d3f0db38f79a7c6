package column

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Codec ties a native field type V to its display form, its parser and its
// sort key. Parse may be nil for types that are never edited.
type Codec[V any] struct {
	Format func(V) string
	Parse  func(string) (V, error)
	Key    func(V) SortKey
}

// Field declares one typed field of R. A nil Set makes the field read-only.
type Field[R, V any] struct {
	Name        string
	Group       string
	Get         func(R) V
	Set         func(R, V) R
	FocusOnEdit bool
}

// Of erases the field's native type behind a Column, so rendering, sorting and
// editing never need to know it.
func Of[R, V any](f Field[R, V], codec Codec[V]) Column[R] {
	col := Column[R]{
		Name:        f.Name,
		Group:       f.Group,
		FocusOnEdit: f.FocusOnEdit,
		Get: func(r R) string {
			return codec.Format(f.Get(r))
		},
		SortKey: func(r R) SortKey {
			return codec.Key(f.Get(r))
		},
	}

	if f.Set != nil && codec.Parse != nil {
		col.Editable = true
		col.Set = func(r R, raw string) (R, error) {
			v, err := codec.Parse(raw)
			if err != nil {
				return r, err
			}
			return f.Set(r, v), nil
		}
	}
	return col
}

// Text is the codec for free-form strings.
var Text = Codec[string]{
	Format: func(s string) string { return s },
	Parse:  func(raw string) (string, error) { return raw, nil },
	Key:    StringKey,
}

// Float displays in the shortest decimal form that round-trips, so "0.050"
// and "5e-2" both come back as "0.05".
var Float = Codec[float64]{
	Format: func(f float64) string {
		return decimal.NewFromFloat(f).String()
	},
	Parse: func(raw string) (float64, error) {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrParseFailure, raw)
		}
		f := d.InexactFloat64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("%w: %q is out of range", ErrParseFailure, raw)
		}
		return f, nil
	},
	Key: FloatKey,
}

var Int = Codec[int]{
	Format: strconv.Itoa,
	Parse: func(raw string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrParseFailure, raw)
		}
		return n, nil
	},
	Key: func(n int) SortKey { return FloatKey(float64(n)) },
}

// Timestamp orders by unix nanoseconds and displays wall-clock time of day.
var Timestamp = Codec[time.Time]{
	Format: func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("15:04:05.000")
	},
	Key: func(t time.Time) SortKey {
		if t.IsZero() {
			return FloatKey(math.Inf(-1))
		}
		return FloatKey(float64(t.UnixNano()))
	},
}
