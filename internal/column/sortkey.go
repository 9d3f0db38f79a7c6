package column

import (
	"cmp"
	"fmt"
	"strings"
)

type Kind int

const (
	// String keys order byte-wise, case-sensitive.
	StringKind Kind = iota
	// Float keys order numerically. Integers and timestamps are promoted.
	FloatKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case FloatKind:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SortKey is the comparable projection of a single field. Only one of str or
// num is meaningful, depending on kind.
type SortKey struct {
	kind Kind
	str  string
	num  float64
}

func StringKey(s string) SortKey {
	return SortKey{kind: StringKind, str: s}
}

func FloatKey(f float64) SortKey {
	return SortKey{kind: FloatKind, num: f}
}

func (k SortKey) Kind() Kind { return k.kind }

func (k SortKey) String() string {
	if k.kind == StringKind {
		return fmt.Sprintf("%s(%q)", k.kind, k.str)
	}
	return fmt.Sprintf("%s(%v)", k.kind, k.num)
}

// Compare returns -1, 0 or 1. Keys of different kinds never meet inside one
// column, so a mismatch is a bug in the column table and panics.
func Compare(a, b SortKey) int {
	if a.kind != b.kind {
		panic(fmt.Sprintf("column: comparing %v with %v", a, b))
	}
	switch a.kind {
	case StringKind:
		return strings.Compare(a.str, b.str)
	default:
		return cmp.Compare(a.num, b.num)
	}
}
