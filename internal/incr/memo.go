package incr

// Memo caches derived values per slot and only recomputes a slot when its
// inputs differ from the ones the cached value was built from. Inputs must be
// comparable so that "changed" is plain equality.
//
// Memo is not safe for concurrent use; it lives on the scheduler goroutine.
type Memo[S comparable, In comparable, Out any] struct {
	compute func(S, In) Out
	entries map[S]memoEntry[In, Out]

	// Bookkeeping
	hits   uint64
	misses uint64
}

type memoEntry[In comparable, Out any] struct {
	in  In
	out Out
}

func NewMemo[S comparable, In comparable, Out any](compute func(S, In) Out) *Memo[S, In, Out] {
	return &Memo[S, In, Out]{
		compute: compute,
		entries: make(map[S]memoEntry[In, Out]),
	}
}

// Get returns the value for slot, recomputing it if in changed.
func (m *Memo[S, In, Out]) Get(slot S, in In) Out {
	if e, ok := m.entries[slot]; ok && e.in == in {
		m.hits++
		return e.out
	}
	m.misses++
	out := m.compute(slot, in)
	m.entries[slot] = memoEntry[In, Out]{in: in, out: out}
	return out
}

// Forget drops a slot, e.g. when its row leaves the grid.
func (m *Memo[S, In, Out]) Forget(slot S) {
	delete(m.entries, slot)
}

func (m *Memo[S, In, Out]) Len() int {
	return len(m.entries)
}

// Stats returns cache hits and recomputations since creation.
func (m *Memo[S, In, Out]) Stats() (hits, misses uint64) {
	return m.hits, m.misses
}
