package view

import (
	"blotter/internal/highlight"
	"blotter/internal/incr"
	"blotter/internal/row"
	"blotter/internal/vdom"
)

// cacheKey holds the comparable inputs of a row view. The highlight class
// stands in for the time, so a row is only rebuilt when its class moves.
type cacheKey struct {
	model row.Row
	mode  row.Mode
	sort  string
	class highlight.Class
}

// Cache memoizes row trees per slot. Callbacks are captured whenever a tree
// is rebuilt, so they must stay valid for the slot's lifetime.
type Cache[S comparable] struct {
	memo  *incr.Memo[S, cacheKey, *vdom.Node]
	input map[S]Input
}

func NewCache[S comparable]() *Cache[S] {
	c := &Cache[S]{input: make(map[S]Input)}
	c.memo = incr.NewMemo(func(slot S, key cacheKey) *vdom.Node {
		return render(c.input[slot], key.class)
	})
	return c
}

// Row returns the tree for slot, rebuilding it only if its inputs changed.
func (c *Cache[S]) Row(slot S, in Input) *vdom.Node {
	c.input[slot] = in
	return c.memo.Get(slot, cacheKey{
		model: in.Model,
		mode:  in.Mode,
		sort:  in.SortColumn,
		class: highlight.At(in.Model.LastFill, in.Now),
	})
}

func (c *Cache[S]) Forget(slot S) {
	c.memo.Forget(slot)
	delete(c.input, slot)
}

func (c *Cache[S]) Stats() (hits, misses uint64) {
	return c.memo.Stats()
}
