package view

import (
	"testing"
	"time"

	"blotter/internal/highlight"
	"blotter/internal/row"
	"blotter/internal/vdom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Setup & Helpers --------------------------------------------------------

var t0 = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

func testModel() row.Row {
	return row.Row{
		Symbol:   "MSFT",
		Edge:     0.5,
		MaxEdge:  1.5,
		Trader:   "bkent",
		BidSize:  100,
		Bid:      410.25,
		Ask:      410.5,
		AskSize:  300,
		Position: 25,
		LastFill: t0,
	}
}

func testInput(mode row.Mode) Input {
	return Input{
		Model:      testModel(),
		Mode:       mode,
		SortColumn: "bid",
		Now:        t0.Add(3 * time.Second),
	}
}

func cellByID(t *testing.T, tree *vdom.Node, id string) *vdom.Node {
	t.Helper()
	n, ok := tree.ByID(id)
	require.True(t, ok, "no node %q", id)
	return n
}

func inputs(tree *vdom.Node) []*vdom.Node {
	return tree.Find(func(n *vdom.Node) bool { return n.Tag == "input" })
}

// --- Tests ------------------------------------------------------------------

func TestRow_CellsInColumnOrder(t *testing.T) {
	tree := Row(testInput(row.Unfocused))
	require.Equal(t, "tr", tree.Tag)

	cols := row.Columns().Columns()
	require.Len(t, tree.Children, len(cols))
	for i, col := range cols {
		td := tree.Children[i]
		assert.Equal(t, "td", td.Tag)
		assert.Equal(t, col.Name, td.ID)
		assert.Equal(t, col.Get(testModel()), td.InnerText())
	}
	assert.Empty(t, inputs(tree))
}

func TestRow_EditingInputs(t *testing.T) {
	for _, mode := range []row.Mode{row.Unfocused, row.Focused} {
		assert.Empty(t, inputs(Row(testInput(mode))), mode.String())
	}

	tree := Row(testInput(row.Editing))
	var ids []string
	for _, in := range inputs(tree) {
		ids = append(ids, in.ID)
	}
	assert.Equal(t, []string{"edge-input", "max_edge-input", "trader-input"}, ids)
	assert.Equal(t, "0.5", cellByID(t, tree, "edge-input").Value)
	assert.Equal(t, "bkent", cellByID(t, tree, "trader-input").Value)

	// Read-only fields stay text.
	assert.Equal(t, "410.25", cellByID(t, tree, "bid").InnerText())
	assert.Empty(t, cellByID(t, tree, "bid").Children[0].Tag)
}

func TestRow_FocusMarker(t *testing.T) {
	marked := func(tree *vdom.Node) []*vdom.Node {
		return tree.Find(func(n *vdom.Node) bool { return n.HasClass(ClassFocusMe) })
	}

	tree := Row(testInput(row.Editing))
	focus := marked(tree)
	require.Len(t, focus, 1)
	assert.Equal(t, "edge-input", focus[0].ID)

	assert.Empty(t, marked(Row(testInput(row.Focused))))
	assert.Empty(t, marked(Row(testInput(row.Unfocused))))
}

func TestRow_SortMarker(t *testing.T) {
	tree := Row(testInput(row.Unfocused))
	assert.True(t, cellByID(t, tree, "bid").HasClass(ClassSorted))
	assert.False(t, cellByID(t, tree, "ask").HasClass(ClassSorted))

	// Suppressed while focused or editing.
	for _, mode := range []row.Mode{row.Focused, row.Editing} {
		tree = Row(testInput(mode))
		assert.False(t, cellByID(t, tree, "bid").HasClass(ClassSorted), mode.String())
	}

	in := testInput(row.Unfocused)
	in.SortColumn = ""
	sorted := Row(in).Find(func(n *vdom.Node) bool { return n.HasClass(ClassSorted) })
	assert.Empty(t, sorted)
}

func TestRow_ModeClass(t *testing.T) {
	assert.Empty(t, Row(testInput(row.Unfocused)).Classes)
	assert.Equal(t, []string{ClassFocused}, Row(testInput(row.Focused)).Classes)
	assert.Equal(t, []string{ClassEditing}, Row(testInput(row.Editing)).Classes)
}

func TestRow_PositionHighlight(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    []string
	}{
		{0, []string{"new"}},
		{1500 * time.Millisecond, []string{"fading"}},
		{3 * time.Second, nil},
	}
	for _, c := range cases {
		in := testInput(row.Unfocused)
		in.SortColumn = "position"
		in.Now = t0.Add(c.elapsed)

		pos := cellByID(t, Row(in), "position")
		assert.True(t, pos.HasClass(ClassSorted), "independent of the sort marker")
		for _, class := range []string{"new", "fading"} {
			assert.Equal(t, len(c.want) > 0 && c.want[0] == class, pos.HasClass(class), c.elapsed)
		}

		// Only the position cell is highlighted.
		bid := cellByID(t, Row(in), "bid")
		assert.False(t, bid.HasClass("new") || bid.HasClass("fading"))
	}
}

func TestRow_Callbacks(t *testing.T) {
	focused := 0
	var edits [][2]string

	in := testInput(row.Editing)
	in.FocusMe = func() { focused++ }
	in.RememberEdit = func(name, raw string) { edits = append(edits, [2]string{name, raw}) }

	tree := Row(in)
	tree.OnClick()
	assert.Equal(t, 1, focused)

	cellByID(t, tree, "edge-input").OnInput("0.05")
	cellByID(t, tree, "trader-input").OnInput("jpham")
	assert.Equal(t, [][2]string{{"edge", "0.05"}, {"trader", "jpham"}}, edits)
}

func TestHeader(t *testing.T) {
	var sortedBy string
	rows := Header("bid", true, func(name string) { sortedBy = name })
	require.Len(t, rows, 2)

	groups, names := rows[0], rows[1]
	require.Len(t, groups.Children, row.Columns().Len())
	require.Len(t, names.Children, row.Columns().Len())

	assert.Equal(t, "bid", groups.Children[4].InnerText())
	assert.Equal(t, "", groups.Children[5].InnerText())
	assert.Equal(t, "ask", groups.Children[6].InnerText())

	bid := cellByID(t, names, "header-bid")
	assert.Equal(t, "bid"+arrowDown, bid.InnerText())
	assert.True(t, bid.HasClass(ClassSorted))

	cellByID(t, names, "header-symbol").OnClick()
	assert.Equal(t, "symbol", sortedBy)

	asc := Header("bid", false, nil)
	assert.Equal(t, "bid"+arrowUp, cellByID(t, asc[1], "header-bid").InnerText())
}

func TestCache(t *testing.T) {
	cache := NewCache[string]()
	in := testInput(row.Unfocused)
	in.Now = t0

	first := cache.Row("a", in)

	// Same inputs and same highlight class: no rebuild.
	in.Now = t0.Add(500 * time.Millisecond)
	assert.Same(t, first, cache.Row("a", in))

	// The class moving rebuilds.
	in.Now = t0.Add(1200 * time.Millisecond)
	fading := cache.Row("a", in)
	assert.NotSame(t, first, fading)
	assert.True(t, cellByID(t, fading, "position").HasClass(highlight.Fading.String()))

	// So does a model or mode change.
	in.Model.Bid = 411
	assert.NotSame(t, fading, cache.Row("a", in))
	in.Mode = row.Focused
	focused := cache.Row("a", in)
	assert.Equal(t, []string{ClassFocused}, focused.Classes)

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(4), misses)

	cache.Forget("a")
	assert.NotSame(t, focused, cache.Row("a", in))
}

func TestRow_OverflowingEditStillRenders(t *testing.T) {
	in := testInput(row.Editing)
	in.Model = row.ApplyEdit(in.Model, "edge", "1e400")

	var tree *vdom.Node
	require.NotPanics(t, func() { tree = Row(in) })
	assert.Equal(t, "0.5", cellByID(t, tree, "edge-input").Value)
}
