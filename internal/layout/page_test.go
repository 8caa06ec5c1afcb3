package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfblocks/rtree"
)

func ids(blocks []Block) []uint32 {
	var out []uint32
	for _, b := range blocks {
		out = append(out, b.ID)
	}
	return out
}

func newTestPage(t *testing.T, cfg Config) *Page {
	t.Helper()
	p, err := NewPage(1, cfg)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	for _, b := range sampleBlocks() {
		if b.Page == 1 {
			require.NoError(t, p.Add(b))
		}
	}
	return p
}

func TestPageQueryModes(t *testing.T) {
	p := newTestPage(t, DefaultConfig())
	require.Equal(t, 3, p.Len())

	got, err := p.Query(Query{Mode: ModeIntersects, BBox: rtree.BBox{MinX: 20, MinY: 0, MaxX: 40, MaxY: 12}, Order: rtree.OrderHorizontal})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, ids(got))

	got, err = p.Query(Query{Mode: ModeContains, BBox: rtree.BBox{MinX: 0, MinY: 8, MaxX: 30, MaxY: 40}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, ids(got))

	got, err = p.Query(Query{Mode: ModeContaining, BBox: rtree.Point(40, 20)})
	require.NoError(t, err)
	assert.Equal(t, []uint32{3}, ids(got))

	// Half of block 2 lies in the region, none of the title does.
	got, err = p.Query(Query{Mode: ModeOverlapping, BBox: rtree.BBox{MinX: 0, MinY: 5, MaxX: 25, MaxY: 20}, MinRatio: 0.5})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, ids(got))

	got, err = p.Query(Query{Mode: ModeOverlapping, BBox: rtree.BBox{MinX: 0, MinY: 5, MaxX: 25, MaxY: 20}, MinRatio: 0.6})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.Query(Query{Mode: Mode(9), BBox: rtree.Point(0, 0)})
	assert.ErrorIs(t, err, ErrUnknownMode)
	_, err = p.Query(Query{BBox: rtree.BBox{MinX: 1, MaxX: 0}})
	assert.ErrorIs(t, err, rtree.ErrInvalidRect)
}

func TestPageCacheInvalidation(t *testing.T) {
	for _, cacheSize := range []int64{0, 16} {
		cfg := DefaultConfig()
		cfg.CacheSize = cacheSize
		p := newTestPage(t, cfg)

		q := Query{Mode: ModeIntersects, BBox: rtree.BBox{MinX: 0, MinY: 0, MaxX: 60, MaxY: 60}}
		got, err := p.Query(q)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2, 3}, ids(got))

		require.NoError(t, p.Add(Block{ID: 9, Page: 1, BBox: rtree.BBox{MinX: 0, MinY: 40, MaxX: 10, MaxY: 50}}))
		got, err = p.Query(q)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2, 3, 9}, ids(got), "cache size %d", cacheSize)

		require.True(t, p.Remove(2))
		assert.False(t, p.Remove(2))
		got, err = p.Query(q)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 3, 9}, ids(got), "cache size %d", cacheSize)
	}
}

func TestPageDuplicateBlock(t *testing.T) {
	p := newTestPage(t, DefaultConfig())
	err := p.Add(Block{ID: 2, Page: 1, BBox: rtree.Point(1, 1)})
	var dup *DuplicateBlockError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint32(2), dup.ID)
	assert.Equal(t, 3, p.Len())

	err = p.Add(Block{ID: 10, BBox: rtree.BBox{MinX: 2, MaxX: 1}})
	assert.ErrorIs(t, err, rtree.ErrInvalidRect)
	_, ok := p.Block(10)
	assert.False(t, ok)
}

func TestPageNearest(t *testing.T) {
	p := newTestPage(t, DefaultConfig())

	got, err := p.Nearest(30, 20, 2, -1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, ids(got))

	got, err = p.Nearest(30, 40, 3, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.Nearest(0, 0, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestPageOrderedAndMargin(t *testing.T) {
	p, err := NewPage(3, DefaultConfig())
	require.NoError(t, err)
	defer p.Close()

	_, ok := p.Margin()
	assert.False(t, ok)

	blocks := sampleBlocks()
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, p.Add(blocks[i]))
	}
	assert.Equal(t, []uint32{3, 1, 2}, ids(p.Ordered(rtree.OrderInsertion)))
	assert.Equal(t, []uint32{1, 2, 3}, ids(p.Ordered(rtree.OrderHorizontal)))
	assert.Equal(t, []uint32{1, 3, 2}, ids(p.Ordered(rtree.OrderVertical)))

	margin, ok := p.Margin()
	require.True(t, ok)
	assert.Equal(t, rtree.BBox{MinX: 0, MinY: 0, MaxX: 60, MaxY: 35}, margin)
	assert.Equal(t, 1, p.Height())
}

func TestPageSelect(t *testing.T) {
	p := newTestPage(t, DefaultConfig())

	sel, err := p.Select(
		Query{Mode: ModeContaining, BBox: rtree.Point(40, 20)},
		Query{Mode: ModeContaining, BBox: rtree.Point(1, 1)},
		Query{Mode: ModeContaining, BBox: rtree.Point(50, 2)},
	)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, sel.IDs())
	assert.Equal(t, []uint32{1, 3}, ids(p.Blocks(sel, rtree.OrderVertical)))

	left, err := p.Select(Query{Mode: ModeIntersects, BBox: rtree.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 40}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, left.IDs())

	left.Subtract(sel)
	assert.Equal(t, []uint32{2}, left.IDs())

	_, err = p.Select(Query{Mode: Mode(-1), BBox: rtree.Point(0, 0)})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeIntersects, ModeContains, ModeContaining, ModeOverlapping} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("within")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
