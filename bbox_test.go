package rtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea(t *testing.T) {
	assert.Equal(t, 6.0, Area(BBox{0, 0, 2, 3}))
	assert.Equal(t, 0.0, Area(Point(4, 5)))
	assert.Equal(t, 0.0, Area(BBox{0, 1, 10, 1}))
}

func TestUnion(t *testing.T) {
	a := BBox{0, 0, 2, 2}
	b := BBox{1, -1, 3, 1}
	assert.Equal(t, BBox{0, -1, 3, 2}, Union(a, b))
	assert.Equal(t, Union(a, b), Union(b, a))
	assert.Equal(t, a, Union(a, a))

	assert.Equal(t, b, extend(BBox{}, false, b))
	assert.Equal(t, Union(a, b), extend(a, true, b))
}

func TestEnlargementProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		r1 := randomBox(rnd, 10, 5)
		r2 := randomBox(rnd, 10, 5)
		assert.Equal(t, 0.0, Enlargement(r1, r1))
		assert.GreaterOrEqual(t, Enlargement(r1, r2), 0.0)
		assert.InDelta(t, Area(Union(r1, r2))-Area(r1), Enlargement(r1, r2), 1e-9)
	}
	assert.Equal(t, 0.0, Enlargement(BBox{0, 0, 4, 4}, BBox{1, 1, 2, 2}))
	assert.Equal(t, 4.0, Enlargement(BBox{0, 0, 2, 2}, BBox{2, 0, 4, 2}))
}

func TestIntersects(t *testing.T) {
	a := BBox{0, 0, 2, 2}
	for _, tc := range []struct {
		name string
		b    BBox
		want bool
	}{
		{"overlapping", BBox{1, 1, 3, 3}, true},
		{"touching edge", BBox{2, 0, 4, 2}, true},
		{"touching corner", BBox{2, 2, 3, 3}, true},
		{"inside", BBox{0.5, 0.5, 1, 1}, true},
		{"point on boundary", Point(0, 1), true},
		{"disjoint x", BBox{2.1, 0, 3, 2}, false},
		{"disjoint y", BBox{0, -3, 2, -0.1}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Intersects(a, tc.b))
			assert.Equal(t, tc.want, Intersects(tc.b, a))
		})
	}
}

func TestContains(t *testing.T) {
	outer := BBox{0, 0, 4, 4}
	assert.True(t, Contains(outer, outer))
	assert.True(t, Contains(outer, BBox{1, 1, 2, 2}))
	assert.True(t, Contains(outer, BBox{0, 0, 4, 1}))
	assert.True(t, Contains(outer, Point(4, 4)))
	assert.False(t, Contains(outer, BBox{3, 3, 5, 4}))
	assert.False(t, Contains(BBox{1, 1, 2, 2}, outer))
}

func TestOverlapArea(t *testing.T) {
	assert.Equal(t, 1.0, OverlapArea(BBox{0, 0, 2, 2}, BBox{1, 1, 3, 3}))
	assert.Equal(t, 0.0, OverlapArea(BBox{0, 0, 2, 2}, BBox{2, 0, 3, 2}))
	assert.Equal(t, 0.25, overlapRatio(BBox{0, 0, 2, 2}, BBox{1, 1, 3, 3}))
	assert.Equal(t, 1.0, overlapRatio(Point(1, 1), BBox{0, 0, 2, 2}))
	assert.Equal(t, 0.0, overlapRatio(Point(5, 5), BBox{0, 0, 2, 2}))
}

func TestDistanceSquared(t *testing.T) {
	a := BBox{0, 0, 2, 2}
	assert.Equal(t, 0.0, DistanceSquared(a, BBox{1, 1, 3, 3}))
	assert.Equal(t, 0.0, DistanceSquared(a, Point(2, 2)))
	assert.Equal(t, 9.0, DistanceSquared(a, Point(5, 1)))
	assert.Equal(t, 9.0, DistanceSquared(Point(5, 1), a))
	assert.Equal(t, 2.0, DistanceSquared(a, Point(3, 3)))
	assert.Equal(t, 25.0, DistanceSquared(a, BBox{5, 6, 7, 8}))
}

func TestValidate(t *testing.T) {
	require.NoError(t, BBox{0, 0, 1, 1}.Validate())
	require.NoError(t, Point(3, 3).Validate())

	for _, bb := range []BBox{
		{math.NaN(), 0, 1, 1},
		{0, 0, math.Inf(1), 1},
		{0, math.Inf(-1), 1, 1},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
	} {
		err := bb.Validate()
		require.Error(t, err, "%v", bb)
		assert.ErrorIs(t, err, ErrInvalidRect)
	}
}
