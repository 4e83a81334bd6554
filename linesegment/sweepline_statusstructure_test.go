package linesegment

import (
	"testing"

	"github.com/mcorte/mapoverlay/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOrder(s *statusStructure) []string {
	var order []string
	for _, seg := range s.segments() {
		order = append(order, seg.String())
	}
	return order
}

func TestStatusStructure_AddOrdersByReferenceLine(t *testing.T) {
	// On the reference line y=3 the ascending diagonal crosses at x=3, the
	// vertical at x=5 and the descending diagonal at x=7.
	up := New(0, 0, 10, 10)    // x = y
	down := New(0, 10, 10, 0)  // x = 10 - y
	vertical := New(5, 0, 5, 10)

	s := newStatusStructure()
	s.add([]LineSegment{down, vertical, up}, HorizontalLine(3))

	assert.Equal(t,
		[]string{up.String(), vertical.String(), down.String()},
		statusOrder(s))
}

func TestStatusStructure_RemoveAndLen(t *testing.T) {
	a := New(0, 0, 0, 10)
	b := New(5, 0, 5, 10)
	s := newStatusStructure()
	s.add([]LineSegment{a, b}, HorizontalLine(5))
	require.Equal(t, 2, s.Len())

	s.remove([]LineSegment{a})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, []string{b.String()}, statusOrder(s))

	// Removing an absent segment is a no-op.
	s.remove([]LineSegment{a})
	assert.Equal(t, 1, s.Len())
}

func TestStatusStructure_HorizontalPlacedAfterBlock(t *testing.T) {
	vertical := New(3, 0, 3, 10)
	horizontal := New(0, 5, 10, 5)

	s := newStatusStructure()
	s.add([]LineSegment{vertical, horizontal}, HorizontalLine(5))

	// The horizontal segment goes to the right end of the inserted block.
	assert.Equal(t,
		[]string{vertical.String(), horizontal.String()},
		statusOrder(s))
}

func TestStatusStructure_LoneHorizontalScoredLeftOfStart(t *testing.T) {
	horizontal := New(2, 5, 10, 5)
	other := New(4, 0, 4, 10)

	s := newStatusStructure()
	s.add([]LineSegment{horizontal}, HorizontalLine(5))
	s.add([]LineSegment{other}, HorizontalLine(5))

	// Scored at start.x - epsilon, the horizontal stays left of a later
	// vertical at x=4.
	assert.Equal(t,
		[]string{horizontal.String(), other.String()},
		statusOrder(s))
}

func TestStatusStructure_Neighbours(t *testing.T) {
	left := New(0, 0, 0, 10)
	mid := New(5, 0, 5, 10)
	right := New(9, 0, 9, 10)

	s := newStatusStructure()
	s.add([]LineSegment{left, mid, right}, HorizontalLine(5))

	l, r, ok := s.neighbours(point.New(2, 5))
	require.True(t, ok)
	assert.True(t, l.Eq(left))
	assert.True(t, r.Eq(mid))

	l, r, ok = s.neighbours(point.New(7, 5))
	require.True(t, ok)
	assert.True(t, l.Eq(mid))
	assert.True(t, r.Eq(right))

	_, _, ok = s.neighbours(point.New(20, 5))
	assert.False(t, ok)
}

func TestStatusStructure_Flanks(t *testing.T) {
	a := New(0, 0, 0, 10)
	b := New(3, 0, 3, 10)
	c := New(6, 0, 6, 10)
	d := New(9, 0, 9, 10)

	s := newStatusStructure()
	s.add([]LineSegment{a, b, c, d}, HorizontalLine(5))

	leftNb, leftmost, rightmost, rightNb := s.flanks([]LineSegment{b, c})
	require.NotNil(t, leftmost)
	require.NotNil(t, rightmost)
	require.NotNil(t, leftNb)
	require.NotNil(t, rightNb)
	assert.True(t, leftmost.Eq(b))
	assert.True(t, rightmost.Eq(c))
	assert.True(t, leftNb.Eq(a))
	assert.True(t, rightNb.Eq(d))

	leftNb, leftmost, rightmost, rightNb = s.flanks([]LineSegment{a})
	assert.Nil(t, leftNb)
	require.NotNil(t, leftmost)
	assert.True(t, leftmost.Eq(a))
	assert.True(t, rightmost.Eq(a))
	require.NotNil(t, rightNb)
	assert.True(t, rightNb.Eq(b))

	leftNb, leftmost, rightmost, rightNb = s.flanks(nil)
	assert.Nil(t, leftNb)
	assert.Nil(t, leftmost)
	assert.Nil(t, rightmost)
	assert.Nil(t, rightNb)
}
