package linesegment

import (
	"testing"

	"github.com/mcorte/mapoverlay/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_PopOrder(t *testing.T) {
	// Events come back topmost first, ties left to right.
	segments := []LineSegment{
		New(0, 0, 10, 10),
		New(0, 10, 10, 0),
	}
	q := newEventQueue(segments)

	var popped []point.Point
	for q.Len() > 0 {
		ev, ok := q.Pop()
		require.True(t, ok)
		popped = append(popped, ev.point)
	}

	expected := []point.Point{
		point.New(0, 10),
		point.New(10, 10),
		point.New(0, 0),
		point.New(10, 0),
	}
	require.Len(t, popped, len(expected))
	for i := range expected {
		assert.True(t, popped[i].Eq(expected[i]), "event %d: got %s, want %s", i, popped[i], expected[i])
	}
}

func TestEventQueue_MergesCoincidentEvents(t *testing.T) {
	// Two segments sharing an endpoint produce a single event there,
	// promoted to INTERSECTION with the union of their segment lists.
	a := New(0, 0, 1, 1)
	b := New(0, 0, 1, -1)
	q := newEventQueue([]LineSegment{a, b})

	// (1,1) start of a, (0,0) merged, (1,-1) end of b.
	assert.Equal(t, 3, q.Len())

	ev, ok := q.Pop()
	require.True(t, ok)
	assert.True(t, ev.point.Eq(point.New(1, 1)))
	assert.Equal(t, EventStart, ev.kind)

	ev, ok = q.Pop()
	require.True(t, ok)
	assert.True(t, ev.point.Eq(point.New(0, 0)))
	assert.Equal(t, EventIntersection, ev.kind)
	assert.Len(t, ev.segments, 2)
}

func TestEventQueue_UpsertIntersection(t *testing.T) {
	a := New(0, 0, 10, 10)
	b := New(0, 10, 10, 0)
	c := New(5, 0, 5, 10)
	q := newEventQueue(nil)

	q.upsertIntersection(point.New(5, 5), a, b)
	q.upsertIntersection(point.New(5, 5), b, c)

	require.Equal(t, 1, q.Len())
	ev, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, EventIntersection, ev.kind)
	assert.Len(t, ev.segments, 3)
}
