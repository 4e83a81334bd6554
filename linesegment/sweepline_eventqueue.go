package linesegment

import (
	"fmt"
	"strings"

	"github.com/google/btree"
	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/numeric"
	"github.com/mcorte/mapoverlay/point"
)

// EventType classifies an event point of the sweep-line algorithm.
type EventType uint8

const (
	// EventStart marks the upper endpoint of a segment.
	EventStart EventType = iota

	// EventIntersection marks a point at which two or more segments meet.
	EventIntersection

	// EventEnd marks the lower endpoint of a segment.
	EventEnd
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventStart:
		return "START"
	case EventIntersection:
		return "INTERSECTION"
	case EventEnd:
		return "END"
	default:
		panic(fmt.Errorf("unsupported event type"))
	}
}

// eventPoint is an entry of the event queue: the point at which the sweep
// line must react, the kind of reaction, and the segments associated with the
// event (segments starting there for EventStart, ending there for EventEnd,
// crossing there for EventIntersection).
type eventPoint struct {
	kind     EventType
	point    point.Point
	segments []LineSegment
}

// String returns a human-readable representation of the event point.
func (e eventPoint) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("%s event at %s:", e.kind, e.point))
	for _, seg := range e.segments {
		builder.WriteString(" ")
		builder.WriteString(seg.String())
	}
	return builder.String()
}

// eventLess orders event points for the balanced tree backing the queue.
//
// The sweep processes events from top to bottom, breaking ties left to
// right, so "less" means "processed earlier": higher y first, then smaller x.
// Two events whose points are equal within epsilon compare equal, which makes
// the tree a set keyed by point coordinates and gives the queue its
// point-keyed search and replacement for free.
func eventLess(p, q eventPoint) bool {
	eps := mapoverlay.Epsilon()
	if numeric.Equals(p.point.Y(), q.point.Y(), eps) {
		if numeric.Equals(p.point.X(), q.point.X(), eps) {
			return false
		}
		return p.point.X() < q.point.X()
	}
	return p.point.Y() > q.point.Y()
}

// eventQueue is the ordered set of pending events, backed by a balanced
// B-tree ordered by eventLess.
type eventQueue struct {
	tree *btree.BTreeG[eventPoint]
}

// newEventQueue initialises the queue with a START event at the upper
// endpoint and an END event at the lower endpoint of every segment. When an
// insertion collides with an existing event at the same point, the old event
// is replaced by an INTERSECTION event carrying the merged segment list.
func newEventQueue(segments []LineSegment) *eventQueue {
	q := &eventQueue{tree: btree.NewG[eventPoint](2, eventLess)}
	for _, seg := range segments {
		upper, lower := seg.OrderByY()
		q.insertOrMerge(eventPoint{kind: EventStart, point: upper, segments: []LineSegment{seg}})
		q.insertOrMerge(eventPoint{kind: EventEnd, point: lower, segments: []LineSegment{seg}})
	}
	return q
}

// Len returns the number of pending events.
func (q *eventQueue) Len() int {
	return q.tree.Len()
}

// Pop removes and returns the next event to process: the topmost, leftmost
// pending point.
func (q *eventQueue) Pop() (eventPoint, bool) {
	return q.tree.DeleteMin()
}

// insertOrMerge adds ev to the queue. If an event already exists at the same
// point, the existing event is removed and re-inserted as an INTERSECTION
// event whose segment list is the union of both.
func (q *eventQueue) insertOrMerge(ev eventPoint) {
	existing, ok := q.tree.Get(ev)
	if ok {
		ev = eventPoint{
			kind:     EventIntersection,
			point:    existing.point,
			segments: mergeSegments(existing.segments, ev.segments),
		}
	}
	q.tree.ReplaceOrInsert(ev)
}

// upsertIntersection records a (possibly already known) intersection event at
// p involving the given segments.
func (q *eventQueue) upsertIntersection(p point.Point, segments ...LineSegment) {
	q.insertOrMerge(eventPoint{kind: EventIntersection, point: p, segments: segments})
}

// mergeSegments returns the union of the two segment lists, preserving the
// order of first appearance.
func mergeSegments(a, b []LineSegment) []LineSegment {
	merged := make([]LineSegment, 0, len(a)+len(b))
	seen := make(map[SegmentKey]bool, len(a)+len(b))
	for _, seg := range append(append([]LineSegment{}, a...), b...) {
		key := seg.Key()
		if !seen[key] {
			seen[key] = true
			merged = append(merged, seg)
		}
	}
	return merged
}
