// Package linesegment provides the LineSegment type and the line segment
// intersection algorithms of the mapoverlay library.
//
// # Overview
//
// A [LineSegment] is the unordered pair of its two endpoints together with
// its supporting [Line]. Segments expose the predicates the sweep-line
// algorithm is built from: containment of a point, collinearity, shared
// endpoints and pairwise intersection.
//
// # Intersection Algorithms
//
// Two methods find all intersections among a set of segments:
//
//   - [NaiveIntersection]: the O(n²) brute-force reference that checks every
//     pair. Robust and simple; used to validate the sweep line in tests.
//   - [SweepLineIntersection]: the Bentley-Ottmann sweep-line algorithm,
//     whose status is fully re-sorted on every insertion, so an event costs
//     O(s log s) for s segments on the sweep line. A horizontal sweep line
//     moves from the top of the plane
//     to the bottom, maintaining the set of segments it currently crosses in
//     a status structure and the pending event points in an ordered queue.
//     Besides the intersection points it reports, for every segment, the
//     ordered list of points at which the segment is subdivided, which is
//     what the overlay construction consumes.
//
// Collinear segments that do not share an endpoint are not supported:
// [LineSegment.Intersection] and [NaiveIntersection] reject every such pair
// with [CollinearityError], and the sweep line rejects such pairs when they
// overlap. The single exception is a pair of collinear horizontal segments
// overlapping on a nonzero interval, which the sweep line resolves into the
// two breakpoints of the overlap.
package linesegment

import (
	"fmt"

	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/numeric"
	"github.com/mcorte/mapoverlay/point"
)

// LineSegment represents a line segment in 2D space, defined by two distinct
// endpoints and an optional external identifier.
type LineSegment struct {
	p1, p2 point.Point
	id     string
	line   Line
}

// New creates a new LineSegment from the endpoint coordinates.
func New(x1, y1, x2, y2 float64) LineSegment {
	return NewFromPoints(point.New(x1, y1), point.New(x2, y2))
}

// NewFromPoints creates a new LineSegment between p1 and p2.
//
// Producers must not construct degenerate (zero-length) segments; the
// loaders in the geodata package silently discard them.
func NewFromPoints(p1, p2 point.Point) LineSegment {
	return LineSegment{p1: p1, p2: p2, line: LineFromPoints(p1, p2)}
}

// NewWithID creates a new LineSegment between p1 and p2 carrying an external
// identifier. The overlay tags segments with the half-edge they were
// extracted from.
func NewWithID(id string, p1, p2 point.Point) LineSegment {
	return LineSegment{p1: p1, p2: p2, id: id, line: LineFromPoints(p1, p2)}
}

// P1 returns the first endpoint.
func (l LineSegment) P1() point.Point { return l.p1 }

// P2 returns the second endpoint.
func (l LineSegment) P2() point.Point { return l.p2 }

// ID returns the external identifier, or the empty string if none was set.
func (l LineSegment) ID() string { return l.id }

// Line returns the supporting line of the segment.
func (l LineSegment) Line() Line { return l.line }

// String returns a string representation of the segment in the form
// "[(x1, y1), (x2, y2)]".
func (l LineSegment) String() string {
	return fmt.Sprintf("[%s, %s]", l.p1, l.p2)
}

// IsVertical reports whether the segment is vertical.
func (l LineSegment) IsVertical() bool {
	return l.line.IsVertical()
}

// IsHorizontal reports whether the two endpoints share their y coordinate
// within epsilon.
func (l LineSegment) IsHorizontal() bool {
	return numeric.Equals(l.p1.Y(), l.p2.Y(), mapoverlay.Epsilon())
}

// Eq reports whether l and other have equal endpoint sets, in either order.
func (l LineSegment) Eq(other LineSegment) bool {
	return (l.p1.Eq(other.p1) && l.p2.Eq(other.p2)) ||
		(l.p1.Eq(other.p2) && l.p2.Eq(other.p1))
}

// OrderByY returns the endpoints ordered by y descending: the upper endpoint
// first. Ties on y are broken by the smaller x first.
func (l LineSegment) OrderByY() (upper, lower point.Point) {
	switch {
	case l.p1.Y() > l.p2.Y():
		return l.p1, l.p2
	case l.p1.Y() < l.p2.Y():
		return l.p2, l.p1
	case l.p1.X() < l.p2.X():
		return l.p1, l.p2
	default:
		return l.p2, l.p1
	}
}

// OrderByX returns the endpoints ordered by x ascending: the left endpoint
// first. Ties on x are broken by the smaller y first.
func (l LineSegment) OrderByX() (left, right point.Point) {
	switch {
	case l.p1.X() < l.p2.X():
		return l.p1, l.p2
	case l.p1.X() > l.p2.X():
		return l.p2, l.p1
	case l.p1.Y() < l.p2.Y():
		return l.p1, l.p2
	default:
		return l.p2, l.p1
	}
}

// ContainsPoint reports whether p lies on the closed segment. The test is a
// cross-product check against the supporting line within epsilon, followed by
// a dot-product check against the squared segment length.
func (l LineSegment) ContainsPoint(p point.Point) bool {
	if p.Eq(l.p1) || p.Eq(l.p2) {
		return true
	}

	eps := mapoverlay.Epsilon()
	cross := (p.Y()-l.p1.Y())*(l.p2.X()-l.p1.X()) - (p.X()-l.p1.X())*(l.p2.Y()-l.p1.Y())
	if cross > eps || cross < -eps {
		return false
	}

	dot := (p.X()-l.p1.X())*(l.p2.X()-l.p1.X()) + (p.Y()-l.p1.Y())*(l.p2.Y()-l.p1.Y())
	if dot < 0 {
		return false
	}

	squaredLength := (l.p2.X()-l.p1.X())*(l.p2.X()-l.p1.X()) + (l.p2.Y()-l.p1.Y())*(l.p2.Y()-l.p1.Y())
	return dot <= squaredLength
}

// IsCollinear reports whether the supporting lines of l and other are
// collinear and the segments share at least one point (any endpoint of one
// lies on the other).
func (l LineSegment) IsCollinear(other LineSegment) bool {
	if !l.line.Collinear(other.line) {
		return false
	}
	return l.ContainsPoint(other.p1) || l.ContainsPoint(other.p2) ||
		other.ContainsPoint(l.p1) || other.ContainsPoint(l.p2)
}

// SharedEndpoint returns the endpoint the two segments have in common, if
// any.
func (l LineSegment) SharedEndpoint(other LineSegment) (point.Point, bool) {
	if l.p1.Eq(other.p1) || l.p1.Eq(other.p2) {
		return l.p1, true
	}
	if l.p2.Eq(other.p1) || l.p2.Eq(other.p2) {
		return l.p2, true
	}
	return point.Point{}, false
}

// Intersection returns the single point at which l and other intersect.
//
// The second return value is false when the segments do not intersect. For
// collinear segments sharing exactly one endpoint, that endpoint is the
// intersection. Collinear segments without a shared endpoint are rejected
// with [CollinearityError].
func (l LineSegment) Intersection(other LineSegment) (point.Point, bool, error) {
	if l.line.Collinear(other.line) {
		if p, ok := l.SharedEndpoint(other); ok {
			return p, true, nil
		}
		return point.Point{}, false, CollinearityError{A: l, B: other}
	}
	if l.line.Parallel(other.line) {
		return point.Point{}, false, nil
	}
	p, ok := l.line.Intersection(other.line)
	if !ok {
		return point.Point{}, false, nil
	}
	if l.ContainsPoint(p) && other.ContainsPoint(p) {
		return p, true, nil
	}
	return point.Point{}, false, nil
}

// IntersectionWithLine returns the point at which the segment's supporting
// line crosses ln. The second return value is false when the two lines are
// parallel. Containment within the segment bounds is not checked; the status
// structure relies on the supporting line alone.
func (l LineSegment) IntersectionWithLine(ln Line) (point.Point, bool) {
	return l.line.Intersection(ln)
}

// SegmentKey is the canonical, comparable form of a segment: the endpoint
// keys in (upper, lower) order. Two segments with equal endpoint sets map to
// the same key.
type SegmentKey struct {
	Upper point.Key
	Lower point.Key
}

// Key returns the canonical map key for the segment.
func (l LineSegment) Key() SegmentKey {
	upper, lower := l.OrderByY()
	return SegmentKey{Upper: upper.Key(), Lower: lower.Key()}
}

// compareSegmentKeys imposes a total order on segment keys, used only as a
// deterministic tie-break inside the status structure.
func compareSegmentKeys(a, b SegmentKey) int {
	pairs := [4][2]float64{
		{a.Upper.X, b.Upper.X},
		{a.Upper.Y, b.Upper.Y},
		{a.Lower.X, b.Lower.X},
		{a.Lower.Y, b.Lower.Y},
	}
	for _, pair := range pairs {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}
