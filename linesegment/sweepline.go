package linesegment

import (
	"sort"

	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/numeric"
	"github.com/mcorte/mapoverlay/point"
)

// Intersection is a single reported intersection: a point at which two or
// more segments of the input coincide, together with the segments meeting
// there.
type Intersection struct {
	Point    point.Point
	Segments []LineSegment
}

// SplitSegment is the subdivision record of one input segment: the points at
// which the segment is split, ordered by y descending (ties x ascending).
// The segment's own endpoints appear in the list when they are themselves
// shared with other segments, and always for a segment in a collinear
// horizontal overlap.
type SplitSegment struct {
	Segment LineSegment
	Points  []point.Point
}

// Result carries the two outputs of the sweep-line algorithm, keyed by the
// canonical forms of points and segments.
type Result struct {
	Intersections map[point.Key]*Intersection
	SplitSegments map[SegmentKey]*SplitSegment
}

func newResult() Result {
	return Result{
		Intersections: make(map[point.Key]*Intersection),
		SplitSegments: make(map[SegmentKey]*SplitSegment),
	}
}

func (r Result) addIntersection(p point.Point, segments []LineSegment) {
	key := p.Key()
	entry, ok := r.Intersections[key]
	if !ok {
		r.Intersections[key] = &Intersection{Point: p, Segments: mergeSegments(nil, segments)}
		return
	}
	entry.Segments = mergeSegments(entry.Segments, segments)
}

func (r Result) addSplitPoints(seg LineSegment, points ...point.Point) {
	key := seg.Key()
	entry, ok := r.SplitSegments[key]
	if !ok {
		entry = &SplitSegment{Segment: seg}
		r.SplitSegments[key] = entry
	}
	for _, p := range points {
		pKey := p.Key()
		present := false
		for _, existing := range entry.Points {
			if existing.Key() == pKey {
				present = true
				break
			}
		}
		if !present {
			entry.Points = append(entry.Points, p)
		}
	}
}

// sortSplitPoints puts every subdivision list in sweep order: y descending,
// ties broken by x ascending.
func (r Result) sortSplitPoints() {
	for _, entry := range r.SplitSegments {
		sort.SliceStable(entry.Points, func(i, j int) bool {
			a, b := entry.Points[i], entry.Points[j]
			eps := mapoverlay.Epsilon()
			if numeric.Equals(a.Y(), b.Y(), eps) {
				return a.X() < b.X()
			}
			return a.Y() > b.Y()
		})
	}
}

// SweepLineIntersection finds all intersection points of a set of line
// segments with the Bentley-Ottmann sweep-line algorithm. Every insertion
// into the status rescores and re-sorts all s segments currently on the
// sweep line, so an event costs O(s log s) rather than O(log n).
//
// A horizontal sweep line moves from the topmost event point to the
// bottommost. At each event point p the algorithm classifies the segments
// attached to the event or currently on the sweep line into U(p) (upper
// endpoint at p), L(p) (lower endpoint at p) and C(p) (properly containing
// p). Whenever their union holds two or more segments, p is reported as an
// intersection of that union and recorded as a subdivision point of each of
// its members.
//
// Collinear segments are not supported unless they share an endpoint, with
// one exception: two collinear horizontal segments overlapping on a nonzero
// interval are resolved into intersections at the two breakpoints of the
// overlap, and each of the two segments is subdivided at those breakpoints
// and its own endpoints. Any other pair of collinear segments that overlap
// without sharing an endpoint returns a [CollinearityError]; collinear
// segments that do not touch are not rejected and produce no intersection.
// An empty input returns [ErrNoSegments].
func SweepLineIntersection(segments []LineSegment) (Result, error) {
	if len(segments) == 0 {
		return Result{}, ErrNoSegments
	}

	eps := mapoverlay.Epsilon()
	queue := newEventQueue(segments)
	status := newStatusStructure()
	result := newResult()

	for queue.Len() > 0 {
		event, ok := queue.Pop()
		if !ok {
			break
		}
		p := event.point
		sweep := HorizontalLine(p.Y())

		// U(p): segments attached to the event whose upper endpoint is p.
		upper := make([]LineSegment, 0, len(event.segments))
		for _, seg := range event.segments {
			if u, _ := seg.OrderByY(); u.Eq(p) {
				upper = append(upper, seg)
			}
		}

		// L(p) and C(p): segments on the sweep line whose lower endpoint is
		// p, respectively properly containing p.
		var lower, contained []LineSegment
		for _, seg := range status.segments() {
			if !seg.ContainsPoint(p) {
				continue
			}
			if _, lo := seg.OrderByY(); lo.Eq(p) {
				lower = append(lower, seg)
			} else if u, _ := seg.OrderByY(); !u.Eq(p) {
				contained = append(contained, seg)
			}
		}

		all := mergeSegments(mergeSegments(upper, lower), contained)

		// Collinear members of the union are only supported when both are
		// horizontal (resolved into the overlap breakpoints) or when they
		// merely share an endpoint.
		for i := 0; i < len(all); i++ {
			for j := i + 1; j < len(all); j++ {
				a, b := all[i], all[j]
				if !a.IsCollinear(b) {
					continue
				}
				if a.IsHorizontal() && b.IsHorizontal() {
					recordHorizontalOverlap(result, a, b)
					continue
				}
				if _, shared := a.SharedEndpoint(b); !shared {
					return Result{}, CollinearityError{A: a, B: b}
				}
			}
		}

		if len(all) > 1 {
			result.addIntersection(p, all)
			for _, seg := range all {
				result.addSplitPoints(seg, p)
			}
		}

		status.remove(mergeSegments(contained, lower))
		reinserted := mergeSegments(upper, contained)
		status.add(reinserted, LineWithOffset(sweep, -eps))

		if len(reinserted) == 0 {
			// Only endings at p: its former neighbours are now adjacent.
			left, right, found := status.neighbours(p)
			if found {
				if err := findNewEvent(queue, &left, &right, sweep, p); err != nil {
					return Result{}, err
				}
			}
		} else {
			leftNb, leftmost, rightmost, rightNb := status.flanks(reinserted)
			if err := findNewEvent(queue, leftNb, leftmost, sweep, p); err != nil {
				return Result{}, err
			}
			if err := findNewEvent(queue, rightmost, rightNb, sweep, p); err != nil {
				return Result{}, err
			}
		}
	}

	result.sortSplitPoints()
	return result, nil
}

// recordHorizontalOverlap resolves two collinear horizontal segments into the
// two breakpoints of their common interval: both breakpoints are reported as
// intersections of the pair, and each segment is subdivided at the
// breakpoints and at its own endpoints.
func recordHorizontalOverlap(result Result, a, b LineSegment) {
	aLeft, aRight := a.OrderByX()
	bLeft, bRight := b.OrderByX()

	left := aLeft
	if bLeft.X() > aLeft.X() {
		left = bLeft
	}
	right := aRight
	if bRight.X() < aRight.X() {
		right = bRight
	}

	pair := []LineSegment{a, b}
	result.addIntersection(left, pair)
	result.addIntersection(right, pair)
	result.addSplitPoints(a, aLeft, aRight, left, right)
	result.addSplitPoints(b, bLeft, bRight, left, right)
}

// findNewEvent tests two segments that have just become adjacent on the
// sweep line. Their intersection q is enqueued as a future event iff it lies
// below the sweep line, or on it and strictly to the right of the current
// event point p. A CollinearityError from the intersection primitive
// propagates.
func findNewEvent(queue *eventQueue, left, right *LineSegment, sweep Line, p point.Point) error {
	if left == nil || right == nil {
		return nil
	}
	q, ok, err := left.Intersection(*right)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	eps := mapoverlay.Epsilon()
	if q.Y() < sweep.Q || (numeric.Equals(q.Y(), sweep.Q, eps) && q.X() > p.X()) {
		queue.upsertIntersection(q, *left, *right)
	}
	return nil
}
