package linesegment

import (
	"fmt"
	"math"

	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/numeric"
	"github.com/mcorte/mapoverlay/point"
)

// Line represents an infinite line in the plane in slope-intercept form.
// Non-vertical lines satisfy y = m*x + q. Vertical lines carry M = +Inf and
// Q = the x-intercept.
type Line struct {
	// M is the slope of the line, +Inf for vertical lines.
	M float64

	// Q is the y-intercept, or the x-intercept for vertical lines.
	Q float64
}

// LineFromPoints returns the supporting line through p1 and p2.
func LineFromPoints(p1, p2 point.Point) Line {
	if p1.X() == p2.X() {
		return Line{M: math.Inf(1), Q: p1.X()}
	}
	m := (p2.Y() - p1.Y()) / (p2.X() - p1.X())
	return Line{M: m, Q: p1.Y() - m*p1.X()}
}

// HorizontalLine returns the horizontal line y = q. The sweep-line algorithm
// uses it both as the sweep line itself and as the reference line slightly
// below the current event.
func HorizontalLine(q float64) Line {
	return Line{M: 0, Q: q}
}

// LineWithOffset returns a line parallel to l, shifted by offset along the
// y-axis (or the x-axis for vertical lines).
func LineWithOffset(l Line, offset float64) Line {
	return Line{M: l.M, Q: l.Q + offset}
}

// IsVertical reports whether the line is vertical.
func (l Line) IsVertical() bool {
	return math.IsInf(l.M, 1)
}

// IsHorizontal reports whether the slope is zero within epsilon.
func (l Line) IsHorizontal() bool {
	return !l.IsVertical() && math.Abs(l.M) < mapoverlay.Epsilon()
}

// Collinear reports whether l and o describe the same line: both slope and
// intercept agree within epsilon.
func (l Line) Collinear(o Line) bool {
	eps := mapoverlay.Epsilon()
	if l.IsVertical() || o.IsVertical() {
		return l.IsVertical() && o.IsVertical() && numeric.Equals(l.Q, o.Q, eps)
	}
	return numeric.Equals(l.M, o.M, eps) && numeric.Equals(l.Q, o.Q, eps)
}

// Parallel reports whether the two lines have the same direction, including
// the case where they are collinear.
func (l Line) Parallel(o Line) bool {
	if l.IsVertical() || o.IsVertical() {
		return l.IsVertical() && o.IsVertical()
	}
	return numeric.Equals(l.M, o.M, mapoverlay.Epsilon())
}

// Intersection returns the unique point where l and o cross. The second
// return value is false when the lines are parallel or collinear and no such
// point exists.
func (l Line) Intersection(o Line) (point.Point, bool) {
	if l.Parallel(o) {
		return point.Point{}, false
	}
	if l.IsVertical() {
		return point.New(l.Q, o.M*l.Q+o.Q), true
	}
	if o.IsVertical() {
		return point.New(o.Q, l.M*o.Q+l.Q), true
	}
	x := (o.Q - l.Q) / (l.M - o.M)
	return point.New(x, l.M*x+l.Q), true
}

// String returns a string representation of the line in the form "y = mx + q",
// or "x = q" for vertical lines.
func (l Line) String() string {
	if l.IsVertical() {
		return fmt.Sprintf("x = %v", l.Q)
	}
	return fmt.Sprintf("y = %vx + %v", l.M, l.Q)
}
