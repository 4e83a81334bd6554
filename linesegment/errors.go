package linesegment

import (
	"errors"
	"fmt"
)

// CollinearityError reports that two segments are collinear without sharing
// an endpoint, a configuration the intersection algorithms do not support.
type CollinearityError struct {
	A, B LineSegment
}

func (e CollinearityError) Error() string {
	return fmt.Sprintf("collinear segments without a shared endpoint: %s and %s", e.A, e.B)
}

// ErrNotRun is returned by the result accessors of [SweepLine] before Run has
// executed.
var ErrNotRun = errors.New("linesegment: sweep line algorithm has not been run yet")

// ErrNoSegments is returned by [SweepLineIntersection] when the input is
// empty: the sweep cannot be initialised without a topmost event point.
var ErrNoSegments = errors.New("linesegment: no segments to sweep")
