package linesegment

import "github.com/mcorte/mapoverlay/point"

// SweepLine is the stateful form of the sweep-line algorithm: construct it
// with a segment set, call [SweepLine.Run] once, then read the results
// through the accessors. Accessors called before Run return [ErrNotRun].
type SweepLine struct {
	segments []LineSegment
	result   Result
	ran      bool
}

// NewSweepLine prepares a sweep over the given segments without running it.
func NewSweepLine(segments []LineSegment) *SweepLine {
	return &SweepLine{segments: segments}
}

// Run executes the sweep. Running twice is a no-op.
func (s *SweepLine) Run() error {
	if s.ran {
		return nil
	}
	result, err := SweepLineIntersection(s.segments)
	if err != nil {
		return err
	}
	s.result = result
	s.ran = true
	return nil
}

// Intersections returns the intersection map computed by Run.
func (s *SweepLine) Intersections() (map[point.Key]*Intersection, error) {
	if !s.ran {
		return nil, ErrNotRun
	}
	return s.result.Intersections, nil
}

// SplitSegments returns the subdivision table computed by Run.
func (s *SweepLine) SplitSegments() (map[SegmentKey]*SplitSegment, error) {
	if !s.ran {
		return nil, ErrNotRun
	}
	return s.result.SplitSegments, nil
}
