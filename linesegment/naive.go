package linesegment

import "github.com/mcorte/mapoverlay/point"

// NaiveIntersection finds the distinct intersection points of a set of line
// segments with a brute-force O(n²) scan over all pairs.
//
// It is provided as a reference implementation to validate
// [SweepLineIntersection]; on any input free of disallowed collinearity the
// two report the same set of points. Every collinear pair without a shared
// endpoint returns a [CollinearityError], including disjoint pairs and
// overlapping horizontal pairs, which the sweep line does not reject.
func NaiveIntersection(segments []LineSegment) ([]point.Point, error) {
	var intersections []point.Point
	seen := make(map[point.Key]bool)

	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			p, ok, err := segments[i].Intersection(segments[j])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			key := p.Key()
			if !seen[key] {
				seen[key] = true
				intersections = append(intersections, p)
			}
		}
	}

	return intersections, nil
}
