// Package geodata loads the external data formats consumed by the
// mapoverlay algorithms: plain-text segment lists for the intersection
// algorithms, plain-text polygon blocks for the overlay, and GeoJSON
// feature collections.
package geodata

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mcorte/mapoverlay/dcel"
	"github.com/mcorte/mapoverlay/linesegment"
	"github.com/mcorte/mapoverlay/point"
)

// ReadIntersectionFile reads a segment list for the intersection algorithms.
//
// The first line holds the expected number of intersections (−1 when the
// expected outcome is a CollinearityError); every subsequent non-blank line
// holds one segment as four whitespace-separated reals "x1 y1 x2 y2".
// Duplicate segments (by endpoint set) and zero-length segments are silently
// discarded.
func ReadIntersectionFile(path string) ([]linesegment.LineSegment, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var segments []linesegment.LineSegment
	seen := make(map[linesegment.SegmentKey]bool)
	expected := 0

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 1 {
			if lineNo == 0 {
				expected, err = strconv.Atoi(fields[0])
				if err != nil {
					return nil, 0, fmt.Errorf("%s: invalid intersection count %q", path, fields[0])
				}
				lineNo++
				continue
			}
			return nil, 0, fmt.Errorf("%s: expected four coordinates, got %q", path, line)
		}
		lineNo++

		if line == "" {
			continue
		}

		coords, err := parseCoordinates(fields)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}
		p1 := point.New(coords[0], coords[1])
		p2 := point.New(coords[2], coords[3])
		if p1.Eq(p2) {
			continue
		}
		seg := linesegment.NewFromPoints(p1, p2)
		if seen[seg.Key()] {
			continue
		}
		seen[seg.Key()] = true
		segments = append(segments, seg)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	return segments, expected, nil
}

// ReadOverlayFile reads the polygon rings of one overlay operand. Each block
// of lines "x1 y1 x2 y2", separated by blank lines, is the ordered list of
// directed edges of one closed ring.
func ReadOverlayFile(path string) ([][]dcel.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var polygons [][]dcel.Edge
	var ring []dcel.Edge

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(ring) > 0 {
				polygons = append(polygons, ring)
				ring = nil
			}
			continue
		}
		coords, err := parseCoordinates(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ring = append(ring, dcel.Edge{
			Origin:      point.New(coords[0], coords[1]),
			Destination: point.New(coords[2], coords[3]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ring) > 0 {
		polygons = append(polygons, ring)
	}

	return polygons, nil
}

func parseCoordinates(fields []string) ([4]float64, error) {
	var coords [4]float64
	if len(fields) != 4 {
		return coords, fmt.Errorf("expected four coordinates, got %d", len(fields))
	}
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return coords, fmt.Errorf("invalid coordinate %q", field)
		}
		coords[i] = v
	}
	return coords, nil
}
