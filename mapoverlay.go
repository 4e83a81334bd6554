// Package mapoverlay provides a 2D computational-geometry core for line
// segment intersection and planar subdivision overlay.
//
// The package is built around two tightly coupled capabilities:
//
//   - [github.com/mcorte/mapoverlay/linesegment]: Bentley-Ottmann sweep-line
//     segment intersection, reporting every point at which two or more
//     segments of a set coincide together with, for each segment, the ordered
//     list of points at which it is subdivided.
//   - [github.com/mcorte/mapoverlay/dcel]: a doubly-connected edge list
//     (DCEL) representation of planar subdivisions, and the overlay
//     operation that merges two subdivisions into the subdivision whose faces
//     are the pairwise intersections of the input faces.
//
// Supporting packages supply the geometric primitives
// ([github.com/mcorte/mapoverlay/point]), epsilon-tolerant numeric
// comparisons ([github.com/mcorte/mapoverlay/numeric]), file and GeoJSON
// loaders ([github.com/mcorte/mapoverlay/geodata]) and PNG rendering
// ([github.com/mcorte/mapoverlay/plot]).
//
// # Coordinate System
//
// The library assumes a standard Cartesian coordinate system where the x-axis
// increases to the right and the y-axis increases upward. The sweep line
// moves through the plane from top to bottom, breaking ties left to right.
//
// # Precision
//
// All real-valued comparisons are performed within a process-wide tolerance:
// two values are equal iff their difference is smaller than [Epsilon]. Points
// used as map keys are first canonicalised by rounding each coordinate to
// [SignificantDigits] significant digits, so key equality agrees with the
// epsilon comparison for well-separated inputs. The arithmetic is not robust
// to worst-case degeneracies; the contract is only "equality within epsilon
// is equality".
package mapoverlay

const (
	defaultEpsilon           = 1e-8
	defaultSignificantDigits = 7
)

var (
	epsilon           = defaultEpsilon
	significantDigits = defaultSignificantDigits
)

func init() {
	logDebugf("debug logging enabled")
}

// Epsilon returns the process-wide tolerance used for geometric comparisons.
func Epsilon() float64 {
	return epsilon
}

// SetEpsilon changes the process-wide geometric tolerance. It is intended to
// be called once at startup, before any geometry is constructed; changing it
// mid-computation invalidates previously built structures. SetEpsilon panics
// if e is not strictly positive.
func SetEpsilon(e float64) {
	if e <= 0 {
		panic("mapoverlay: epsilon must be strictly positive")
	}
	epsilon = e
}

// SignificantDigits returns the number of significant digits coordinates are
// rounded to when used as hash/map keys.
func SignificantDigits() int {
	return significantDigits
}

// SetSignificantDigits changes the coordinate key precision. As with
// [SetEpsilon], call it once at startup. SetSignificantDigits panics if d is
// not strictly positive.
func SetSignificantDigits(d int) {
	if d <= 0 {
		panic("mapoverlay: significant digits must be strictly positive")
	}
	significantDigits = d
}
