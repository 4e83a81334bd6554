// Package point defines the foundational geometric primitive of the
// mapoverlay library, the Point type. All other geometric types, line
// segments, DCEL vertices and faces, are built upon it.
//
// Points compare for equality componentwise within the process-wide epsilon
// (see [github.com/mcorte/mapoverlay.Epsilon]). Because Go map keys use exact
// equality, a Point cannot be used as a map key directly; instead [Point.Key]
// returns a canonical form with both coordinates rounded to a fixed number of
// significant digits, and all point-keyed tables in the library are keyed by
// that form. Key equality and Eq agree for inputs that are well separated
// relative to epsilon.
package point

import (
	"fmt"

	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/numeric"
)

// Point represents a point in two-dimensional space with x and y coordinates.
type Point struct {
	x float64
	y float64
}

// New creates a new Point with the specified x and y coordinates.
func New(x, y float64) Point {
	return Point{x: x, y: y}
}

// X returns the x-coordinate of the point.
func (p Point) X() float64 {
	return p.x
}

// Y returns the y-coordinate of the point.
func (p Point) Y() float64 {
	return p.y
}

// Eq reports whether p and q are equal, comparing each coordinate within the
// process-wide epsilon.
func (p Point) Eq(q Point) bool {
	eps := mapoverlay.Epsilon()
	return numeric.Equals(p.x, q.x, eps) && numeric.Equals(p.y, q.y, eps)
}

// String returns a string representation of the point in the form "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.x, p.y)
}

// Key is the canonical, comparable form of a Point: both coordinates rounded
// to the process-wide number of significant digits. It is the type used to
// key maps wherever the original implementation hashed points.
type Key struct {
	X float64
	Y float64
}

// Key returns the canonical map key for p.
func (p Point) Key() Key {
	digits := mapoverlay.SignificantDigits()
	return Key{
		X: numeric.RoundSignificant(p.x, digits),
		Y: numeric.RoundSignificant(p.y, digits),
	}
}

// Point converts the key back to a Point carrying the rounded coordinates.
func (k Key) Point() Point {
	return Point{x: k.X, y: k.Y}
}
