// Package numeric provides epsilon-tolerant floating point comparisons and
// the significant-digit rounding used to build hashable coordinate keys.
package numeric

import "math"

// Equals returns true if a and b are equal within the epsilon threshold.
// Infinities of the same sign compare equal.
func Equals(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < epsilon
}

// GreaterThan checks if a is significantly greater than b.
func GreaterThan(a, b, epsilon float64) bool {
	return a > b && !Equals(a, b, epsilon)
}

// GreaterThanOrEqualTo checks if a is greater than or equal to b.
func GreaterThanOrEqualTo(a, b, epsilon float64) bool {
	return a > b || Equals(a, b, epsilon)
}

// LessThan checks if a is significantly less than b.
func LessThan(a, b, epsilon float64) bool {
	return a < b && !Equals(a, b, epsilon)
}

// LessThanOrEqualTo checks if a is less than or equal to b.
func LessThanOrEqualTo(a, b, epsilon float64) bool {
	return a < b || Equals(a, b, epsilon)
}

// RoundSignificant rounds v to the given number of significant digits.
//
// The rounded form is the canonical representation used wherever coordinates
// must act as map keys: equality of rounded forms stands in for the
// epsilon-based equality of the underlying values. Zero, infinities and NaN
// are returned unchanged.
func RoundSignificant(v float64, digits int) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	magnitude := math.Ceil(math.Log10(math.Abs(v)))
	scale := math.Pow(10, float64(digits)-magnitude)
	return math.Round(v*scale) / scale
}
