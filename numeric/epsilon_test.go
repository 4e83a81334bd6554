package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquals(t *testing.T) {
	tests := map[string]struct {
		a, b, epsilon float64
		expected      bool
	}{
		"exactly equal":           {a: 1.0, b: 1.0, epsilon: 1e-8, expected: true},
		"within epsilon":          {a: 1.0, b: 1.0 + 1e-9, epsilon: 1e-8, expected: true},
		"outside epsilon":         {a: 1.0, b: 1.0 + 1e-7, epsilon: 1e-8, expected: false},
		"negative within":         {a: -5.0, b: -5.0 - 1e-9, epsilon: 1e-8, expected: true},
		"infinities of same sign": {a: math.Inf(1), b: math.Inf(1), epsilon: 1e-8, expected: true},
		"opposite infinities":     {a: math.Inf(1), b: math.Inf(-1), epsilon: 1e-8, expected: false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, Equals(test.a, test.b, test.epsilon))
		})
	}
}

func TestComparisons(t *testing.T) {
	const eps = 1e-8
	assert.True(t, LessThan(1.0, 2.0, eps))
	assert.False(t, LessThan(1.0, 1.0+1e-9, eps))
	assert.True(t, LessThanOrEqualTo(1.0, 1.0+1e-9, eps))
	assert.True(t, GreaterThan(2.0, 1.0, eps))
	assert.False(t, GreaterThan(1.0+1e-9, 1.0, eps))
	assert.True(t, GreaterThanOrEqualTo(1.0+1e-9, 1.0, eps))
}

func TestRoundSignificant(t *testing.T) {
	tests := map[string]struct {
		value    float64
		digits   int
		expected float64
	}{
		"integer unchanged":     {value: 5.0, digits: 7, expected: 5.0},
		"truncates excess":      {value: 1.23456789, digits: 7, expected: 1.234568},
		"small magnitude":       {value: 0.000123456789, digits: 7, expected: 0.0001234568},
		"large magnitude":       {value: 123456789.0, digits: 7, expected: 123456800.0},
		"negative":              {value: -1.23456789, digits: 7, expected: -1.234568},
		"near-integer converge": {value: 4.999999999999, digits: 7, expected: 5.0},
		"zero":                  {value: 0.0, digits: 7, expected: 0.0},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, test.expected, RoundSignificant(test.value, test.digits), 1e-12)
		})
	}
}

func TestRoundSignificant_ConsistentKeys(t *testing.T) {
	// Values that are equal within epsilon must round to the same canonical
	// form, so they can stand in for each other as map keys.
	a := RoundSignificant(5.000000001, 7)
	b := RoundSignificant(4.999999999, 7)
	assert.Equal(t, a, b)
}
