package point

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Eq(t *testing.T) {
	tests := map[string]struct {
		p, q     Point
		expected bool
	}{
		"identical":          {p: New(1, 2), q: New(1, 2), expected: true},
		"within epsilon":     {p: New(1, 2), q: New(1+1e-9, 2-1e-9), expected: true},
		"x differs":          {p: New(1, 2), q: New(1.1, 2), expected: false},
		"y differs":          {p: New(1, 2), q: New(1, 2.1), expected: false},
		"negative coords":    {p: New(-3, -4), q: New(-3, -4), expected: true},
		"mirrored coords":    {p: New(1, 2), q: New(2, 1), expected: false},
		"origin against eps": {p: New(0, 0), q: New(1e-9, -1e-9), expected: true},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.p.Eq(test.q))
		})
	}
}

func TestPoint_Key(t *testing.T) {
	// Key must agree with Eq: points equal within epsilon share a key.
	p := New(5.000000001, -2.999999999)
	q := New(5.0, -3.0)
	assert.True(t, p.Eq(q))
	assert.Equal(t, p.Key(), q.Key())

	// And well-separated points must not.
	assert.NotEqual(t, New(1, 1).Key(), New(1, 1.001).Key())
}

func TestKey_Point(t *testing.T) {
	k := New(1.5, -2.25).Key()
	assert.True(t, k.Point().Eq(New(1.5, -2.25)))
}

func TestPoint_Accessors(t *testing.T) {
	p := New(3.5, -1.25)
	assert.Equal(t, 3.5, p.X())
	assert.Equal(t, -1.25, p.Y())
	assert.Equal(t, "(3.5, -1.25)", p.String())
}
