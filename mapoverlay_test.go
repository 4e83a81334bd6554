package mapoverlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpsilonDefaults(t *testing.T) {
	assert.Equal(t, 1e-8, Epsilon())
	assert.Equal(t, 7, SignificantDigits())
}

func TestSetEpsilon(t *testing.T) {
	original := Epsilon()
	defer SetEpsilon(original)

	SetEpsilon(1e-6)
	assert.Equal(t, 1e-6, Epsilon())

	assert.Panics(t, func() { SetEpsilon(0) })
	assert.Panics(t, func() { SetEpsilon(-1) })
}

func TestSetSignificantDigits(t *testing.T) {
	original := SignificantDigits()
	defer SetSignificantDigits(original)

	SetSignificantDigits(5)
	assert.Equal(t, 5, SignificantDigits())

	assert.Panics(t, func() { SetSignificantDigits(0) })
}
