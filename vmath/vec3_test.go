package vmath_test

import (
	"testing"

	"github.com/plus3/handcannon/vmath"
	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := vmath.New(1, 2, 3)
	b := vmath.New(4, 5, 6)

	assert.Equal(t, vmath.New(5, 7, 9), a.Add(b))
	assert.Equal(t, vmath.New(3, 3, 3), b.Sub(a))
	assert.Equal(t, vmath.New(2, 4, 6), a.Scale(2))
	assert.Equal(t, 14.0, a.LengthSquared())
}

func TestVec3Normalize(t *testing.T) {
	assert.Equal(t, vmath.Zero, vmath.Zero.Normalize())
	assert.InDelta(t, 1.0, vmath.New(3, 4, 0).Normalize().Length(), 1e-12)
}

func TestVec3Lerp(t *testing.T) {
	from := vmath.New(0, 0, 0)
	to := vmath.New(100, -50, 10)

	assert.Equal(t, from, from.Lerp(to, 0))
	assert.Equal(t, to, from.Lerp(to, 1))
	assert.True(t, from.Lerp(to, 0.5).ApproxEqual(vmath.New(50, -25, 5), 1e-12))
}
