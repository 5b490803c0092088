package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerpClamps(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 10.0, Lerp(0, 10, 3))
	assert.Equal(t, 0.0, Lerp(0, 10, -1))

	got := LerpVec3(Vec3{}, Vec3{X: 2, Y: -4, Z: 8}, 0.25)
	assert.Equal(t, Vec3{X: 0.5, Y: -1, Z: 2}, got)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4*math.Pi + 0.5, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-9, "in %v", tt.in)
	}
}

func TestLerpAngleTakesShortestArc(t *testing.T) {
	from := math.Pi - 0.2
	to := -math.Pi + 0.2

	mid := LerpAngle(from, to, 0.5)
	assert.InDelta(t, math.Pi, math.Abs(mid), 1e-9)

	assert.InDelta(t, to, LerpAngle(from, to, 1), 1e-9)
	assert.InDelta(t, to, LerpAngle(from, to, 7), 1e-9)
}

func TestYawTowards(t *testing.T) {
	_, ok := YawTowards(Vec2{})
	assert.False(t, ok)

	yaw, ok := YawTowards(Vec2{Z: 1})
	assert.True(t, ok)
	assert.Equal(t, 0.0, yaw)

	yaw, _ = YawTowards(Vec2{X: 1})
	assert.InDelta(t, math.Pi/2, yaw, 1e-12)

	yaw, _ = YawTowards(Vec2{X: -1})
	assert.InDelta(t, -math.Pi/2, yaw, 1e-12)
}

func TestVecHelpers(t *testing.T) {
	v := Vec3{X: 3, Y: 7, Z: 4}
	assert.Equal(t, Vec2{X: 3, Z: 4}, v.Horizontal())
	assert.Equal(t, 5.0, v.Horizontal().Len())
	assert.Equal(t, Vec3{X: 1, Y: 7, Z: 2}, v.WithHorizontal(Vec2{X: 1, Z: 2}))
	assert.Equal(t, Vec3{X: 2, Y: 6, Z: 3}, v.Sub(Vec3{X: 1, Y: 1, Z: 1}))

	assert.True(t, Finite(1, -2, 0))
	assert.False(t, Finite(1, math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}
