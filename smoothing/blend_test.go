package smoothing

import (
	"math"
	"testing"

	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	th := config.Thresholds
	ref := snap(1, 4, 0, 0, 0)

	t.Run("snap above threshold", func(t *testing.T) {
		pos := gamemath.Vec3{X: -8, Y: 1.5, Z: 0}
		got, outcome := Blend(pos, ref, gamemath.Vec3{X: -12}, frame, defaultCfg(), th)
		assert.Equal(t, Snapped, outcome)
		assert.Equal(t, gamemath.Vec3{X: 4, Y: 1.5}, got)
	})

	t.Run("exactly at threshold blends", func(t *testing.T) {
		_, outcome := Blend(gamemath.Vec3{X: -6}, ref, gamemath.Vec3{X: -10}, frame, defaultCfg(), th)
		assert.Equal(t, Blended, outcome)
	})

	t.Run("blend step scales with multiplier", func(t *testing.T) {
		posErr := gamemath.Vec3{X: 1, Z: -1}
		slow, _ := Blend(gamemath.Vec3{}, ref, posErr, 0.1, config.SmoothingConfig{RotationMultiplier: 1, CorrectionMultiplier: 1}, th)
		fast, _ := Blend(gamemath.Vec3{}, ref, posErr, 0.1, config.SmoothingConfig{RotationMultiplier: 1, CorrectionMultiplier: 4}, th)

		assert.InDelta(t, -0.1, slow.X, 1e-12)
		assert.InDelta(t, 0.1, slow.Z, 1e-12)
		assert.InDelta(t, -0.4, fast.X, 1e-12)
		assert.InDelta(t, 0.4, fast.Z, 1e-12)
	})

	t.Run("fraction is clamped", func(t *testing.T) {
		got, _ := Blend(gamemath.Vec3{X: 2}, ref, gamemath.Vec3{X: 2}, 1, defaultCfg(), th)
		assert.Equal(t, gamemath.Vec3{}, got)
	})

	t.Run("precise stop needs both limits", func(t *testing.T) {
		cfg := defaultCfg()
		cfg.PreciseStop = true
		moving := snap(1, 0, 0, 0.3, 0)

		_, outcome := Blend(gamemath.Vec3{}, moving, gamemath.Vec3{X: 0.3}, frame, cfg, th)
		assert.Equal(t, Blended, outcome)

		_, outcome = Blend(gamemath.Vec3{}, ref, gamemath.Vec3{X: 0.6}, frame, cfg, th)
		assert.Equal(t, Blended, outcome)

		_, outcome = Blend(gamemath.Vec3{}, ref, gamemath.Vec3{X: 0.3}, frame, cfg, th)
		assert.Equal(t, Suppressed, outcome)
	})
}

func TestOrient(t *testing.T) {
	still := gamemath.Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, 0.7, Orient(0.7, still, still, frame, 3))

	up := gamemath.Vec3{X: 1, Y: 3, Z: 3}
	assert.Equal(t, 0.7, Orient(0.7, still, up, frame, 3), "vertical only")

	// Turning from +Z toward -Z by way of the shorter side of Pi.
	back := gamemath.Vec3{X: -0.001, Z: -1}
	got := Orient(0, gamemath.Vec3{}, back, 1, 1)
	assert.InDelta(t, math.Atan2(-0.001, -1), got, 1e-12)

	half := Orient(math.Pi-0.1, gamemath.Vec3{}, gamemath.Vec3{X: -0.1, Z: -1}, 0.5, 1)
	assert.Greater(t, math.Abs(half), math.Pi-0.1, "wraps through Pi instead of spinning back")
}
