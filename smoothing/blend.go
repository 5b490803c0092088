package smoothing

import (
	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
)

// BlendOutcome records which correction policy ran in a tick.
type BlendOutcome int

const (
	Blended BlendOutcome = iota
	Suppressed
	Snapped
)

func (o BlendOutcome) String() string {
	switch o {
	case Blended:
		return "blended"
	case Suppressed:
		return "suppressed"
	case Snapped:
		return "snapped"
	}
	return "unknown"
}

// Blend narrows the gap between the rendered position and the reference.
//
// posErr is the error measured at arrival and is applied again every tick
// until the next arrival; the fraction dt*CorrectionMultiplier is a per-tick
// step, not a time constant, so the result depends on the tick rate.
func Blend(pos gamemath.Vec3, ref Snapshot, posErr gamemath.Vec3, dt float64, cfg config.SmoothingConfig, t config.ThresholdConfig) (gamemath.Vec3, BlendOutcome) {
	errLen := posErr.Len()

	if cfg.PreciseStop && ref.Velocity.Len() < t.PreciseStopVelocity && errLen < t.PreciseStopError {
		return pos, Suppressed
	}

	if errLen > t.SnapError {
		return pos.WithHorizontal(ref.Position), Snapped
	}

	target := pos.Sub(posErr)
	return gamemath.LerpVec3(pos, target, dt*float64(cfg.CorrectionMultiplier)), Blended
}
