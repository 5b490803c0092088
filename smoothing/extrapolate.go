package smoothing

import "github.com/automoto/netsmooth/shared/gamemath"

// Extrapolate advances pos by a constant horizontal velocity for dt seconds.
// Height is left to the jump machine.
func Extrapolate(pos gamemath.Vec3, vel gamemath.Vec2, dt float64) gamemath.Vec3 {
	pos.X += vel.X * dt
	pos.Z += vel.Z * dt
	return pos
}
