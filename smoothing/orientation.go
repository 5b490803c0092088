package smoothing

import "github.com/automoto/netsmooth/shared/gamemath"

// Orient turns yaw toward the direction of this tick's horizontal movement.
// No movement, including purely vertical movement, keeps the current yaw.
func Orient(yaw float64, prev, cur gamemath.Vec3, dt float64, rotationMultiplier int) float64 {
	target, ok := gamemath.YawTowards(cur.Horizontal().Sub(prev.Horizontal()))
	if !ok {
		return yaw
	}
	return gamemath.LerpAngle(yaw, target, dt*float64(rotationMultiplier))
}
