package gamemath

import "math"

// Clamp01 clamps t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp moves from a toward b by fraction t. t is clamped to [0, 1], so a
// large per-tick fraction lands on b instead of overshooting it.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// LerpVec3 is Lerp applied per component.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	t = Clamp01(t)
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// WrapAngle maps an angle in radians to (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle rotates from a toward b along the shortest arc by fraction t.
// The result is wrapped to (-Pi, Pi].
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + WrapAngle(b-a)*Clamp01(t))
}

// YawTowards returns the yaw facing dir, with 0 facing +Z and positive yaw
// turning toward +X. ok is false for a zero vector, which has no facing.
func YawTowards(dir Vec2) (yaw float64, ok bool) {
	if dir.IsZero() {
		return 0, false
	}
	return math.Atan2(dir.X, dir.Z), true
}
