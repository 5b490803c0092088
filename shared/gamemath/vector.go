package gamemath

import "math"

// Vec2 is a horizontal vector on the ground plane (X, Z).
type Vec2 struct {
	X, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Z - o.Z} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Z * s} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Z == 0 }

// Vec3 is a world-space vector. Y is height.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Horizontal drops the height component.
func (v Vec3) Horizontal() Vec2 { return Vec2{v.X, v.Z} }

// WithHorizontal replaces X and Z, keeping the height.
func (v Vec3) WithHorizontal(h Vec2) Vec3 { return Vec3{h.X, v.Y, h.Z} }

// Finite reports whether every component is a real number.
func Finite(values ...float64) bool {
	for _, f := range values {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
