package sdf

import "math"

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a 2D vector used for resolutions and pixel/uv coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// reflect mirrors the incident direction i about the normal n.
func reflect(i, n Vec3) Vec3 {
	return i.Sub(n.Scale(2 * n.Dot(i)))
}

// refract bends the incident direction i through a surface with normal n
// using the ratio of indices of refraction eta. Total internal reflection
// yields the zero vector.
func refract(i, n Vec3, eta float64) Vec3 {
	ndi := n.Dot(i)
	k := 1 - eta*eta*(1-ndi*ndi)
	if k < 0 {
		return Vec3{}
	}
	return i.Scale(eta).Sub(n.Scale(eta*ndi + math.Sqrt(k)))
}
