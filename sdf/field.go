package sdf

import "math"

const (
	// Epsilon is the hit threshold, the finite-difference offset for normals
	// and the radius below which a sphere is treated as absent.
	Epsilon = 0.001

	// MaxSteps bounds the raymarch loop.
	MaxSteps = 48

	// MaxDistance is the travelled distance after which a ray is a miss. It is
	// also the empty-scene distance the union starts from.
	MaxDistance = 10.0

	// DefaultBlend is the smooth-minimum width. Larger values merge blobs
	// sooner; values near zero approach a hard union.
	DefaultBlend = 0.25

	// MaxSpheres is the number of sphere slots in a scene.
	MaxSpheres = 4
)

// Sphere is one blob of the scene.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Absent reports whether the sphere is too small to contribute to the field.
func (s Sphere) Absent() bool { return s.Radius < Epsilon }

// SdSphere returns the signed distance from p to the sphere at center with
// the given radius. Negative inside.
func SdSphere(p, center Vec3, radius float64) float64 {
	return p.Sub(center).Length() - radius
}

// SmoothMin blends two distances with a polynomial smooth minimum of width k.
// The result never exceeds min(d1, d2). A non-positive k degrades to a hard
// union.
func SmoothMin(d1, d2, k float64) float64 {
	m := math.Min(d1, d2)
	if k <= 0 {
		return m
	}
	h := math.Max(k-math.Abs(d1-d2), 0) / k
	return m - h*h*k*0.25
}

// Field is the smooth union of up to MaxSpheres spheres.
type Field struct {
	Spheres [MaxSpheres]Sphere
	Blend   float64
}

// Distance evaluates the scene at p. Absent spheres are skipped, so a scene
// with no live spheres reports MaxDistance everywhere.
func (f *Field) Distance(p Vec3) float64 {
	d := MaxDistance
	for i := range f.Spheres {
		s := &f.Spheres[i]
		if s.Absent() {
			continue
		}
		d = SmoothMin(d, SdSphere(p, s.Center, s.Radius), f.Blend)
	}
	return d
}

// Empty reports whether every sphere is absent.
func (f *Field) Empty() bool {
	for i := range f.Spheres {
		if !f.Spheres[i].Absent() {
			return false
		}
	}
	return true
}

// Normal estimates the surface normal at p with central differences. A zero
// gradient (inside a flat region of the field) falls back to +Z, which faces
// the camera.
func (f *Field) Normal(p Vec3) Vec3 {
	const e = Epsilon
	g := Vec3{
		X: f.Distance(Vec3{p.X + e, p.Y, p.Z}) - f.Distance(Vec3{p.X - e, p.Y, p.Z}),
		Y: f.Distance(Vec3{p.X, p.Y + e, p.Z}) - f.Distance(Vec3{p.X, p.Y - e, p.Z}),
		Z: f.Distance(Vec3{p.X, p.Y, p.Z + e}) - f.Distance(Vec3{p.X, p.Y, p.Z - e}),
	}
	if g.Length() == 0 {
		return Vec3{Z: 1}
	}
	return g.Normalize()
}
