package sdf

import (
	"image"
	"math"
)

// RayOriginZ is the depth of the plane rays start from. Rays travel toward -Z.
const RayOriginZ = 2.0

// View maps output pixels to world space. Pixels are first normalized so the
// shorter side of the output spans one unit centered on zero, then scaled by
// Scale and offset by Center. The zero Scale is treated as 1.
type View struct {
	Center Vec2
	Scale  float64
}

// IdentityView returns the mapping with no offset and unit scale.
func IdentityView() View { return View{Scale: 1} }

func (v View) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}

// ToWorld converts image coordinates (origin top-left, Y down) to world
// coordinates (Y up) for an output of size res.
func (v View) ToWorld(x, y float64, res Vec2) Vec2 {
	m := math.Min(res.X, res.Y)
	if m <= 0 {
		return v.Center
	}
	s := v.scale()
	gy := res.Y - y
	return Vec2{
		X: v.Center.X + (x-res.X*0.5)/m*s,
		Y: v.Center.Y + (gy-res.Y*0.5)/m*s,
	}
}

// ToPixel is the inverse of ToWorld.
func (v View) ToPixel(wx, wy float64, res Vec2) Vec2 {
	m := math.Min(res.X, res.Y)
	s := v.scale()
	gx := (wx-v.Center.X)/s*m + res.X*0.5
	gy := (wy-v.Center.Y)/s*m + res.Y*0.5
	return Vec2{X: gx, Y: res.Y - gy}
}

// PixelsPerUnit returns how many output pixels one world unit covers.
func (v View) PixelsPerUnit(res Vec2) float64 {
	return math.Min(res.X, res.Y) / v.scale()
}

// Backdrop supplies the content behind the effect for refraction. Coordinates
// are screen UVs in [0, 1] with the origin at the bottom-left. Implementations
// must be safe for concurrent reads.
type Backdrop interface {
	SampleUV(u, v float64) RGB
}

// ImageBackdrop samples an image.Image with nearest filtering, clamping
// coordinates to the image edges.
type ImageBackdrop struct {
	Image image.Image
}

// SampleUV implements Backdrop.
func (b ImageBackdrop) SampleUV(u, v float64) RGB {
	r := b.Image.Bounds()
	if r.Empty() {
		return RGB{}
	}
	x := r.Min.X + clampInt(int(u*float64(r.Dx())), 0, r.Dx()-1)
	y := r.Min.Y + clampInt(int((1-v)*float64(r.Dy())), 0, r.Dy()-1)
	cr, cg, cb, ca := b.Image.At(x, y).RGBA()
	if ca == 0 {
		return RGB{}
	}
	// Un-premultiply.
	a := float64(ca)
	return RGB{float64(cr) / a, float64(cg) / a, float64(cb) / a}
}

// Uniforms is the frozen per-frame input of the shading stage. It is passed by
// value so every pixel of a frame sees the same snapshot.
type Uniforms struct {
	Resolution Vec2
	Time       float64
	Spheres    [MaxSpheres]Sphere
	Blend      float64
	View       View
	Background Backdrop // optional
}

// Field returns the distance field described by the uniforms.
func (u *Uniforms) Field() Field {
	return Field{Spheres: u.Spheres, Blend: u.Blend}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
