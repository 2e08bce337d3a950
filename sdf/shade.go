package sdf

import (
	"image/color"
	"math"
)

// RGB is a linear color triple. Components may exceed 1 before output.
type RGB struct {
	R, G, B float64
}

// Sample is a shaded pixel with straight (non-premultiplied) alpha.
type Sample struct {
	R, G, B, A float64
}

// NRGBA quantizes the sample, clamping every component to [0, 1].
func (s Sample) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unit8(s.R),
		G: unit8(s.G),
		B: unit8(s.B),
		A: unit8(s.A),
	}
}

func unit8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Material holds the glass shading coefficients. All terms are additive; the
// model is stylized, not energy conserving.
type Material struct {
	IOR                float64 // index of refraction
	Tint               RGB     // refracted background when no Backdrop is set
	Refraction         float64 // UV offset per unit of refracted direction
	Aberration         float64 // per-channel spread, scaled by (1 + fresnel)
	Edge               float64 // strength of the diffraction band
	EdgeFrequency      float64 // phase multiplier of the diffraction band
	SpecularPrimary    float64
	ShininessPrimary   float64
	SpecularSecondary  float64
	ShininessSecondary float64
	Rim                float64
	BaseAlpha          float64
	FresnelAlpha       float64
	RimAlpha           float64
}

// DefaultMaterial returns the clear glass look used by the menu toggle.
func DefaultMaterial() Material {
	return Material{
		IOR:                1.15,
		Tint:               RGB{0.95, 0.95, 0.98},
		Refraction:         0.12,
		Aberration:         0.02,
		Edge:               0.08,
		EdgeFrequency:      6.28,
		SpecularPrimary:    0.4,
		ShininessPrimary:   80,
		SpecularSecondary:  0.2,
		ShininessSecondary: 60,
		Rim:                0.1,
		BaseAlpha:          0.15,
		FresnelAlpha:       0.3,
		RimAlpha:           0.1,
	}
}

var (
	keyLight  = Vec3{1, 1, 1}.Normalize()
	fillLight = Vec3{-0.5, 0.8, 0.5}.Normalize()
	rayDir    = Vec3{Z: -1}
)

// Shade evaluates one output pixel. x and y are image coordinates (origin
// top-left); callers pass pixel centers. Shade reads nothing but its arguments
// and may run concurrently for any set of pixels.
func Shade(x, y float64, u Uniforms, m Material) Sample {
	f := u.Field()
	w := u.View.ToWorld(x, y, u.Resolution)
	h := f.March(Vec3{w.X, w.Y, RayOriginZ}, rayDir)
	if !h.OK {
		return Sample{}
	}
	var uv Vec2
	if u.Resolution.X > 0 && u.Resolution.Y > 0 {
		uv = Vec2{x / u.Resolution.X, (u.Resolution.Y - y) / u.Resolution.Y}
	}
	return m.surface(f.Normal(h.Point), uv, u.Background)
}

// surface shades a hit with normal n. uv is the pixel's screen UV, used to
// look up the refracted backdrop.
func (m *Material) surface(n Vec3, uv Vec2, bg Backdrop) Sample {
	ndv := math.Abs(n.Dot(rayDir.Scale(-1)))
	facing := 1 - ndv
	fresnel := facing * facing * facing

	ior := m.IOR
	if ior == 0 {
		ior = 1
	}
	refr := refract(rayDir, n, 1/ior)
	refl := reflect(rayDir, n)

	c := m.Tint
	if bg != nil {
		off := Vec2{refr.X * m.Refraction, refr.Y * m.Refraction}
		ab := m.Aberration * (1 + fresnel)
		c = RGB{
			R: bg.SampleUV(uv.X+off.X*(1+ab), uv.Y+off.Y*(1+ab)).R,
			G: bg.SampleUV(uv.X+off.X, uv.Y+off.Y).G,
			B: bg.SampleUV(uv.X+off.X*(1-ab), uv.Y+off.Y*(1-ab)).B,
		}
	}

	edge := math.Pow(facing, 5)
	phase := edge * m.EdgeFrequency
	band := m.Edge * edge
	c.R += (0.5 + 0.5*math.Sin(phase)) * band
	c.G += (0.5 + 0.5*math.Sin(phase+2.09)) * band
	c.B += (0.5 + 0.5*math.Sin(phase+4.18)) * band

	spec := m.SpecularPrimary*math.Pow(math.Max(0, refl.Dot(keyLight)), m.ShininessPrimary) +
		m.SpecularSecondary*math.Pow(math.Max(0, refl.Dot(fillLight)), m.ShininessSecondary)
	rim := fresnel
	white := spec + rim*m.Rim
	c.R += white
	c.G += white
	c.B += white

	return Sample{
		R: c.R,
		G: c.G,
		B: c.B,
		A: m.BaseAlpha + fresnel*m.FresnelAlpha + rim*m.RimAlpha,
	}
}
