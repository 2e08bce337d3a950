package sdf

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func singleSphere(res Vec2) Uniforms {
	u := Uniforms{Resolution: res, Blend: DefaultBlend, View: IdentityView()}
	u.Spheres[0] = Sphere{Radius: 0.3}
	return u
}

func TestShadeCenterOfSphere(t *testing.T) {
	u := singleSphere(Vec2{100, 100})
	m := DefaultMaterial()

	s := Shade(50, 50, u, m)
	if math.Abs(s.A-m.BaseAlpha) > 1e-6 {
		t.Errorf("alpha = %v, want %v facing the camera", s.A, m.BaseAlpha)
	}
	if math.Abs(s.R-m.Tint.R) > 1e-6 || math.Abs(s.B-m.Tint.B) > 1e-6 {
		t.Errorf("color = %+v, want tint %+v", s, m.Tint)
	}
}

func TestShadeEdgeIsMoreOpaque(t *testing.T) {
	u := singleSphere(Vec2{100, 100})
	m := DefaultMaterial()

	center := Shade(50, 50, u, m)
	// 0.28 world units right of center: close to the silhouette.
	edge := Shade(50+28, 50, u, m)
	if edge.A == 0 {
		t.Fatal("edge pixel missed the sphere")
	}
	if edge.A <= center.A {
		t.Errorf("edge alpha %v <= center alpha %v", edge.A, center.A)
	}
}

func TestShadeMissIsTransparent(t *testing.T) {
	u := singleSphere(Vec2{100, 100})
	if s := Shade(2, 2, u, DefaultMaterial()); s != (Sample{}) {
		t.Errorf("corner sample = %+v, want transparent black", s)
	}
}

func TestShadeIsDeterministic(t *testing.T) {
	u := singleSphere(Vec2{64, 64})
	u.Spheres[1] = Sphere{Center: Vec3{Y: 0.35}, Radius: 0.2}
	m := DefaultMaterial()
	for y := 0.5; y < 64; y += 7 {
		for x := 0.5; x < 64; x += 5 {
			if a, b := Shade(x, y, u, m), Shade(x, y, u, m); a != b {
				t.Fatalf("Shade(%v, %v) not repeatable: %+v vs %+v", x, y, a, b)
			}
		}
	}
}

func TestShadeSamplesBackdrop(t *testing.T) {
	bg := image.NewUniform(color.NRGBA{R: 255, A: 255})
	u := singleSphere(Vec2{100, 100})
	u.Background = ImageBackdrop{Image: &boundedUniform{bg, image.Rect(0, 0, 100, 100)}}

	s := Shade(50, 50, u, DefaultMaterial())
	if math.Abs(s.R-1) > 1e-6 || s.G > 1e-6 || s.B > 1e-6 {
		t.Errorf("refracted color = %+v, want red backdrop", s)
	}
}

// boundedUniform gives image.Uniform finite bounds.
type boundedUniform struct {
	*image.Uniform
	r image.Rectangle
}

func (b *boundedUniform) Bounds() image.Rectangle { return b.r }

func TestSampleNRGBAClamps(t *testing.T) {
	got := Sample{R: 1.7, G: -0.2, B: 0.5, A: 0.15}.NRGBA()
	want := color.NRGBA{R: 255, G: 0, B: 128, A: 38}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
	if got := (Sample{R: math.NaN()}).NRGBA(); got.R != 0 {
		t.Errorf("NaN quantized to %d, want 0", got.R)
	}
}

func TestViewRoundTrip(t *testing.T) {
	res := Vec2{200, 600}
	v := View{Center: Vec2{0.95, 1.4}, Scale: 1.4}
	for _, p := range []Vec2{{0, 0}, {100, 300}, {37.5, 512.25}, {200, 600}} {
		w := v.ToWorld(p.X, p.Y, res)
		back := v.ToPixel(w.X, w.Y, res)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip %+v -> %+v -> %+v", p, w, back)
		}
	}
}

func TestIdentityViewMapping(t *testing.T) {
	res := Vec2{200, 600}
	v := IdentityView()
	if w := v.ToWorld(100, 300, res); w != (Vec2{}) {
		t.Errorf("center maps to %+v, want origin", w)
	}
	w := v.ToWorld(200, 0, res)
	if math.Abs(w.X-0.5) > 1e-12 || math.Abs(w.Y-1.5) > 1e-12 {
		t.Errorf("top-right maps to %+v, want (0.5, 1.5)", w)
	}
	if got := v.PixelsPerUnit(res); got != 200 {
		t.Errorf("PixelsPerUnit = %v, want 200", got)
	}
}
