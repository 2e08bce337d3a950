package gooey

import (
	"image/color"

	"github.com/phanxgames/gooey/config"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default overlay text color.
var ColorWhite = Color{1, 1, 1, 1}

// colorFromConfig converts a parsed config color.
func colorFromConfig(c config.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA returns the premultiplied 8-bit color for image.Fill.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector in screen pixels.
type Vec2 struct {
	X, Y float64
}
