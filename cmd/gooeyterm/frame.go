package main

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/gooey/config"
	"github.com/phanxgames/gooey/motion"
	"github.com/phanxgames/gooey/sdf"
)

// frameBuffer reuses one image across frames while the terminal size holds.
type frameBuffer struct {
	img *image.NRGBA
}

func (f *frameBuffer) resize(w, h int) *image.NRGBA {
	if f.img == nil || f.img.Rect.Dx() != w || f.img.Rect.Dy() != h {
		f.img = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	return f.img
}

// viewMargin is the free space kept around the blobs, in world units.
const viewMargin = 0.2

// fitView returns a view that shows the whole open column of blobs in a
// w x h pixel image.
func fitView(l motion.Layout, w, h int) sdf.View {
	top := l.BaseY + max(l.ParentOpenRadius, l.ParentClosedRadius)
	bottom := l.BaseY
	if l.Count > 1 {
		bottom = l.OpenY(l.Count-1) - l.ChildOpenRadius
	}
	span := top - bottom + 2*viewMargin
	scale := span
	if w > 0 && h > 0 {
		// Scale spans the shorter side; fit the column to the height.
		scale = span * float64(min(w, h)) / float64(h)
	}
	return sdf.View{
		Center: sdf.Vec2{X: l.BaseX, Y: (top + bottom) / 2},
		Scale:  scale,
	}
}

// over composites a straight-alpha pixel onto an opaque background.
func over(c [4]uint8, bg config.Color) tcell.Color {
	a := float64(c[3]) / 255
	mix := func(v uint8, b float64) int32 {
		return int32(float64(v)*a + clampByte(b)*(1-a) + 0.5)
	}
	return tcell.NewRGBColor(mix(c[0], bg.R), mix(c[1], bg.G), mix(c[2], bg.B))
}

func clampByte(v float64) float64 {
	return min(max(v, 0), 1) * 255
}

// blit draws img onto the screen, two pixel rows per cell: the upper pixel is
// the foreground of '▀' and the lower pixel is the background.
func blit(screen tcell.Screen, img *image.NRGBA, bg config.Color) {
	b := img.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			top := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			bot := img.PixOffset(b.Min.X+x, b.Min.Y+y+1)
			var tp, bp [4]uint8
			copy(tp[:], img.Pix[top:top+4])
			copy(bp[:], img.Pix[bot:bot+4])
			style := tcell.StyleDefault.Foreground(over(tp, bg)).Background(over(bp, bg))
			screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
}
