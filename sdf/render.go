package sdf

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const defaultBandHeight = 16

// Renderer evaluates Shade for every pixel of an image on the CPU. Bands of
// rows are dispatched to a bounded set of goroutines; each band writes only
// its own rows, so no locking is needed.
type Renderer struct {
	Material Material

	// Workers caps concurrent bands. Zero or negative uses GOMAXPROCS.
	Workers int

	// BandHeight is the number of rows per task. Zero uses 16.
	BandHeight int
}

// NewRenderer returns a renderer with the default material.
func NewRenderer() *Renderer {
	return &Renderer{Material: DefaultMaterial()}
}

// Render shades every pixel of dst. The resolution in u is replaced with the
// size of dst. Cancelling ctx stops dispatching new bands; rows already shaded
// are left in place and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context, dst *image.NRGBA, u Uniforms) error {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	u.Resolution = Vec2{float64(w), float64(h)}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := r.BandHeight
	if band <= 0 {
		band = defaultBandHeight
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < h; y0 += band {
		if gctx.Err() != nil {
			break
		}
		y1 := min(y0+band, h)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.shadeRows(dst, u, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// shadeRows fills rows [y0, y1) of dst, relative to its bounds.
func (r *Renderer) shadeRows(dst *image.NRGBA, u Uniforms, y0, y1 int) {
	b := dst.Bounds()
	for y := y0; y < y1; y++ {
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < b.Dx(); x++ {
			c := Shade(float64(x)+0.5, float64(y)+0.5, u, r.Material).NRGBA()
			px := dst.Pix[off : off+4 : off+4]
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
			off += 4
		}
	}
}
