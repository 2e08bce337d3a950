// Gooeyrender renders the menu toggle animation on the CPU, without a window,
// to numbered PNG frames or a single animated GIF.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/phanxgames/gooey/config"
	"github.com/phanxgames/gooey/motion"
	"github.com/phanxgames/gooey/sdf"
)

type options struct {
	configPath string
	out        string
	format     string
	duration   float64
	fps        int
	toggles    string
	workers    int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&opts.out, "out", "gooey.gif", "output GIF file, or directory for PNG frames")
	flag.StringVar(&opts.format, "format", "gif", "output format: gif or png")
	flag.Float64Var(&opts.duration, "duration", 4, "animation length in seconds")
	flag.IntVar(&opts.fps, "fps", 30, "output frames per second")
	flag.StringVar(&opts.toggles, "toggle", "0.25,2.25", "comma-separated times in seconds at which the menu flips")
	flag.IntVar(&opts.workers, "workers", 0, "shading goroutines (0 uses GOMAXPROCS)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.format != "gif" && opts.format != "png" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	toggles, err := parseToggles(opts.toggles)
	if err != nil {
		return err
	}
	times := frameTimes(opts.duration, opts.fps)
	if len(times) == 0 {
		return fmt.Errorf("nothing to render: duration %v at %d fps", opts.duration, opts.fps)
	}

	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	bounds := image.Rect(0, 0, w, h)
	background := image.NewNRGBA(bounds)
	bg := cfg.Window.Background
	draw.Draw(background, bounds, image.NewUniform(nrgba(bg)), image.Point{}, draw.Src)
	var backdrop sdf.Backdrop
	if cfg.Material.Backdrop {
		drawStripes(background, bg)
		backdrop = sdf.ImageBackdrop{Image: background}
	}

	renderer := &sdf.Renderer{Material: cfg.SDFMaterial(), Workers: opts.workers}
	tl := newTimeline(motion.NewState(cfg.MotionLayout(), cfg.Tuning()), toggles)
	glass := image.NewNRGBA(bounds)

	var frames []*image.Paletted
	var delays []int
	delay := int(math.Round(100 / float64(opts.fps)))

	if opts.format == "png" {
		if err := os.MkdirAll(opts.out, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
	}

	start := time.Now()
	for i, t := range times {
		tl.advanceTo(t)
		if err := renderer.Render(ctx, glass, tl.uniforms(cfg.Material.Blend, cfg.SDFView(), backdrop)); err != nil {
			return fmt.Errorf("render frame %d: %w", i, err)
		}
		frame := image.NewNRGBA(bounds)
		draw.Draw(frame, bounds, background, image.Point{}, draw.Src)
		draw.Draw(frame, bounds, glass, image.Point{}, draw.Over)

		switch opts.format {
		case "png":
			path := filepath.Join(opts.out, fmt.Sprintf("frame_%04d.png", i))
			if err := writePNG(path, frame); err != nil {
				return err
			}
		case "gif":
			pal := image.NewPaletted(bounds, palette.Plan9)
			draw.FloydSteinberg.Draw(pal, bounds, frame, image.Point{})
			frames = append(frames, pal)
			delays = append(delays, delay) // Delay in 10ms units.
		}
		log.Printf("Rendered frame %d/%d", i+1, len(times))
	}

	if opts.format == "gif" {
		if err := writeGIF(opts.out, frames, delays); err != nil {
			return err
		}
	}
	log.Printf("Wrote %d frames to %q in %v", len(times), opts.out, time.Since(start).Round(time.Millisecond))
	return nil
}

func nrgba(c config.Color) color.NRGBA {
	b := func(v float64) uint8 { return uint8(math.Min(math.Max(v, 0), 1)*255 + 0.5) }
	return color.NRGBA{R: b(c.R), G: b(c.G), B: b(c.B), A: b(c.A)}
}

// drawStripes paints diagonal stripes over img so refraction has something to
// bend.
func drawStripes(img *image.NRGBA, base config.Color) {
	light := config.Color{R: base.R + 0.25, G: base.G + 0.25, B: base.B + 0.3, A: base.A}
	c := nrgba(light)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ((x+y)/16)%2 == 0 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeGIF(path string, frames []*image.Paletted, delays []int) error {
	out := &gif.GIF{
		Image:     frames,
		Delay:     delays,
		LoopCount: 0, // Infinite loop.
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
