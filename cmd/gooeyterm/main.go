// Gooeyterm previews the menu toggle in a truecolor terminal. Each cell shows
// two pixels with an upper half block. Space or Enter toggles the menu; q, Esc
// or Ctrl-C quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/gooey/config"
	"github.com/phanxgames/gooey/motion"
	"github.com/phanxgames/gooey/sdf"
)

const sampleRate = beep.SampleRate(44100)

type preview struct {
	screen   tcell.Screen
	cfg      config.Config
	state    *motion.State
	renderer *sdf.Renderer
	frame    *frameBuffer

	active bool
	start  time.Time
	last   time.Time

	audioInit bool
	mute      bool
}

// maxFrameDelta is the largest step the springs are stable for.
const maxFrameDelta = 0.05

func newPreview(screen tcell.Screen, cfg config.Config, workers int) *preview {
	now := time.Now()
	return &preview{
		screen:   screen,
		cfg:      cfg,
		state:    motion.NewState(cfg.MotionLayout(), cfg.Tuning()),
		renderer: &sdf.Renderer{Material: cfg.SDFMaterial(), Workers: workers},
		frame:    &frameBuffer{},
		start:    now,
		last:     now,
	}
}

func (p *preview) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
	if err == nil {
		p.audioInit = true
	}
	return err
}

// playToggle plays a short rising or falling tone.
func (p *preview) playToggle(opening bool) {
	if !p.audioInit || p.mute {
		return
	}
	freq := 440.0
	if opening {
		freq = 660
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	tone := beep.Take(sampleRate.N(60*time.Millisecond), sine)
	speaker.Play(&effects.Volume{Streamer: tone, Base: 2, Volume: -3})
}

func (p *preview) toggle() {
	p.active = !p.active
	p.playToggle(p.active)
}

// handleInput returns false when the preview should exit.
func (p *preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyEnter:
			p.toggle()
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.toggle()
			case 'm':
				p.mute = !p.mute
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

// tick advances the controller by the wall-clock time since the last tick.
func (p *preview) tick(now time.Time) {
	dt := now.Sub(p.last).Seconds()
	p.last = now
	// Long stalls (a suspended terminal) are clamped so the springs stay stable.
	dt = min(dt, maxFrameDelta)
	p.state.Update(p.active, now.Sub(p.start).Seconds(), dt)
}

func (p *preview) draw(ctx context.Context) error {
	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 1 {
		return nil
	}
	// The bottom row holds the status line.
	w, h := cols, (rows-1)*2
	img := p.frame.resize(w, h)
	u := sdf.Uniforms{
		Spheres: p.state.Spheres(),
		Blend:   p.cfg.Material.Blend,
		View:    fitView(p.state.Layout(), w, h),
	}
	if err := p.renderer.Render(ctx, img, u); err != nil {
		return err
	}
	blit(p.screen, img, p.cfg.Window.Background)

	status := "space: toggle  m: mute  q: quit"
	if p.active {
		status = "open  | " + status
	} else {
		status = "closed | " + status
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		p.screen.SetContent(x, rows-1, r, nil, style)
	}
	p.screen.Show()
	return nil
}

func (p *preview) run(ctx context.Context, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handleInput(ev) {
				return nil
			}
		case now := <-ticker.C:
			p.tick(now)
			if err := p.draw(ctx); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *preview) cleanup() {
	if p.audioInit {
		speaker.Close()
	}
	p.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	fps := flag.Int("fps", 30, "frames per second")
	workers := flag.Int("workers", 0, "shading goroutines (0 uses GOMAXPROCS)")
	quiet := flag.Bool("quiet", false, "disable the toggle sound")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *fps <= 0 {
		log.Fatal("-fps must be positive")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init screen: %v", err)
	}

	p := newPreview(screen, cfg, *workers)
	p.mute = *quiet
	// Audio is optional; the preview runs silently without a device.
	audioErr := p.initAudio()

	err = p.run(context.Background(), *fps)
	p.cleanup()
	if audioErr != nil && !*quiet {
		fmt.Fprintf(os.Stderr, "audio disabled: %v\n", audioErr)
	}
	if err != nil {
		log.Fatal(err)
	}
}
