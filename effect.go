package gooey

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gooey/config"
	"github.com/phanxgames/gooey/motion"
	"github.com/phanxgames/gooey/sdf"
)

// Effect is the top-level object that owns the blob state, the clock, the
// shading canvas, the menu overlay and the automation hooks. Call Update and
// Draw from an ebiten.Game, or hand the effect to Run.
type Effect struct {
	state  *motion.State
	active bool
	clock  float64
	debug  bool

	// Shading
	view        sdf.View
	blend       float64
	material    sdf.Material
	useBackdrop bool
	canvasRect  image.Rectangle
	canvas      *ebiten.Image
	backdrop    *ebiten.Image
	shader      *GlassShader
	imgOp       ebiten.DrawImageOptions

	menu *Menu
	fps  *fpsWidget

	// Input and automation
	pressed         bool
	pressX, pressY  float64
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	// OnToggle, when set, is called after every change of the active flag.
	OnToggle func(active bool)
	// OnSelect, when set, is called when an open menu entry is clicked.
	OnSelect func(index int, item MenuItem)
}

// NewEffect builds an effect from a configuration. The effect starts closed.
func NewEffect(cfg config.Config) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gooey: %w", err)
	}
	items := make([]MenuItem, len(cfg.Menu))
	for i, m := range cfg.Menu {
		items[i] = MenuItem{Icon: m.Icon, Label: m.Label}
	}
	layout := cfg.MotionLayout()
	if len(items) > layout.Count-1 {
		Logger().Warn("gooey: menu entries beyond blob capacity have no blob",
			"items", len(items), "blobs", layout.Count)
	}
	e := &Effect{
		state:         motion.NewState(layout, cfg.Tuning()),
		shader:        NewGlassShader(),
		menu:          NewMenu(items),
		ScreenshotDir: "screenshots",
		canvasRect: image.Rect(cfg.Canvas.X, cfg.Canvas.Y,
			cfg.Canvas.X+cfg.Canvas.Width, cfg.Canvas.Y+cfg.Canvas.Height),
	}
	e.applyLook(cfg)
	return e, nil
}

// applyLook copies the settings that may change while running.
func (e *Effect) applyLook(cfg config.Config) {
	e.view = cfg.SDFView()
	e.blend = cfg.Material.Blend
	e.material = cfg.SDFMaterial()
	e.useBackdrop = cfg.Material.Backdrop
	e.state.SetTuning(cfg.Tuning())
	e.SetDebugMode(cfg.Debug)
}

// ApplyConfig hot-reloads material, view, physics and debug settings. The
// layout and canvas are fixed at construction; changes to them are reported
// and ignored.
func (e *Effect) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("gooey: %w", err)
	}
	if cfg.MotionLayout() != e.state.Layout() {
		Logger().Warn("gooey: layout changes need a restart")
	}
	if r := image.Rect(cfg.Canvas.X, cfg.Canvas.Y, cfg.Canvas.X+cfg.Canvas.Width, cfg.Canvas.Y+cfg.Canvas.Height); r != e.canvasRect {
		Logger().Warn("gooey: canvas changes need a restart")
	}
	e.applyLook(cfg)
	return nil
}

// Active reports the requested menu state.
func (e *Effect) Active() bool { return e.active }

// SetActive requests the open (true) or closed (false) configuration. The
// blobs start moving on the next tick.
func (e *Effect) SetActive(active bool) {
	if active == e.active {
		return
	}
	e.active = active
	Logger().Debug("gooey: toggle", "active", active, "t", e.clock)
	if e.OnToggle != nil {
		e.OnToggle(active)
	}
}

// Toggle flips the active flag.
func (e *Effect) Toggle() { e.SetActive(!e.active) }

// State returns the blob controller. Callers must not mutate it.
func (e *Effect) State() *motion.State { return e.state }

// Menu returns the overlay.
func (e *Effect) Menu() *Menu { return e.menu }

// Clock returns the effect time in seconds.
func (e *Effect) Clock() float64 { return e.clock }

// SetDebugMode enables or disables per-frame timing logs at debug level.
func (e *Effect) SetDebugMode(enabled bool) { e.debug = enabled }

// DebugMode reports whether per-frame timing logs are enabled.
func (e *Effect) DebugMode() bool { return e.debug }

// ShowFPS toggles the FPS widget in the top-left corner.
func (e *Effect) ShowFPS(show bool) {
	if !show {
		e.fps = nil
		return
	}
	if e.fps == nil {
		e.fps = newFPSWidget()
	}
}

// Canvas returns the screen rectangle the effect shades into.
func (e *Effect) Canvas() image.Rectangle { return e.canvasRect }

// Update runs scripted steps, processes input, and advances the blobs and the
// overlay by one tick.
func (e *Effect) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	if !e.processInjectedInput() {
		e.processInput()
	}
	e.step(dt)

	if e.debug {
		e.debugLog(debugStats{updateTime: time.Since(t0)})
	}
}

// step advances the clock, the controller and the overlay.
func (e *Effect) step(dt float64) {
	e.clock += dt
	e.state.Update(e.active, e.clock, dt)
	e.menu.Update(e.active, dt)
	if e.fps != nil {
		e.fps.update(dt)
	}
}

// Uniforms returns the frozen snapshot the shading stage reads this frame.
func (e *Effect) Uniforms() sdf.Uniforms {
	return sdf.Uniforms{
		Resolution: sdf.Vec2{X: float64(e.canvasRect.Dx()), Y: float64(e.canvasRect.Dy())},
		Time:       e.clock,
		Spheres:    e.state.Spheres(),
		Blend:      e.blend,
		View:       e.view,
	}
}

// Material returns the current shading coefficients.
func (e *Effect) Material() sdf.Material { return e.material }

// Draw shades the canvas on the GPU, composites it over screen, draws the
// overlay, and writes any queued screenshots.
func (e *Effect) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.ensureCanvas()
	var backdrop *ebiten.Image
	if e.useBackdrop {
		e.backdrop.Clear()
		e.imgOp.GeoM.Reset()
		e.imgOp.GeoM.Translate(float64(-e.canvasRect.Min.X), float64(-e.canvasRect.Min.Y))
		e.backdrop.DrawImage(screen, &e.imgOp)
		backdrop = e.backdrop
	}

	e.canvas.Clear()
	e.shader.SetUniforms(e.Uniforms(), e.material)
	e.shader.Apply(e.canvas, backdrop)

	e.imgOp.GeoM.Reset()
	e.imgOp.GeoM.Translate(float64(e.canvasRect.Min.X), float64(e.canvasRect.Min.Y))
	screen.DrawImage(e.canvas, &e.imgOp)

	if e.debug {
		stats.shadeTime = time.Since(t0)
		t0 = time.Now()
	}

	e.menu.Draw(screen, e.menuAnchor)
	if e.fps != nil {
		e.fps.draw(screen)
	}

	if e.debug {
		stats.overlayTime = time.Since(t0)
		e.debugLog(stats)
	}

	e.flushScreenshots(screen)
}

func (e *Effect) ensureCanvas() {
	w, h := e.canvasRect.Dx(), e.canvasRect.Dy()
	if e.canvas == nil {
		e.canvas = ebiten.NewImage(w, h)
	}
	if e.useBackdrop && e.backdrop == nil {
		e.backdrop = ebiten.NewImage(w, h)
	}
}

// resolution returns the canvas size as an sdf vector.
func (e *Effect) resolution() sdf.Vec2 {
	return sdf.Vec2{X: float64(e.canvasRect.Dx()), Y: float64(e.canvasRect.Dy())}
}

// WorldToScreen maps a world position to screen pixels.
func (e *Effect) WorldToScreen(wx, wy float64) Vec2 {
	p := e.view.ToPixel(wx, wy, e.resolution())
	return Vec2{X: p.X + float64(e.canvasRect.Min.X), Y: p.Y + float64(e.canvasRect.Min.Y)}
}

// worldToScreenLength converts a world distance to pixels.
func (e *Effect) worldToScreenLength(d float64) float64 {
	return d * e.view.PixelsPerUnit(e.resolution())
}

// menuAnchor places entry i on the open position of child blob i+1. Entries
// beyond the blob capacity continue the same spacing.
func (e *Effect) menuAnchor(i int) menuAnchor {
	l := e.state.Layout()
	return menuAnchor{
		center: e.WorldToScreen(l.BaseX, l.OpenY(i+1)),
		radius: e.worldToScreenLength(l.ChildOpenRadius),
	}
}
