package gooey

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gooey/config"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background Color
	// OnUpdate, when set, runs on the game goroutine before the effect's
	// Update. Returning an error stops the game.
	OnUpdate func() error
	// ExitWhenScriptDone ends the game once an attached test script finishes.
	ExitWhenScriptDone bool
}

// RunConfigFrom returns the window settings of cfg.
func RunConfigFrom(cfg config.Config) RunConfig {
	return RunConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: colorFromConfig(cfg.Window.Background),
	}
}

// gameShell adapts an Effect to ebiten.Game.
type gameShell struct {
	effect *Effect
	cfg    RunConfig
}

func (g *gameShell) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(); err != nil {
			return err
		}
	}
	g.effect.Update()
	if g.cfg.ExitWhenScriptDone && g.effect.ScriptDone() && len(g.effect.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.RGBA())
	g.effect.Draw(screen)
}

func (g *gameShell) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives effect until the window is closed. For full
// control, implement ebiten.Game yourself and call Effect.Update and
// Effect.Draw directly.
func Run(effect *Effect, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("gooey: run: window size must be positive")
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	err := ebiten.RunGame(&gameShell{effect: effect, cfg: cfg})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
