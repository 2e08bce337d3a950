// Package gooey is a liquid-glass menu toggle for [Ebitengine].
//
// A parent blob acts as the toggle button. Opening the menu drops up to three
// child blobs out of it one after another; the blobs are merged with a smooth
// minimum and ray-marched as glass, so they stretch and pinch like liquid as
// they separate and rejoin.
//
// The work is split in three layers:
//
//   - [github.com/phanxgames/gooey/motion] holds the spring-damper blob
//     controller. It is plain Go with no rendering dependency.
//   - [github.com/phanxgames/gooey/sdf] is the distance field, the ray
//     marcher and the glass shading model, plus a parallel CPU renderer.
//   - This package runs the same shading as a Kage shader, draws the menu
//     labels, and wires input and automation.
//
// # Quick start
//
//	cfg := config.Default()
//	effect, err := gooey.NewEffect(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	gooey.Run(effect, gooey.RunConfigFrom(cfg))
//
// For full control, implement [ebiten.Game] yourself and call
// [Effect.Update] and [Effect.Draw] directly:
//
//	type Game struct{ effect *gooey.Effect }
//
//	func (g *Game) Update() error              { g.effect.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)       { g.effect.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Input
//
// Space or Enter toggles the menu, as does a click on the parent blob.
// Clicking an open entry calls [Effect.OnSelect] and closes the menu.
// [Effect.SetActive] and [Effect.Toggle] drive it from code.
//
// # Automation
//
// [LoadTestScript] reads a JSON list of steps (toggle, open, close, click,
// wait, screenshot). Attach it with [Effect.SetTestRunner]; screenshots are
// written to [Effect.ScreenshotDir].
//
// # Logging
//
// The package is silent by default. Pass a *slog.Logger to [SetLogger] to
// see warnings, and enable debug mode for per-frame timings.
//
// [Ebitengine]: https://ebitengine.org
package gooey
