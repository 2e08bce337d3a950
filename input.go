package gooey

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// toggleKeys flip the menu when pressed.
var toggleKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}

// processInput is called from Effect.Update to handle keyboard, mouse and
// touch input.
func (e *Effect) processInput() {
	for _, k := range toggleKeys {
		if inpututil.IsKeyJustPressed(k) {
			e.Toggle()
			return
		}
	}

	mx, my := ebiten.CursorPosition()
	e.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		e.processPointer(float64(tx), float64(ty), true)
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		tx, ty := inpututil.TouchPositionInPreviousTick(id)
		e.processPointer(float64(tx), float64(ty), false)
	}
}

// processPointer runs the click state machine for screen position (x, y). A
// click is a press followed by a release over the same target.
func (e *Effect) processPointer(x, y float64, pressed bool) {
	switch {
	case pressed && !e.pressed:
		e.pressed = true
		e.pressX, e.pressY = x, y
	case !pressed && e.pressed:
		e.pressed = false
		if e.hitTarget(e.pressX, e.pressY) == e.hitTarget(x, y) {
			e.click(x, y)
		}
	}
}

// click activates whatever is under (x, y): the toggle button flips the menu
// and an open entry is selected.
func (e *Effect) click(x, y float64) {
	t := e.hitTarget(x, y)
	switch {
	case t == targetToggle:
		e.Toggle()
	case t >= 0:
		i := int(t)
		if e.OnSelect != nil {
			e.OnSelect(i, e.menu.Item(i))
		}
		e.SetActive(false)
	}
}

type hitTarget int

const (
	targetNone   hitTarget = -2
	targetToggle hitTarget = -1
	// Non-negative targets are menu entry indices.
)

// hitTarget returns what lies under screen position (x, y). The toggle button
// is the parent blob; its hit radius never drops below the closed radius so
// it stays clickable mid-animation.
func (e *Effect) hitTarget(x, y float64) hitTarget {
	l := e.state.Layout()
	parent := e.state.Blobs[0]
	c := e.WorldToScreen(parent.Position.X, parent.Position.Y)
	r := e.worldToScreenLength(math.Max(parent.Radius, l.ParentClosedRadius))
	if math.Hypot(x-c.X, y-c.Y) <= r {
		return targetToggle
	}
	if !e.active {
		return targetNone
	}
	for i := 0; i < e.menu.Len(); i++ {
		if e.menu.Alpha(i) < 0.5 {
			continue
		}
		a := e.menuAnchor(i)
		if math.Hypot(x-a.center.X, y-a.center.Y) <= a.radius {
			return hitTarget(i)
		}
	}
	return targetNone
}
