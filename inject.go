package gooey

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, matching what a screenshot shows.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The event
// is consumed on the next Update.
func (e *Effect) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (e *Effect) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (e *Effect) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// ToggleButton returns the screen position of the toggle button (the parent
// blob's resting center).
func (e *Effect) ToggleButton() Vec2 {
	l := e.state.Layout()
	return e.WorldToScreen(l.BaseX, l.ClosedY())
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real input
// should be skipped).
func (e *Effect) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	e.processPointer(evt.screenX, evt.screenY, evt.pressed)
	return true
}
