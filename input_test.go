package gooey

import "testing"

func drainInjected(e *Effect) {
	for e.processInjectedInput() {
	}
}

func TestInjectClickOnToggle(t *testing.T) {
	e := newTestEffect(t)
	b := e.ToggleButton()
	e.InjectClick(b.X, b.Y)
	if len(e.injectQueue) != 2 {
		t.Fatalf("queued %d events, want 2", len(e.injectQueue))
	}
	drainInjected(e)
	if !e.Active() {
		t.Fatal("click on the toggle button should open the menu")
	}
	e.InjectClick(b.X, b.Y)
	drainInjected(e)
	if e.Active() {
		t.Fatal("second click should close the menu")
	}
}

func TestClickOutsideIgnored(t *testing.T) {
	e := newTestEffect(t)
	e.InjectClick(5, 5)
	drainInjected(e)
	if e.Active() {
		t.Error("click outside the button toggled the menu")
	}
}

func TestDragOffButtonIsNotClick(t *testing.T) {
	e := newTestEffect(t)
	b := e.ToggleButton()
	e.InjectPress(b.X, b.Y)
	e.InjectRelease(5, 5)
	drainInjected(e)
	if e.Active() {
		t.Error("press on button and release elsewhere toggled the menu")
	}
}

func TestClosedEntriesNotClickable(t *testing.T) {
	e := newTestEffect(t)
	a := e.menuAnchor(0)
	if got := e.hitTarget(a.center.X, a.center.Y); got != targetNone {
		t.Errorf("hitTarget = %v, want none while closed", got)
	}
}

func TestSelectEntry(t *testing.T) {
	e := newTestEffect(t)
	selected := -1
	var item MenuItem
	e.OnSelect = func(i int, it MenuItem) { selected, item = i, it }

	e.SetActive(true)
	runFor(e, 3)

	a := e.menuAnchor(1)
	e.InjectClick(a.center.X, a.center.Y)
	drainInjected(e)
	if selected != 1 || item.Label != "About" {
		t.Errorf("selected %d %q, want 1 About", selected, item.Label)
	}
	if e.Active() {
		t.Error("selecting an entry should close the menu")
	}
}
