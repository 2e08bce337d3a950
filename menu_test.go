package gooey

import (
	"math"
	"testing"
)

var testItems = []MenuItem{
	{Icon: "a", Label: "One"},
	{Icon: "b", Label: "Two"},
	{Icon: "c", Label: "Three"},
}

// firstFrame returns, per entry, the frame at which pred first held.
func firstFrame(m *Menu, active bool, frames int, pred func(alpha float64) bool) []int {
	first := make([]int, m.Len())
	for i := range first {
		first[i] = -1
	}
	for f := 0; f < frames; f++ {
		m.Update(active, tick)
		for i := range first {
			if first[i] < 0 && pred(m.Alpha(i)) {
				first[i] = f
			}
		}
	}
	return first
}

func TestMenuStartsHidden(t *testing.T) {
	m := NewMenu(testItems)
	m.Update(false, tick)
	for i := 0; i < m.Len(); i++ {
		if m.Alpha(i) != 0 {
			t.Errorf("entry %d alpha = %v", i, m.Alpha(i))
		}
		if m.Offset(i) != menuSlideDistance {
			t.Errorf("entry %d offset = %v", i, m.Offset(i))
		}
	}
}

func TestMenuOpenStagger(t *testing.T) {
	m := NewMenu(testItems)
	first := firstFrame(m, true, 120, func(a float64) bool { return a > 0 })
	for i := 1; i < len(first); i++ {
		if first[i] <= first[i-1] {
			t.Errorf("entry %d appeared at frame %d, not after entry %d (%d)", i, first[i], i-1, first[i-1])
		}
	}
	// Entry 0 waits 0.1s.
	if first[0] < 5 || first[0] > 7 {
		t.Errorf("entry 0 appeared at frame %d, want ~6", first[0])
	}
	for i := 0; i < m.Len(); i++ {
		if m.Alpha(i) != 1 {
			t.Errorf("entry %d alpha = %v, want 1", i, m.Alpha(i))
		}
	}
	if !m.Settled() {
		t.Error("fades not finished")
	}
}

func TestMenuCloseStaggerReversed(t *testing.T) {
	m := NewMenu(testItems)
	for f := 0; f < 120; f++ {
		m.Update(true, tick)
	}
	first := firstFrame(m, false, 120, func(a float64) bool { return a < 1 })
	for i := 0; i < len(first)-1; i++ {
		if first[i] <= first[i+1] {
			t.Errorf("entry %d faded at frame %d, not after entry %d (%d)", i, first[i], i+1, first[i+1])
		}
	}
	for i := 0; i < m.Len(); i++ {
		if m.Alpha(i) != 0 {
			t.Errorf("entry %d alpha = %v, want 0", i, m.Alpha(i))
		}
	}
}

func TestMenuSlideSettles(t *testing.T) {
	m := NewMenu(testItems)
	for f := 0; f < 180; f++ {
		m.Update(true, tick)
	}
	for i := 0; i < m.Len(); i++ {
		if math.Abs(m.Offset(i)) > 0.5 {
			t.Errorf("entry %d offset = %v, want ~0", i, m.Offset(i))
		}
	}
}

func TestMenuReverseMidFade(t *testing.T) {
	m := NewMenu(testItems)
	for f := 0; f < 15; f++ { // 0.25s: entry 0 is mid-fade
		m.Update(true, tick)
	}
	mid := m.Alpha(0)
	if mid <= 0 || mid >= 1 {
		t.Fatalf("entry 0 alpha = %v, want mid-fade", mid)
	}
	m.Update(false, tick)
	// Closing restarts from the current opacity instead of jumping.
	if got := m.Alpha(0); got > mid+1e-6 || got < mid-0.2 {
		t.Errorf("alpha jumped from %v to %v", mid, got)
	}
}

func TestMenuZeroDelta(t *testing.T) {
	m := NewMenu(testItems)
	m.Update(true, 0)
	m.Update(true, -1)
	for i := 0; i < m.Len(); i++ {
		if m.Alpha(i) != 0 {
			t.Errorf("entry %d alpha = %v after zero dt", i, m.Alpha(i))
		}
	}
}
