package motion

import (
	"math"
	"math/rand/v2"
	"testing"
)

const frame = 1.0 / 60

// simulate calls Update once per frame for the given duration, starting one
// frame after *now, and leaves *now at the last clock value used.
func simulate(s *State, active bool, now *float64, seconds float64) {
	n := int(math.Round(seconds / frame))
	for i := 0; i < n; i++ {
		*now += frame
		s.Update(active, *now, frame)
	}
}

func newDefaultState() *State {
	return NewState(DefaultLayout(), DefaultTuning())
}

func TestNewStateIsClosed(t *testing.T) {
	s := newDefaultState()
	l := s.Layout()
	if len(s.Blobs) != MaxBlobs {
		t.Fatalf("len(Blobs) = %d, want %d", len(s.Blobs), MaxBlobs)
	}
	if s.Active {
		t.Error("new state is active")
	}
	for i, b := range s.Blobs {
		if b.Position.X != l.BaseX || b.Position.Y != l.ClosedY() || b.Position.Z != 0 {
			t.Errorf("blob %d position = %+v, want closed", i, b.Position)
		}
		if want := l.ClosedRadius(i); b.Radius != want {
			t.Errorf("blob %d radius = %v, want %v", i, b.Radius, want)
		}
		if want := l.RoleOf(i); b.Role != want {
			t.Errorf("blob %d role = %v, want %v", i, b.Role, want)
		}
	}
	if s.Blobs[0].Radius != 0.28 {
		t.Errorf("parent radius = %v, want 0.28", s.Blobs[0].Radius)
	}
}

func TestConvergesToOpenAndClosed(t *testing.T) {
	for _, active := range []bool{true, false} {
		s := newDefaultState()
		now := 0.0
		if !active {
			simulate(s, true, &now, 5)
		}
		simulate(s, active, &now, 5)

		l := s.Layout()
		for i, b := range s.Blobs {
			wantY, wantR := l.ClosedY(), l.ClosedRadius(i)
			if active {
				wantY, wantR = l.OpenY(i), l.OpenRadius(i)
			}
			if math.Abs(b.Position.Y-wantY) > 1e-3 {
				t.Errorf("active=%v blob %d y = %v, want %v", active, i, b.Position.Y, wantY)
			}
			if math.Abs(b.Radius-wantR) > 1e-3 {
				t.Errorf("active=%v blob %d radius = %v, want %v", active, i, b.Radius, wantR)
			}
			if math.Abs(b.VelocityY) > 1e-3 || math.Abs(b.VelocityR) > 1e-3 {
				t.Errorf("active=%v blob %d velocity = (%v, %v), want ~0", active, i, b.VelocityY, b.VelocityR)
			}
		}
		if !s.Settled(1e-3) {
			t.Errorf("active=%v: Settled(1e-3) = false after 5s", active)
		}
	}
}

func TestConvergesAtCoarseFrameRates(t *testing.T) {
	for _, dt := range []float64{1.0 / 30, 0.05} {
		s := newDefaultState()
		now := 0.0
		for i := 0; i < int(math.Round(5/dt)); i++ {
			now += dt
			s.Update(true, now, dt)
		}
		if !s.Settled(1e-3) {
			t.Errorf("dt=%v: not settled after 5s: %+v", dt, s.Blobs)
		}
	}
}

func TestRadiusNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	s := newDefaultState()
	now := 0.0
	active := false
	for i := 0; i < 5000; i++ {
		if rng.IntN(40) == 0 {
			active = !active
		}
		dt := rng.Float64() * 0.05
		now += dt
		s.Update(active, now, dt)
		for j, b := range s.Blobs {
			if b.Radius < 0 {
				t.Fatalf("step %d blob %d radius = %v", i, j, b.Radius)
			}
		}
	}
}

func TestZeroDeltaIsNoOp(t *testing.T) {
	s := newDefaultState()
	now := 0.0
	simulate(s, true, &now, 0.5) // mid-animation, velocities non-zero

	before := append([]Blob(nil), s.Blobs...)
	s.Update(true, now, 0)
	for i := range before {
		if s.Blobs[i] != before[i] {
			t.Errorf("blob %d changed on dt=0: %+v -> %+v", i, before[i], s.Blobs[i])
		}
	}

	s.Update(true, now, -1)
	for i := range before {
		if s.Blobs[i] != before[i] {
			t.Errorf("blob %d changed on negative dt: %+v -> %+v", i, before[i], s.Blobs[i])
		}
	}
}

func TestTransitionResetsVelocities(t *testing.T) {
	s := newDefaultState()
	now := 0.0
	simulate(s, true, &now, 0.7)

	moving := false
	for _, b := range s.Blobs {
		if b.VelocityY != 0 || b.VelocityR != 0 {
			moving = true
		}
	}
	if !moving {
		t.Fatal("expected non-zero velocities mid-animation")
	}

	s.Update(false, now, 0)
	if s.Active {
		t.Error("Active not updated")
	}
	if s.TransitionStart != now {
		t.Errorf("TransitionStart = %v, want %v", s.TransitionStart, now)
	}
	for i, b := range s.Blobs {
		if b.VelocityY != 0 || b.VelocityR != 0 {
			t.Errorf("blob %d velocity = (%v, %v) after flip, want 0", i, b.VelocityY, b.VelocityR)
		}
	}
}

func TestStaggeredOnset(t *testing.T) {
	s := newDefaultState()
	l := s.Layout()
	start := make([]float64, len(s.Blobs))
	startR := make([]float64, len(s.Blobs))
	for i, b := range s.Blobs {
		start[i] = b.Position.Y
		startR[i] = b.Radius
	}

	now := 1.0
	s.Update(true, now, frame)
	transition := now
	if s.Blobs[0].Radius == startR[0] {
		t.Error("parent did not start growing on the transition frame")
	}

	for now < transition+1 {
		now += frame
		s.Update(true, now, frame)
		for i := 1; i < len(s.Blobs); i++ {
			b := s.Blobs[i]
			if now-transition < l.Delay(i) {
				if b.Position.Y != start[i] || b.Radius != startR[i] {
					t.Fatalf("blob %d moved at t+%.3f before its %.1fs delay", i, now-transition, l.Delay(i))
				}
			}
		}
	}
	for i := 1; i < len(s.Blobs); i++ {
		if s.Blobs[i].Radius == startR[i] || s.Blobs[i].Position.Y == start[i] {
			t.Errorf("blob %d never started moving", i)
		}
	}
}

func TestScenarioOpen(t *testing.T) {
	s := newDefaultState()
	now := 0.0
	simulate(s, false, &now, 0.1)
	simulate(s, true, &now, 2)

	l := s.Layout()
	want := []float64{0.38, 0.30, 0.30, 0.30}
	for i, b := range s.Blobs {
		if math.Abs(b.Radius-want[i]) > 0.01 {
			t.Errorf("blob %d radius = %v, want ~%v", i, b.Radius, want[i])
		}
		if math.Abs(b.Position.Y-l.OpenY(i)) > 0.01 {
			t.Errorf("blob %d y = %v, want ~%v", i, b.Position.Y, l.OpenY(i))
		}
	}
}

func TestScenarioClose(t *testing.T) {
	s := newDefaultState()
	now := 0.0
	simulate(s, true, &now, 5)
	simulate(s, false, &now, 2)

	l := s.Layout()
	for i, b := range s.Blobs {
		if i > 0 && b.Radius > 0.01 {
			t.Errorf("blob %d radius = %v, want ~0", i, b.Radius)
		}
		if math.Abs(b.Position.Y-l.ClosedY()) > 0.01 {
			t.Errorf("blob %d y = %v, want ~%v", i, b.Position.Y, l.ClosedY())
		}
	}
	if math.Abs(s.Blobs[0].Radius-0.28) > 0.01 {
		t.Errorf("parent radius = %v, want ~0.28", s.Blobs[0].Radius)
	}
}

func TestSpheresSnapshot(t *testing.T) {
	s := NewState(LayoutForItems(1), DefaultTuning())
	sp := s.Spheres()
	if len(s.Blobs) != 2 {
		t.Fatalf("len(Blobs) = %d, want 2", len(s.Blobs))
	}
	if sp[0].Radius != 0.28 || sp[0].Center != s.Blobs[0].Position {
		t.Errorf("parent sphere = %+v", sp[0])
	}
	for i := 1; i < len(sp); i++ {
		if !sp[i].Absent() {
			t.Errorf("sphere %d = %+v, want absent", i, sp[i])
		}
	}

	// The snapshot is a copy.
	sp[0].Radius = 5
	if s.Blobs[0].Radius == 5 {
		t.Error("snapshot aliases state")
	}
}

func TestCloseOvershootIsBounded(t *testing.T) {
	// The closing gains are underdamped: children swing past the closed
	// position once or twice, then settle.
	for _, dt := range []float64{1.0 / 120, frame, 1.0 / 30, 0.05} {
		s := newDefaultState()
		now := 0.0
		steps := int(math.Round(5 / dt))
		for i := 0; i < steps; i++ {
			now += dt
			s.Update(true, now, dt)
		}

		l := s.Layout()
		closedY := l.ClosedY()
		var overshoot [MaxBlobs]float64
		var crossings, sign [MaxBlobs]int
		for i := 0; i < steps; i++ {
			now += dt
			s.Update(false, now, dt)
			for j, b := range s.Blobs {
				e := b.Position.Y - closedY
				overshoot[j] = math.Max(overshoot[j], e)
				sg := 0
				if e > 1e-3 {
					sg = 1
				} else if e < -1e-3 {
					sg = -1
				}
				if sg != 0 {
					if sign[j] != 0 && sg != sign[j] {
						crossings[j]++
					}
					sign[j] = sg
				}
			}
		}

		if overshoot[0] > 1e-6 {
			t.Errorf("dt=%v: parent overshoots by %v", dt, overshoot[0])
		}
		for j := 1; j < l.Count; j++ {
			if overshoot[j] > 0.85 {
				t.Errorf("dt=%v: blob %d overshoots by %v", dt, j, overshoot[j])
			}
			if crossings[j] > 3 {
				t.Errorf("dt=%v: blob %d crossed the closed position %d times", dt, j, crossings[j])
			}
		}
		if !s.Settled(1e-3) {
			t.Errorf("dt=%v: not settled 5s after closing: %+v", dt, s.Blobs)
		}
	}
}
