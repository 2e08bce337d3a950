package motion

import (
	"math"

	"github.com/phanxgames/gooey/sdf"
)

// Blob is the animated state of one slot.
type Blob struct {
	Role      Role
	Position  sdf.Vec3 // x fixed to Layout.BaseX, z fixed to 0
	Radius    float64  // >= 0; below sdf.Epsilon the blob is not drawn
	VelocityY float64
	VelocityR float64
}

// State is the animation state of the whole effect.
type State struct {
	Active          bool    // last seen open/closed flag
	TransitionStart float64 // clock time of the last flip
	Blobs           []Blob

	layout Layout
	tuning Tuning
}

// NewState returns a closed state: the parent at its closed radius, children
// collapsed to zero radius. A layout count outside [1, MaxBlobs] is clamped.
func NewState(l Layout, t Tuning) *State {
	l.Count = min(max(l.Count, 1), MaxBlobs)
	s := &State{
		Blobs:  make([]Blob, l.Count),
		layout: l,
		tuning: t,
	}
	for i := range s.Blobs {
		s.Blobs[i] = Blob{
			Role:     l.RoleOf(i),
			Position: sdf.Vec3{X: l.BaseX, Y: l.ClosedY()},
			Radius:   l.ClosedRadius(i),
		}
	}
	return s
}

// Layout returns the layout the state was built with.
func (s *State) Layout() Layout { return s.layout }

// Tuning returns the current coefficients.
func (s *State) Tuning() Tuning { return s.tuning }

// SetTuning replaces the coefficients. Positions and velocities are kept.
func (s *State) SetTuning(t Tuning) { s.tuning = t }

// Update advances the animation by one frame. now is the animation clock and
// must not decrease; dt is the frame delta, negative values count as zero.
func (s *State) Update(active bool, now, dt float64) {
	if active != s.Active {
		s.Active = active
		s.TransitionStart = now
		for i := range s.Blobs {
			s.Blobs[i].VelocityY = 0
			s.Blobs[i].VelocityR = 0
		}
	}
	if dt < 0 {
		dt = 0
	}

	elapsed := now - s.TransitionStart
	travel := s.layout.Spacing * s.tuning.TravelFactor
	rs := s.tuning.radiusSpring()

	for i := range s.Blobs {
		b := &s.Blobs[i]
		finalY, finalR := s.target(i)

		targetY, targetR := finalY, finalR
		if elapsed < s.layout.Delay(i) {
			targetY, targetR = b.Position.Y, b.Radius
		}

		ps := s.tuning.positionSpring(active, math.Abs(finalY-b.Position.Y), travel)
		b.Position.Y, b.VelocityY = ps.Step(b.Position.Y, b.VelocityY, targetY, dt)
		b.Position.X = s.layout.BaseX
		b.Radius, b.VelocityR = rs.Step(b.Radius, b.VelocityR, targetR, dt)
		if b.Radius < 0 {
			b.Radius = 0
		}
	}
}

// target returns the final position and radius of slot i for the current flag.
func (s *State) target(i int) (y, r float64) {
	if s.Active {
		return s.layout.OpenY(i), s.layout.OpenRadius(i)
	}
	return s.layout.ClosedY(), s.layout.ClosedRadius(i)
}

// Settled reports whether every blob is within tol of its final target and
// moving slower than tol.
func (s *State) Settled(tol float64) bool {
	for i := range s.Blobs {
		b := &s.Blobs[i]
		y, r := s.target(i)
		if math.Abs(b.Position.Y-y) > tol || math.Abs(b.Radius-r) > tol ||
			math.Abs(b.VelocityY) > tol || math.Abs(b.VelocityR) > tol {
			return false
		}
	}
	return true
}

// Spheres snapshots the blobs for the shading stage. Unused slots are zero
// and therefore absent.
func (s *State) Spheres() [sdf.MaxSpheres]sdf.Sphere {
	var out [sdf.MaxSpheres]sdf.Sphere
	for i := range s.Blobs {
		if i >= len(out) {
			break
		}
		out[i] = sdf.Sphere{Center: s.Blobs[i].Position, Radius: math.Max(0, s.Blobs[i].Radius)}
	}
	return out
}
