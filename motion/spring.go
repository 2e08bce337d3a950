package motion

import "math"

// Spring is a stiffness/damping pair for one integration step.
type Spring struct {
	Stiffness float64
	Damping   float64
}

// Step advances position x with velocity v toward target by dt seconds and
// returns the new position and velocity. The exponential decay keeps damping
// independent of the frame rate. dt == 0 returns the inputs unchanged.
func (s Spring) Step(x, v, target, dt float64) (float64, float64) {
	if dt <= 0 {
		return x, v
	}
	v += (target - x) * s.Stiffness * dt
	v *= math.Exp(-s.Damping * dt)
	x += v * dt
	return x, v
}

// Gains interpolates a position spring between two ends by a progress ratio
// in [0, 1].
type Gains struct {
	StiffnessMin  float64
	StiffnessSpan float64
	DampingMin    float64
	DampingSpan   float64
}

// Tuning holds every coefficient of the blob animation.
type Tuning struct {
	Open  Gains // position gains while opening
	Close Gains // position gains while closing

	RadiusStiffness float64
	RadiusDamping   float64

	// TravelFactor scales Layout.Spacing into the distance over which the
	// position gains ramp.
	TravelFactor float64
}

// DefaultTuning returns gains that stay stable for frame deltas up to 50ms.
func DefaultTuning() Tuning {
	return Tuning{
		Open:            Gains{StiffnessMin: 25, StiffnessSpan: 60, DampingMin: 6, DampingSpan: 6},
		Close:           Gains{StiffnessMin: 40, StiffnessSpan: 60, DampingMin: 6, DampingSpan: 6},
		RadiusStiffness: 60,
		RadiusDamping:   10,
		TravelFactor:    2,
	}
}

// positionSpring derives this frame's position gains from the remaining
// distance to the final target. Opening starts soft and firms up as the blob
// arrives; closing starts firm and relaxes its damping with distance left.
func (t *Tuning) positionSpring(opening bool, remaining, travel float64) Spring {
	ratio := 1.0
	if travel > 0 {
		ratio = math.Min(remaining/travel, 1)
	}
	if opening {
		p := 1 - ratio
		return Spring{
			Stiffness: t.Open.StiffnessMin + p*t.Open.StiffnessSpan,
			Damping:   t.Open.DampingMin + p*t.Open.DampingSpan,
		}
	}
	p := ratio
	return Spring{
		Stiffness: t.Close.StiffnessMin + p*t.Close.StiffnessSpan,
		Damping:   t.Close.DampingMin + (1-p)*t.Close.DampingSpan,
	}
}

func (t *Tuning) radiusSpring() Spring {
	return Spring{Stiffness: t.RadiusStiffness, Damping: t.RadiusDamping}
}
