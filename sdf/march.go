package sdf

// Hit is the outcome of marching one ray.
type Hit struct {
	OK       bool    // surface found
	Point    Vec3    // last sample position
	Distance float64 // distance travelled along the ray
	Steps    int     // field evaluations performed
}

// March sphere-traces a ray from origin along the unit direction dir. The loop
// is bounded by MaxSteps and MaxDistance, so it always terminates.
func (f *Field) March(origin, dir Vec3) Hit {
	var h Hit
	pos := origin
	for h.Steps < MaxSteps {
		d := f.Distance(pos)
		h.Steps++
		if d < Epsilon {
			h.OK = true
			break
		}
		if h.Distance > MaxDistance {
			break
		}
		h.Distance += d
		pos = origin.Add(dir.Scale(h.Distance))
	}
	h.Point = pos
	return h
}
