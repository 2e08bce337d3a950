package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/phanxgames/gooey/motion"
	"github.com/phanxgames/gooey/sdf"
)

// physicsStep is the fixed simulation step. Output frames sample the state
// between steps.
const physicsStep = 1.0 / 120

// parseToggles parses a comma-separated list of times in seconds at which the
// menu flips. The result is sorted.
func parseToggles(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("toggle time %q: %w", p, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("toggle time %q must be a non-negative number", p)
		}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out, nil
}

// timeline drives a controller through scripted toggles at a fixed step.
type timeline struct {
	state   *motion.State
	toggles []float64
	next    int
	active  bool
	now     float64
}

func newTimeline(state *motion.State, toggles []float64) *timeline {
	return &timeline{state: state, toggles: toggles}
}

// advanceTo simulates until the clock reaches t.
func (tl *timeline) advanceTo(t float64) {
	for tl.now+physicsStep <= t+1e-9 {
		tl.now += physicsStep
		for tl.next < len(tl.toggles) && tl.toggles[tl.next] <= tl.now {
			tl.active = !tl.active
			tl.next++
		}
		tl.state.Update(tl.active, tl.now, physicsStep)
	}
}

// frameTimes returns the sample time of every output frame.
func frameTimes(duration float64, fps int) []float64 {
	if duration <= 0 || fps <= 0 {
		return nil
	}
	n := int(math.Ceil(duration*float64(fps) - 1e-9))
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / float64(fps)
	}
	return times
}

// uniforms snapshots the controller for shading.
func (tl *timeline) uniforms(blend float64, view sdf.View, bg sdf.Backdrop) sdf.Uniforms {
	return sdf.Uniforms{
		Time:       tl.now,
		Spheres:    tl.state.Spheres(),
		Blend:      blend,
		View:       view,
		Background: bg,
	}
}
