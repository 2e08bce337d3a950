package gooey

import "time"

// debugStats holds per-frame timings. Only populated when debug mode is on.
type debugStats struct {
	updateTime  time.Duration
	shadeTime   time.Duration
	overlayTime time.Duration
}

// debugLog emits the stats at debug level.
func (e *Effect) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	log := Logger()
	if stats.updateTime > 0 {
		b := e.state.Blobs[0]
		log.Debug("gooey: update",
			"t", e.clock,
			"active", e.active,
			"parent_y", b.Position.Y,
			"parent_r", b.Radius,
			"settled", e.state.Settled(1e-3),
			"took", stats.updateTime)
		return
	}
	log.Debug("gooey: draw",
		"shade", stats.shadeTime,
		"overlay", stats.overlayTime,
		"total", stats.shadeTime+stats.overlayTime)
}
