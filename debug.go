package halo

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Stats holds the engine's lifetime counters. Steps counts every Step call
// in a running tier; Frames and Skips split those into ticks that rendered
// and ticks the cadence throttle swallowed.
type Stats struct {
	Steps      uint64
	Frames     uint64
	Skips      uint64
	Shockwaves uint64
}

// SetDebugMode enables or disables debug mode. When enabled, the engine
// logs tier changes and a once-per-simulated-second stats line to stderr,
// and use-after-dispose panics with a descriptive message instead of
// failing somewhere inside the render pass.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// debugf prints an engine event to stderr. No-op unless debug mode is on.
func (e *Engine) debugf(format string, args ...any) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[halo] "+format+"\n", args...)
}

// logStats prints the periodic stats line.
func (e *Engine) logStats() {
	_, _ = fmt.Fprintf(os.Stderr,
		"[halo] tier: %s | steps: %d | frames: %d | skipped: %d | waves: %d | active waves: %d\n",
		e.tier, e.stats.Steps, e.stats.Frames, e.stats.Skips, e.stats.Shockwaves, e.waves.count)
}

// StatsOverlay renders a small live stats readout for an engine. Draw its
// Image in a corner of the screen and call Update once per frame; the text
// refreshes every ~0.5 seconds to stay readable.
type StatsOverlay struct {
	engine *Engine
	img    *ebiten.Image
	accum  float64
}

// NewStatsOverlay creates an overlay bound to the given engine.
func NewStatsOverlay(e *Engine) *StatsOverlay {
	// 140x48 fits four DebugPrint lines.
	return &StatsOverlay{
		engine: e,
		img:    ebiten.NewImage(140, 48),
	}
}

// Update refreshes the overlay text at most twice a second.
func (o *StatsOverlay) Update(dt float64) {
	o.accum += dt
	if o.accum < 0.5 {
		return
	}
	o.accum = 0

	o.img.Clear()
	// Semi-transparent background for readability.
	o.img.Fill(color.RGBA{0, 0, 0, 128})

	st := o.engine.Stats()
	ebitenutil.DebugPrint(o.img, fmt.Sprintf(
		"FPS: %.1f\ntier: %s\nframes: %d\nskipped: %d",
		ebiten.ActualFPS(), o.engine.Tier(), st.Frames, st.Skips))
}

// Image returns the overlay image for the host to draw.
func (o *StatsOverlay) Image() *ebiten.Image {
	return o.img
}
