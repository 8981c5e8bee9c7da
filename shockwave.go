package halo

import "github.com/tanema/gween/ease"

// Shockwave tuning. The pool is a fixed array so steady-state spawning and
// pruning never touches the heap.
const (
	maxShockwaves  = 3
	shockwaveLife  = 0.5  // seconds from spawn to expiry
	shockwaveWidth = 2.5  // ring stroke width in pixels
	shockwaveAlpha = 0.85 // stroke opacity at birth, fading to 0
)

// shockwave is one expanding ring, recorded by its birth time on the
// simulation clock and the ring radius it started from.
type shockwave struct {
	born        float64
	startRadius float64
}

// radiusAlpha returns the ring's current radius and opacity at simulation
// time now, growing from the start radius toward endRadius along fn and
// fading linearly with age. endRadius is twice the ring band's outer radius,
// passed by the caller since the pool holds no config.
func (s shockwave) radiusAlpha(now, endRadius float64, fn ease.TweenFunc) (radius, alpha float64) {
	u := clamp01((now - s.born) / shockwaveLife)
	eased := float64(fn(float32(u), 0, 1, 1))
	return lerp(s.startRadius, endRadius, eased), (1 - u) * shockwaveAlpha
}

// wavePool holds the active shockwaves. Order is not meaningful; expired
// waves are swap-removed.
type wavePool struct {
	waves [maxShockwaves]shockwave
	count int
}

// prune removes every wave whose lifetime has elapsed at simulation time now.
// Called once per tick, before any spawn attempt, so an expiring slot frees
// capacity for a new wave on the same tick.
func (w *wavePool) prune(now float64) {
	i := 0
	for i < w.count {
		if now-w.waves[i].born >= shockwaveLife {
			w.count--
			w.waves[i] = w.waves[w.count]
			continue
		}
		i++
	}
}

// spawn adds a wave starting at the given ring radius. When the pool is at
// capacity the wave is silently dropped; spawn reports whether it landed.
func (w *wavePool) spawn(now, startRadius float64) bool {
	if w.count >= maxShockwaves {
		return false
	}
	w.waves[w.count] = shockwave{born: now, startRadius: startRadius}
	w.count++
	return true
}

// reset drops all active waves.
func (w *wavePool) reset() {
	w.count = 0
}
