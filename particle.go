package halo

import (
	"math"
	"math/rand/v2"
)

// particle holds the immutable per-particle attributes rolled at construction.
// All animation state (pulsation offset, rotation, shimmer clock) lives in the
// Engine; the render pass derives each frame's position from these attributes
// without ever writing them back.
type particle struct {
	angle        float32 // resting polar angle in radians
	baseRadius   float32 // resting distance from the ring center in pixels
	opacity      float32 // base alpha
	size         float32 // sprite scale factor
	shimmerPhase float32 // phase offset of the radial flicker in radians
	radiusRatio  float32 // 0 at the inner edge of the band, 1 at the outer
}

// Attribute ranges. Opacity keeps every dot below full opacity so additive
// overlap stays below clipping, and the size spread keeps the ring from
// looking stamped.
const (
	particleOpacityMin = 0.2
	particleOpacityMax = 0.7
	particleSizeMin    = 0.8
	particleSizeMax    = 1.8

	// Standard deviation of the normalized radius sample. At 0.18 about
	// 95% of particles land within the middle ~70% of the band.
	particleRadiusSigma = 0.18
)

// particleStore is the preallocated, read-only particle buffer.
type particleStore struct {
	items []particle
}

// newParticleStore rolls capacity particles into a flat buffer. Base radii
// are Gaussian-distributed across [inner, outer] so the ring is densest
// mid-band and feathers toward both edges.
func newParticleStore(capacity int, inner, outer float64) particleStore {
	if capacity <= 0 {
		panic("halo: particle store capacity must be positive")
	}
	items := make([]particle, capacity)
	for i := range items {
		p := &items[i]
		ratio := clamp01(0.5 + gaussian()*particleRadiusSigma)
		p.angle = float32(rand.Float64() * 2 * math.Pi)
		p.baseRadius = float32(lerp(inner, outer, ratio))
		p.radiusRatio = float32(ratio)
		p.opacity = float32(randIn(particleOpacityMin, particleOpacityMax))
		p.size = float32(randIn(particleSizeMin, particleSizeMax))
		p.shimmerPhase = float32(rand.Float64() * 2 * math.Pi)
	}
	return particleStore{items: items}
}

// len returns the particle count.
func (s *particleStore) len() int {
	return len(s.items)
}

// gaussian returns a standard normal sample via the Box-Muller transform.
func gaussian() float64 {
	u1 := 1 - rand.Float64() // (0, 1], keeps Log finite
	u2 := rand.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// randIn returns a uniform random float64 in [min, max].
func randIn(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
