package halo

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawFrame renders one complete frame onto the tier's surfaces and
// composites the result into the target. The persistent DrawImageOptions is
// reused for every draw so the steady-state frame makes no heap allocations
// on the particle path.
func (e *Engine) drawFrame(s *tierSurfaces) {
	s.primary.Clear()
	s.glow.Clear()

	cx := float64(s.w) / 2
	cy := float64(s.h) / 2
	f := s.factor
	op := &e.imgOp

	// Shockwave pass first: ring strokes on the primary surface only, so the
	// particles land on top of them and the glow stays a soft particle halo.
	sec := e.cfg.Theme.Secondary
	for i := 0; i < e.waves.count; i++ {
		radius, alpha := e.waves.waves[i].radiusAlpha(e.simTime, 2*e.cfg.OuterRadius, e.cfg.ShockEase)
		clr := Color{sec.R, sec.G, sec.B, sec.A * alpha}.toRGBA()
		vector.StrokeCircle(s.primary, float32(cx), float32(cy),
			float32(radius*f), float32(shockwaveWidth*f), clr, true)
	}

	// Particle pass: every dot lands on both the primary and the glow
	// surface with additive blending, so overlaps brighten instead of
	// painting over each other.
	offset := e.pulse.offset
	lagCoef := 0.0
	boost := 1.0
	if e.pulse.contracting {
		lagCoef = e.cfg.LagCoefficient
		boost = e.cfg.ContractBoost
	}
	half := float64(e.dot.size) / 2
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	for i := range e.store.items {
		p := &e.store.items[i]
		r := particleRadius(p, offset, lagCoef, e.simTime, e.cfg.ShimmerSpeed, e.cfg.ShimmerAmplitude)
		a := float64(p.angle) + e.rotation
		x := cx + math.Cos(a)*r*f
		y := cy + math.Sin(a)*r*f
		sc := float64(p.size) * f
		op.GeoM.Reset()
		op.GeoM.Scale(sc, sc)
		op.GeoM.Translate(x-half*sc, y-half*sc)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(clamp01(float64(p.opacity) * boost)))
		s.primary.DrawImage(e.dot.image, op)
		s.glow.DrawImage(e.dot.image, op)
	}

	// Glow pass: blur the accumulation surface and add it back on top of the
	// primary, tinted and scaled by the theme's glow settings.
	glow := e.cfg.Theme.Glow
	ga := float32(clamp01(e.cfg.Theme.GlowOpacity*s.glowScale) * clamp01(glow.A))
	s.blur.composite(s.glow, s.primary, ebiten.BlendLighter,
		float32(clamp01(glow.R))*ga,
		float32(clamp01(glow.G))*ga,
		float32(clamp01(glow.B))*ga,
		ga)

	// Composite into the target with normal alpha blending, upscaling the
	// degraded tier's half-resolution surface to full size.
	tb := e.target.Bounds()
	op.GeoM.Reset()
	op.GeoM.Scale(float64(tb.Dx())/float64(s.w), float64(tb.Dy())/float64(s.h))
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterLinear
	e.target.Clear()
	e.target.DrawImage(s.primary, op)
}

// particleRadius derives a particle's draw radius for one frame: its resting
// radius, plus the shared pulsation offset damped by the particle's lag,
// plus its individual shimmer. Lag trails the outer particles behind the
// contraction; the caller passes lagCoef as 0 outside the contraction phase.
func particleRadius(p *particle, offset, lagCoef, simTime, shimmerSpeed, shimmerAmp float64) float64 {
	lag := float64(p.radiusRatio) * lagCoef
	shimmer := shimmerAmp * math.Cos(simTime*shimmerSpeed+float64(p.shimmerPhase))
	return float64(p.baseRadius) + offset*(1-lag) + shimmer
}
