package halo

import "github.com/hajimehoshi/ebiten/v2"

// Degraded-tier policy: half-resolution surfaces, halved blur radius and a
// dimmer glow. The halved dimensions alone roughly quarter the fill cost.
const (
	degradedFactor    = 0.5
	degradedGlowScale = 0.6
)

// tierSurfaces is the persistent offscreen state of one render tier: the
// primary accumulation surface, the glow accumulation surface and the blur
// chain between them. Both tiers exist for the engine's whole lifetime so
// tier switches never allocate.
type tierSurfaces struct {
	primary *ebiten.Image
	glow    *ebiten.Image
	blur    *blurChain

	w, h      int
	factor    float64 // resolution relative to the target, 1.0 or 0.5
	glowScale float64 // multiplier on the theme's glow opacity
}

// newTierSurfaces allocates the surfaces for a tier covering a targetW x
// targetH output at the given resolution factor.
func newTierSurfaces(targetW, targetH int, factor float64, glowRadius int) *tierSurfaces {
	w := max(int(float64(targetW)*factor), 1)
	h := max(int(float64(targetH)*factor), 1)
	radius := glowRadius
	glowScale := 1.0
	if factor < 1 {
		radius = max(int(float64(glowRadius)*factor), 1)
		glowScale = degradedGlowScale
	}
	return &tierSurfaces{
		primary:   ebiten.NewImage(w, h),
		glow:      ebiten.NewImage(w, h),
		blur:      newBlurChain(w, h, radius),
		w:         w,
		h:         h,
		factor:    factor,
		glowScale: glowScale,
	}
}

// dispose releases all GPU resources owned by the tier.
func (s *tierSurfaces) dispose() {
	if s.primary != nil {
		s.primary.Deallocate()
		s.primary = nil
	}
	if s.glow != nil {
		s.glow.Deallocate()
		s.glow = nil
	}
	if s.blur != nil {
		s.blur.dispose()
		s.blur = nil
	}
}
