package halo

import "github.com/tanema/gween/ease"

// BackIn returns a back ease-in curve with a configurable overshoot constant
// in gween's TweenFunc shape. The stock ease.InBack pins the constant at
// 1.70158; the halo's contraction wants a harder anticipation, so the
// constant is a parameter here.
func BackIn(overshoot float64) ease.TweenFunc {
	k := float32(overshoot)
	return func(t, b, c, d float32) float32 {
		t /= d
		return c*t*t*((k+1)*t-k) + b
	}
}

// pulsation is the heartbeat integrator. Each cycle splits into a short
// contraction that snaps the ring inward and a long expansion that drifts it
// back out; a damped spring chases the eased target so the motion stays
// smooth across the phase boundary.
//
// The phase is derived purely from the position inside the cycle, never from
// the velocity sign. The spring overshoots and rebounds around the target,
// so velocity flips direction several times per phase and would misreport
// the phase if consulted.
type pulsation struct {
	tension  float64
	friction float64
	mass     float64

	cycle           float64 // seconds per full cycle
	contractPortion float64 // fraction of the cycle spent contracting
	amplitude       float64 // peak target offset in pixels

	contractEase ease.TweenFunc
	expandEase   ease.TweenFunc

	offset      float64 // current radial offset in pixels
	velocity    float64 // pixels per second
	cycleTime   float64 // seconds into the current cycle, [0, cycle)
	contracting bool
}

// newPulsation builds the integrator from an already-defaulted config.
func newPulsation(cfg Config) pulsation {
	return pulsation{
		tension:         cfg.Tension,
		friction:        cfg.Friction,
		mass:            cfg.Mass,
		cycle:           cfg.CyclePeriod,
		contractPortion: cfg.ContractPortion,
		amplitude:       cfg.MaxAmplitude,
		contractEase:    cfg.ContractEase,
		expandEase:      cfg.ExpandEase,
		contracting:     true,
	}
}

// advance steps the integrator by dt seconds using semi-implicit Euler.
// It reports whether this step crossed the contraction-to-expansion boundary,
// which is the moment a shockwave is due.
func (p *pulsation) advance(dt float64) bool {
	p.cycleTime += dt
	for p.cycleTime >= p.cycle {
		p.cycleTime -= p.cycle
	}

	contracting := p.cycleTime < p.cycle*p.contractPortion
	target := p.targetOffset(contracting)

	accel := (p.tension*(target-p.offset) - p.friction*p.velocity) / p.mass
	p.velocity += accel * dt
	p.offset += p.velocity * dt

	transition := p.contracting && !contracting
	p.contracting = contracting
	return transition
}

// targetOffset evaluates the eased target for the current cycle position.
// Contraction runs 0 -> -amplitude through the back ease, whose early dip
// below zero bulges the ring slightly outward before the inward snap.
// Expansion then runs -amplitude -> +amplitude through the ease-out.
func (p *pulsation) targetOffset(contracting bool) float64 {
	contractSpan := p.cycle * p.contractPortion
	if contracting {
		u := p.cycleTime / contractSpan
		return -p.amplitude * float64(p.contractEase(float32(u), 0, 1, 1))
	}
	u := (p.cycleTime - contractSpan) / (p.cycle - contractSpan)
	eased := float64(p.expandEase(float32(u), 0, 1, 1))
	return lerp(-p.amplitude, p.amplitude, eased)
}
