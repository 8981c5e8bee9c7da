package halo

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

// testPulsation builds an integrator from the stock tuning.
func testPulsation() pulsation {
	return newPulsation(DefaultConfig())
}

const testStep = 1.0 / 60 // 16.67ms ticks

// --- BackIn ---

func TestBackInMatchesFormula(t *testing.T) {
	k := 2.5
	fn := BackIn(k)
	for _, u := range []float64{0, 0.1, 0.25, 0.476, 0.7, 0.9, 1} {
		want := u * u * ((k+1)*u - k)
		got := float64(fn(float32(u), 0, 1, 1))
		assertNear(t, "BackIn(2.5)", got, want, 1e-5)
	}
}

func TestBackInAnticipationDip(t *testing.T) {
	fn := BackIn(2.5)
	min := 0.0
	for u := 0.0; u <= 1.0; u += 0.01 {
		v := float64(fn(float32(u), 0, 1, 1))
		if v < min {
			min = v
		}
	}
	// The back ease must dip below zero early (the outward bulge before the
	// snap) and still land exactly on 1.
	if min > -0.1 {
		t.Errorf("BackIn dip = %v, want below -0.1", min)
	}
	assertNear(t, "BackIn at end", float64(fn(1, 0, 1, 1)), 1, 1e-5)
}

func TestBackInOvershootScalesDip(t *testing.T) {
	dip := func(k float64) float64 {
		fn := BackIn(k)
		min := 0.0
		for u := 0.0; u <= 1.0; u += 0.01 {
			if v := float64(fn(float32(u), 0, 1, 1)); v < min {
				min = v
			}
		}
		return min
	}
	if dip(4) >= dip(1.5) {
		t.Errorf("dip(4) = %v should be deeper than dip(1.5) = %v", dip(4), dip(1.5))
	}
}

// --- Target curve ---

func TestTargetOffsetEndpoints(t *testing.T) {
	p := testPulsation()

	// End of contraction: eased value 1, target at -amplitude.
	p.cycleTime = p.cycle*p.contractPortion - 1e-9
	assertNear(t, "contraction end target", p.targetOffset(true), -p.amplitude, 1e-3)

	// End of expansion: target back at +amplitude.
	p.cycleTime = p.cycle - 1e-9
	assertNear(t, "expansion end target", p.targetOffset(false), p.amplitude, 1e-3)

	// Start of contraction: eased value 0, target at rest.
	p.cycleTime = 0
	assertNear(t, "contraction start target", p.targetOffset(true), 0, 1e-3)
}

func TestTargetOffsetExpansionMonotonic(t *testing.T) {
	p := testPulsation()
	start := p.cycle * p.contractPortion
	prev := math.Inf(-1)
	for u := 0.0; u <= 1.0; u += 0.02 {
		p.cycleTime = start + u*(p.cycle-start)
		if p.cycleTime >= p.cycle {
			break
		}
		target := p.targetOffset(false)
		if target < prev-1e-6 {
			t.Fatalf("expansion target not monotonic at u=%v: %v after %v", u, target, prev)
		}
		prev = target
	}
}

// --- Phase detection ---

func TestPhaseFollowsCyclePosition(t *testing.T) {
	p := testPulsation()
	for i := 0; i < 2*int(p.cycle/testStep); i++ {
		p.advance(testStep)
		wantContracting := p.cycleTime < p.cycle*p.contractPortion
		if p.contracting != wantContracting {
			t.Fatalf("step %d: contracting = %v at cycleTime %v, want %v",
				i, p.contracting, p.cycleTime, wantContracting)
		}
	}
}

func TestPhaseIgnoresVelocitySign(t *testing.T) {
	p := testPulsation()
	boundary := p.cycle * p.contractPortion

	// Advance to just past the phase boundary. The spring is still chasing
	// the contraction target, so it carries inward velocity into the
	// expansion phase for a few ticks.
	for p.cycleTime < boundary {
		p.advance(testStep)
	}
	sawInwardVelocity := false
	for i := 0; i < 3; i++ {
		if p.contracting {
			t.Fatalf("contracting = true at cycleTime %v, past boundary %v", p.cycleTime, boundary)
		}
		if p.velocity < 0 {
			sawInwardVelocity = true
		}
		p.advance(testStep)
	}
	if !sawInwardVelocity {
		t.Error("expected residual inward velocity right after the boundary; phase must not be derived from it")
	}
}

func TestTransitionFiresOncePerCycle(t *testing.T) {
	p := testPulsation()
	stepsPerCycle := int(math.Round(p.cycle / 0.016))
	transitions := 0
	for i := 0; i < 3*stepsPerCycle; i++ {
		if p.advance(0.016) {
			transitions++
		}
	}
	if transitions != 3 {
		t.Errorf("transitions over 3 cycles = %d, want 3", transitions)
	}
}

// --- Integration behavior ---

func TestAdvanceDeterministic(t *testing.T) {
	a := testPulsation()
	b := testPulsation()
	for i := 0; i < 175; i++ { // one full cycle at 16ms
		a.advance(0.016)
		b.advance(0.016)
	}
	if a.offset != b.offset || a.velocity != b.velocity || a.cycleTime != b.cycleTime {
		t.Errorf("fresh runs diverged: offset %v vs %v, velocity %v vs %v",
			a.offset, b.offset, a.velocity, b.velocity)
	}
}

func TestOffsetPeriodicAfterSettling(t *testing.T) {
	p := testPulsation()
	stepsPerCycle := 175 // 2.8s at 16ms
	run := func(n int) float64 {
		for i := 0; i < n; i++ {
			p.advance(0.016)
		}
		return p.offset
	}
	// Cycle 1 absorbs the startup transient; after that the trajectory is
	// periodic and successive cycle endpoints must agree.
	run(stepsPerCycle)
	second := run(stepsPerCycle)
	third := run(stepsPerCycle)
	assertNear(t, "settled cycle endpoint", third, second, 1e-3)
}

func TestSpringStaysBounded(t *testing.T) {
	cfg := DefaultConfig()
	if ratio := cfg.DampingRatio(); ratio < 1 {
		t.Fatalf("stock damping ratio = %v, want >= 1", ratio)
	}
	p := testPulsation()
	limit := 2 * p.amplitude
	for i := 0; i < 10000; i++ {
		p.advance(0.016)
		if math.Abs(p.offset) > limit {
			t.Fatalf("step %d: offset %v exceeded %v; spring is unstable", i, p.offset, limit)
		}
	}
}

func TestUnderdampedConfigFlagged(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Friction = 1 // far below critical damping
	if ratio := cfg.DampingRatio(); ratio >= 1 {
		t.Fatalf("DampingRatio = %v, expected below 1 for friction 1", ratio)
	}
}
