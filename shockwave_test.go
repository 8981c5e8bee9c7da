package halo

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestWavePoolSpawnCap(t *testing.T) {
	var w wavePool
	for i := 0; i < maxShockwaves; i++ {
		if !w.spawn(float64(i)*0.01, 80) {
			t.Fatalf("spawn %d rejected below cap", i)
		}
	}
	if w.spawn(0.04, 80) {
		t.Error("spawn above cap should be dropped")
	}
	if w.count != maxShockwaves {
		t.Errorf("count = %d, want %d", w.count, maxShockwaves)
	}
}

func TestWavePoolPruneExpiry(t *testing.T) {
	var w wavePool
	w.spawn(1.0, 80)

	w.prune(1.0 + shockwaveLife - 0.01)
	if w.count != 1 {
		t.Fatalf("wave pruned before expiry, count = %d", w.count)
	}

	w.prune(1.0 + shockwaveLife)
	if w.count != 0 {
		t.Errorf("wave not pruned at expiry, count = %d", w.count)
	}
}

func TestWavePoolPruneFreesSlotForSpawn(t *testing.T) {
	var w wavePool
	w.spawn(0.00, 80)
	w.spawn(0.10, 81)
	w.spawn(0.20, 82)

	// At 0.5 the first wave has aged out; prune must free its slot before
	// the next spawn attempt checks the cap.
	now := 0.5
	w.prune(now)
	if w.count != 2 {
		t.Fatalf("count after prune = %d, want 2", w.count)
	}
	if !w.spawn(now, 83) {
		t.Error("spawn rejected right after prune freed a slot")
	}
	if w.count != maxShockwaves {
		t.Errorf("count = %d, want %d", w.count, maxShockwaves)
	}
}

func TestWavePoolPruneKeepsLiveWaves(t *testing.T) {
	var w wavePool
	w.spawn(0.00, 80)
	w.spawn(0.40, 81)
	w.spawn(0.45, 82)

	w.prune(0.5)
	if w.count != 2 {
		t.Fatalf("count = %d, want 2", w.count)
	}
	// Swap-removal may reorder; check survivors by birth time.
	seen := map[float64]bool{}
	for i := 0; i < w.count; i++ {
		seen[w.waves[i].born] = true
	}
	if !seen[0.40] || !seen[0.45] {
		t.Errorf("live waves lost during prune: %v", seen)
	}
}

func TestWavePoolReset(t *testing.T) {
	var w wavePool
	w.spawn(0, 80)
	w.spawn(0.1, 80)
	w.reset()
	if w.count != 0 {
		t.Errorf("count after reset = %d, want 0", w.count)
	}
}

func TestShockwaveRadiusAlpha(t *testing.T) {
	// A wave born at ring radius 80 in a band with outer radius 105 grows
	// toward 210.
	s := shockwave{born: 2.0, startRadius: 80}
	const end = 210.0

	r, a := s.radiusAlpha(2.0, end, ease.OutQuad)
	assertNear(t, "radius at birth", r, 80, 1e-5)
	assertNear(t, "alpha at birth", a, shockwaveAlpha, 1e-5)

	// OutQuad reaches 0.75 at the halfway point.
	r, a = s.radiusAlpha(2.0+shockwaveLife/2, end, ease.OutQuad)
	assertNear(t, "radius at half-life", r, 80+0.75*(end-80), 1e-3)
	assertNear(t, "alpha at half-life", a, shockwaveAlpha/2, 1e-5)

	r, a = s.radiusAlpha(2.0+shockwaveLife, end, ease.OutQuad)
	assertNear(t, "radius at expiry", r, end, 1e-3)
	assertNear(t, "alpha at expiry", a, 0, 1e-5)
}

func TestShockwaveGrowthMonotonic(t *testing.T) {
	s := shockwave{born: 0, startRadius: 80}
	prev := -1.0
	for u := 0.0; u <= 1.0; u += 0.05 {
		r, _ := s.radiusAlpha(u*shockwaveLife, 210, ease.OutQuad)
		if r < prev {
			t.Fatalf("radius shrank at u=%v: %v after %v", u, r, prev)
		}
		prev = r
	}
}
