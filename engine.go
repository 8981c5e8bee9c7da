package halo

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Tick delta handling. The engine timestamps each Step itself rather than
// trusting the host's loop: the first tick has no predecessor and assumes a
// nominal display frame, and the clamp keeps a debugger pause or a runaway
// timer from teleporting the spring.
const (
	firstTickDelta = 1.0 / 60
	minTickDelta   = 1.0 / 240
	maxTickDelta   = 1.0 / 10
)

// Engine animates one halo: a ring of particles breathing around a center
// point, with shockwave rings on each heartbeat and a blurred glow pass.
//
// The host owns the game loop and the output image. Call Step once per host
// frame (from Draw when embedding in Ebitengine); the engine advances the
// simulation by real elapsed time every call and renders into the target
// only when the active tier's cadence says a frame is due.
//
// Engine is not safe for concurrent use. Drive it from the game loop
// goroutine only.
type Engine struct {
	cfg    Config
	target *ebiten.Image

	store particleStore
	dot   *dotSprite
	pulse pulsation
	waves wavePool

	fore *tierSurfaces
	degr *tierSurfaces

	tier     Tier
	visible  bool
	disposed bool

	rotation float64 // global ring rotation in radians
	simTime  float64 // seconds of simulation since construction

	now        func() time.Time
	lastTick   time.Time
	lastRender time.Time

	script *Script
	shots  []string

	stats      Stats
	debug      bool
	lastLogSim float64

	imgOp ebiten.DrawImageOptions
}

// NewEngine builds an engine rendering into target. The config is defaulted
// field by field and validated; a nil or empty target or an unsatisfiable
// config is a construction error, never a deferred one.
func NewEngine(target *ebiten.Image, cfg Config) (*Engine, error) {
	if target == nil {
		return nil, fmt.Errorf("new engine: nil target surface")
	}
	bounds := target.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("new engine: empty target surface %dx%d", bounds.Dx(), bounds.Dy())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		target:  target,
		store:   newParticleStore(cfg.Capacity, cfg.InnerRadius, cfg.OuterRadius),
		dot:     newDotSprite(cfg.DotRadius, cfg.Theme.Primary, cfg.Theme.Secondary),
		pulse:   newPulsation(cfg),
		visible: true,
		now:     time.Now,
	}
	e.fore = newTierSurfaces(bounds.Dx(), bounds.Dy(), 1, cfg.GlowRadius)
	e.degr = newTierSurfaces(bounds.Dx(), bounds.Dy(), degradedFactor, cfg.GlowRadius)
	return e, nil
}

// Start begins animating. The engine enters the tier matching its current
// visibility. Starting a running engine is a no-op.
func (e *Engine) Start() {
	e.debugCheckDisposed("Start")
	if e.tier != TierStopped {
		return
	}
	if e.visible {
		e.tier = TierForeground
	} else {
		e.tier = TierDegraded
	}
	e.lastTick = time.Time{}
	e.lastRender = time.Time{}
	e.debugf("start tier=%s particles=%d", e.tier, e.store.len())
}

// Stop halts the animation and clears transient render state. Stopping an
// already-stopped engine is a no-op. A stopped engine keeps its particles,
// sprite and surfaces; Start resumes from the current pulsation state.
func (e *Engine) Stop() {
	if e.tier == TierStopped {
		return
	}
	e.tier = TierStopped
	e.waves.reset()
	e.debugf("stop after %d steps (%d frames, %d skipped)",
		e.stats.Steps, e.stats.Frames, e.stats.Skips)
}

// Running reports whether the engine is in either running tier.
func (e *Engine) Running() bool {
	return e.tier != TierStopped
}

// Tier returns the engine's current tier.
func (e *Engine) Tier() Tier {
	return e.tier
}

// SetVisible switches between the foreground and degraded tiers. Repeated
// calls with the same value leave the cadence state untouched. While
// stopped, visibility only selects the tier a future Start enters.
func (e *Engine) SetVisible(visible bool) {
	if visible == e.visible {
		return
	}
	e.visible = visible
	if e.tier == TierStopped {
		return
	}
	if visible {
		e.tier = TierForeground
	} else {
		e.tier = TierDegraded
	}
	e.debugf("visibility %v, tier=%s", visible, e.tier)
}

// Visible reports the last value passed to SetVisible.
func (e *Engine) Visible() bool {
	return e.visible
}

// Theme returns the active theme.
func (e *Engine) Theme() Theme {
	return e.cfg.Theme
}

// SetTheme swaps the color palette and rebuilds the cached particle sprite.
// The rebuild happens once per call, not per frame, so theme changes are
// cheap enough for score-driven switching.
func (e *Engine) SetTheme(theme Theme) {
	e.debugCheckDisposed("SetTheme")
	if theme == e.cfg.Theme {
		return
	}
	e.cfg.Theme = theme
	e.dot.dispose()
	e.dot = newDotSprite(e.cfg.DotRadius, theme.Primary, theme.Secondary)
	e.debugf("theme %q", theme.Label)
}

// Config returns a copy of the engine's effective (defaulted) config.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetTarget points the engine at a new output surface, rebuilding the tier
// surfaces if the dimensions changed. Use this when the host window resizes.
func (e *Engine) SetTarget(target *ebiten.Image) error {
	e.debugCheckDisposed("SetTarget")
	if target == nil {
		return fmt.Errorf("set target: nil target surface")
	}
	bounds := target.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fmt.Errorf("set target: empty target surface %dx%d", bounds.Dx(), bounds.Dy())
	}
	old := e.target.Bounds()
	e.target = target
	if bounds.Dx() != old.Dx() || bounds.Dy() != old.Dy() {
		e.fore.dispose()
		e.degr.dispose()
		e.fore = newTierSurfaces(bounds.Dx(), bounds.Dy(), 1, e.cfg.GlowRadius)
		e.degr = newTierSurfaces(bounds.Dx(), bounds.Dy(), degradedFactor, e.cfg.GlowRadius)
		e.debugf("target resized to %dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

// Step advances the simulation and renders a frame if one is due. Call once
// per host frame. While stopped, Step only services an attached script (so a
// scripted "start" can fire) and is otherwise a no-op.
func (e *Engine) Step() {
	e.debugCheckDisposed("Step")
	if e.script != nil && !e.script.Done() {
		e.script.step(e)
	}
	if e.tier == TierStopped {
		return
	}

	start := e.now()
	dt := firstTickDelta
	if !e.lastTick.IsZero() {
		dt = clamp(start.Sub(e.lastTick).Seconds(), minTickDelta, maxTickDelta)
	}
	e.lastTick = start

	e.simTime += dt
	e.rotation = math.Mod(e.rotation+e.cfg.RotationSpeed*dt, 2*math.Pi)

	transition := e.pulse.advance(dt)
	e.waves.prune(e.simTime)
	if transition && e.waves.spawn(e.simTime, e.ringRadius()) {
		e.stats.Shockwaves++
	}

	if e.frameDue(start) {
		surf := e.fore
		if e.tier == TierDegraded {
			surf = e.degr
		}
		e.drawFrame(surf)
		e.flushSnapshots()
		e.stats.Frames++
	} else {
		e.stats.Skips++
	}
	e.stats.Steps++

	if e.debug && e.simTime-e.lastLogSim >= 1 {
		e.lastLogSim = e.simTime
		e.logStats()
	}
}

// frameDue decides whether to render on this tick and advances the cadence
// clock when it says yes. The clock moves by whole intervals rather than
// snapping to now, so the fractional remainder carries over and the realized
// rate converges on the configured cadence even when host callbacks don't
// line up with it. A clock that has fallen more than one interval behind
// snaps to now instead of rendering a catch-up burst.
func (e *Engine) frameDue(now time.Time) bool {
	interval := 1 / e.cfg.ForegroundFPS
	if e.tier == TierDegraded {
		interval = 1 / e.cfg.DegradedFPS
	}
	if e.lastRender.IsZero() {
		e.lastRender = now
		return true
	}
	if now.Sub(e.lastRender).Seconds() < interval {
		return false
	}
	e.lastRender = e.lastRender.Add(time.Duration(interval * float64(time.Second)))
	if now.Sub(e.lastRender).Seconds() > interval {
		e.lastRender = now
	}
	return true
}

// ringRadius returns the ring's current mid-band radius: the resting middle
// of the particle band plus the live pulsation offset. Shockwaves spawn here.
func (e *Engine) ringRadius() float64 {
	return (e.cfg.InnerRadius+e.cfg.OuterRadius)/2 + e.pulse.offset
}

// Stats returns the engine's lifetime counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// SetScript attaches a script that drives the engine from Step. Pass nil to
// detach. See LoadScript.
func (e *Engine) SetScript(s *Script) {
	e.script = s
}

// Dispose releases every GPU resource the engine owns. The target image
// belongs to the host and is left alone. The engine must not be used after
// Dispose; with debug mode enabled, further use panics with a clear message.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.Stop()
	e.fore.dispose()
	e.degr.dispose()
	e.dot.dispose()
	e.disposed = true
}

// debugCheckDisposed panics when a disposed engine is used in debug mode.
// In release mode callers skip this entirely.
func (e *Engine) debugCheckDisposed(op string) {
	if e.debug && e.disposed {
		panic(fmt.Sprintf("halo debug: %s on disposed engine", op))
	}
}
