package halo

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Config controls how a halo is built and animated. The zero value of any
// field is replaced by its default at construction, so callers only set what
// they want to change. Numeric fields round-trip through YAML for presets;
// the easing functions do not and must be set in code.
type Config struct {
	// Capacity is the number of particles in the ring. The particle store is
	// allocated once at construction and never grows.
	Capacity int `yaml:"capacity"`

	// InnerRadius and OuterRadius bound the ring band in pixels. Particle
	// base radii are sampled inside this band, biased toward its middle.
	InnerRadius float64 `yaml:"innerRadius"`
	OuterRadius float64 `yaml:"outerRadius"`

	// CyclePeriod is the duration of one full pulsation cycle in seconds.
	CyclePeriod float64 `yaml:"cyclePeriod"`
	// ContractPortion is the fraction of the cycle spent contracting,
	// in (0, 1). The remainder is the expansion phase.
	ContractPortion float64 `yaml:"contractPortion"`
	// MaxAmplitude is the peak radial offset of the pulsation in pixels.
	MaxAmplitude float64 `yaml:"maxAmplitude"`

	// Tension, Friction and Mass parameterize the spring that chases the
	// cycle's target offset. Keep Friction at or above the critical damping
	// threshold (see DampingRatio) or the ring will oscillate visibly.
	Tension  float64 `yaml:"tension"`
	Friction float64 `yaml:"friction"`
	Mass     float64 `yaml:"mass"`

	// Overshoot is the back-ease overshoot constant used by the default
	// contraction easing. Ignored when ContractEase is set explicitly.
	Overshoot float64 `yaml:"overshoot"`

	// RotationSpeed is the slow drift of the whole ring in radians per second.
	RotationSpeed float64 `yaml:"rotationSpeed"`
	// ShimmerSpeed and ShimmerAmplitude control the per-particle radial
	// flicker (radians per second and pixels).
	ShimmerSpeed     float64 `yaml:"shimmerSpeed"`
	ShimmerAmplitude float64 `yaml:"shimmerAmplitude"`
	// LagCoefficient scales how much outer particles trail the contraction.
	// Applied as radiusRatio*LagCoefficient, only while contracting.
	LagCoefficient float64 `yaml:"lagCoefficient"`
	// ContractBoost is the opacity multiplier applied while contracting,
	// making the inward snap read slightly brighter. 1 disables it.
	ContractBoost float64 `yaml:"contractBoost"`

	// DotRadius is the particle sprite radius in pixels before per-particle
	// size scaling.
	DotRadius float64 `yaml:"dotRadius"`
	// GlowRadius is the blur radius of the glow layer in pixels. The
	// degraded tier halves it along with the surface resolution.
	GlowRadius int `yaml:"glowRadius"`

	// ForegroundFPS and DegradedFPS are the render cadences of the two
	// running tiers. Simulation always advances at the host callback rate;
	// these only throttle how often frames are drawn.
	ForegroundFPS float64 `yaml:"foregroundFPS"`
	DegradedFPS   float64 `yaml:"degradedFPS"`

	// Theme is the color palette. Zero value selects DefaultTheme.
	Theme Theme `yaml:"theme"`

	// ContractEase shapes the contraction target. Defaults to BackIn(Overshoot).
	ContractEase ease.TweenFunc `yaml:"-"`
	// ExpandEase shapes the expansion target. Defaults to ease.OutCubic.
	ExpandEase ease.TweenFunc `yaml:"-"`
	// ShockEase shapes shockwave ring growth. Defaults to ease.OutQuad.
	ShockEase ease.TweenFunc `yaml:"-"`
}

// DefaultConfig returns a fully populated Config with the stock tuning.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every zero field in place.
func (c *Config) applyDefaults() {
	if c.Capacity == 0 {
		c.Capacity = 180
	}
	if c.InnerRadius == 0 {
		c.InnerRadius = 60
	}
	if c.OuterRadius == 0 {
		c.OuterRadius = 105
	}
	if c.CyclePeriod == 0 {
		c.CyclePeriod = 2.8
	}
	if c.ContractPortion == 0 {
		c.ContractPortion = 0.2
	}
	if c.MaxAmplitude == 0 {
		c.MaxAmplitude = 14
	}
	if c.Tension == 0 {
		c.Tension = 18
	}
	if c.Friction == 0 {
		c.Friction = 9.5
	}
	if c.Mass == 0 {
		c.Mass = 1
	}
	if c.Overshoot == 0 {
		c.Overshoot = 2.5
	}
	if c.RotationSpeed == 0 {
		c.RotationSpeed = 0.12
	}
	if c.ShimmerSpeed == 0 {
		c.ShimmerSpeed = 3
	}
	if c.ShimmerAmplitude == 0 {
		c.ShimmerAmplitude = 2
	}
	if c.LagCoefficient == 0 {
		c.LagCoefficient = 0.35
	}
	if c.ContractBoost == 0 {
		c.ContractBoost = 1.25
	}
	if c.DotRadius == 0 {
		c.DotRadius = 6
	}
	if c.GlowRadius == 0 {
		c.GlowRadius = 8
	}
	if c.ForegroundFPS == 0 {
		c.ForegroundFPS = 45
	}
	if c.DegradedFPS == 0 {
		c.DegradedFPS = 5
	}
	if c.Theme == (Theme{}) {
		c.Theme = DefaultTheme()
	}
	if c.ContractEase == nil {
		c.ContractEase = BackIn(c.Overshoot)
	}
	if c.ExpandEase == nil {
		c.ExpandEase = ease.OutCubic
	}
	if c.ShockEase == nil {
		c.ShockEase = ease.OutQuad
	}
}

// Validate reports the first construction-breaking problem in the config.
// It expects defaults to already be applied.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.InnerRadius <= 0 {
		return fmt.Errorf("inner radius must be positive, got %g", c.InnerRadius)
	}
	if c.OuterRadius <= c.InnerRadius {
		return fmt.Errorf("outer radius %g must exceed inner radius %g", c.OuterRadius, c.InnerRadius)
	}
	if c.CyclePeriod <= 0 {
		return fmt.Errorf("cycle period must be positive, got %g", c.CyclePeriod)
	}
	if c.ContractPortion <= 0 || c.ContractPortion >= 1 {
		return fmt.Errorf("contract portion must be in (0, 1), got %g", c.ContractPortion)
	}
	if c.MaxAmplitude < 0 {
		return fmt.Errorf("max amplitude must not be negative, got %g", c.MaxAmplitude)
	}
	if c.Tension <= 0 || c.Friction <= 0 || c.Mass <= 0 {
		return fmt.Errorf("tension, friction and mass must be positive, got %g/%g/%g",
			c.Tension, c.Friction, c.Mass)
	}
	if c.DotRadius <= 0 {
		return fmt.Errorf("dot radius must be positive, got %g", c.DotRadius)
	}
	if c.GlowRadius < 0 {
		return fmt.Errorf("glow radius must not be negative, got %d", c.GlowRadius)
	}
	if c.ForegroundFPS <= 0 || c.DegradedFPS <= 0 {
		return fmt.Errorf("render cadences must be positive, got %g/%g",
			c.ForegroundFPS, c.DegradedFPS)
	}
	return nil
}

// DampingRatio returns Friction / (2*sqrt(Tension*Mass)). Values >= 1 mean
// the spring is critically damped or overdamped and cannot oscillate on its
// own; the stock tuning sits just above 1.
func (c Config) DampingRatio() float64 {
	return c.Friction / (2 * math.Sqrt(c.Tension*c.Mass))
}

// DecodeConfig parses a YAML preset into a Config, applies defaults for any
// omitted field and validates the result. Easing functions are not part of
// the YAML surface and come back as the defaults.
func DecodeConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Encode serializes the numeric fields of the config as a YAML preset.
func (c Config) Encode() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
