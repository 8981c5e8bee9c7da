package halo

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a halo Color to a premultiplied color.Color value.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface without importing image/color
// at every call site.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// Theme is the color palette of a halo. The particle sprite is rebuilt when
// the theme changes, so themes are cheap to hold but not free to swap every
// frame.
type Theme struct {
	// Label names the theme for display and preset lookup.
	Label string `yaml:"label"`
	// Primary is the color at the core of each particle dot.
	Primary Color `yaml:"primary"`
	// Secondary is the color at the dot's feathered edge, and the stroke
	// color of shockwave rings.
	Secondary Color `yaml:"secondary"`
	// Glow tints the blurred glow layer.
	Glow Color `yaml:"glow"`
	// GlowOpacity is the global opacity of the composited glow layer in [0, 1].
	GlowOpacity float64 `yaml:"glowOpacity"`
}

// Built-in theme presets, ordered from lowest to highest intensity.
var (
	ThemeCalm = Theme{
		Label:       "calm",
		Primary:     Color{0.35, 0.82, 0.96, 1},
		Secondary:   Color{0.16, 0.45, 0.78, 1},
		Glow:        Color{0.25, 0.62, 0.95, 1},
		GlowOpacity: 0.55,
	}
	ThemeSteady = Theme{
		Label:       "steady",
		Primary:     Color{0.45, 0.96, 0.72, 1},
		Secondary:   Color{0.12, 0.62, 0.45, 1},
		Glow:        Color{0.3, 0.9, 0.6, 1},
		GlowOpacity: 0.6,
	}
	ThemeSurge = Theme{
		Label:       "surge",
		Primary:     Color{1, 0.62, 0.3, 1},
		Secondary:   Color{0.88, 0.26, 0.18, 1},
		Glow:        Color{1, 0.45, 0.2, 1},
		GlowOpacity: 0.7,
	}
)

// DefaultTheme returns the theme used when Config.Theme is left zero.
func DefaultTheme() Theme {
	return ThemeSteady
}

// PresetTheme looks up a built-in theme by its label.
// The second return value reports whether the label matched a preset.
func PresetTheme(label string) (Theme, bool) {
	switch label {
	case ThemeCalm.Label:
		return ThemeCalm, true
	case ThemeSteady.Label:
		return ThemeSteady, true
	case ThemeSurge.Label:
		return ThemeSurge, true
	}
	return Theme{}, false
}

// Tier is the run state of an Engine. It decides whether frames are rendered
// at all and, if so, at which cadence and resolution. The pulsation itself
// advances identically in both running tiers.
type Tier uint8

const (
	// TierStopped means the engine is not running; Step is a no-op.
	TierStopped Tier = iota
	// TierForeground renders at full resolution and the foreground cadence.
	TierForeground
	// TierDegraded renders at half resolution and a low keep-alive cadence,
	// used while the halo is hidden or backgrounded.
	TierDegraded
)

// String returns the tier name for logs and debug overlays.
func (t Tier) String() string {
	switch t {
	case TierStopped:
		return "stopped"
	case TierForeground:
		return "foreground"
	case TierDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
