// Package halo animates a pulsating, rotating particle ring for [Ebitengine].
//
// A halo is a ring of a few hundred soft dots breathing around a center
// point: a short inward contraction, a long outward drift, a shockwave ring
// on each heartbeat and a blurred glow underneath. It is built as the
// ambient "vitality" layer of a dashboard panel, but nothing in it knows
// about biometrics; feed it any slow signal by switching themes.
//
// # Quick start
//
// The host owns the game loop and an output image; the engine renders into
// that image whenever its cadence says a frame is due:
//
//	canvas := ebiten.NewImage(480, 480)
//	engine, err := halo.NewEngine(canvas, halo.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine.Start()
//
//	// in your ebiten.Game:
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.engine.Step()
//		screen.DrawImage(g.canvas, nil)
//	}
//
// Call [Engine.Step] once per host frame. Simulation always advances by real
// elapsed time; rendering is throttled to the active tier's cadence, so a
// 120 Hz host loop still draws at the configured 45 fps.
//
// # Tiers
//
// A running engine is in one of two tiers. [TierForeground] renders at full
// resolution and the foreground cadence. [TierDegraded], entered via
// [Engine.SetVisible] when the panel is hidden, drops to a half-resolution
// surface at a keep-alive cadence. The pulsation itself advances identically
// in both, so a panel revealed after a minute in the background is exactly
// where it would have been.
//
// # Tuning
//
// [Config] exposes the ring geometry, the spring that drives the heartbeat,
// the easing curves of both phases and the render cadences. Numeric fields
// round-trip through YAML via [DecodeConfig] and [Config.Encode] for preset
// files. [Theme] selects the palette; [Engine.SetTheme] rebuilds the cached
// particle sprite once per switch.
//
// [Ebitengine]: https://ebitengine.org
package halo
