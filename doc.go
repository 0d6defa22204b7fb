// Package splitview is a dynamic split screen for two-player local games on
// [Ebitengine].
//
// While both players fit comfortably on screen they share one camera. As
// they move apart the view splits along the perpendicular bisector between
// them (a two-site Voronoi diagram), each half following its own player, and
// the dividing line fades in. Moving back together merges the halves again.
// There is no hysteresis: every frame is derived from the current player
// positions alone.
//
// # Quick start
//
// Implement [SceneDrawer] to draw your world through a [Camera], create a
// [Session] and call [Session.Render] from your game's Draw:
//
//	backend := splitview.NewEbitenBackend(splitview.SceneDrawerFunc(
//		func(dst *ebiten.Image, cam *splitview.Camera) {
//			world.Draw(dst, cam.GeoM())
//		}))
//	session := splitview.NewSession(backend, splitview.DefaultConfig())
//	session.Track(player1, player2)
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.ui.Clear()
//		drawHUD(g.ui)
//		_, _ = g.session.Render(splitview.WrapImage(g.ui), splitview.WrapImage(screen))
//	}
//
// # Pipeline
//
// A frame runs these steps in order:
//
//   - [NormalizeLayout] maps the players' bounding box into the unit square,
//     padded on the short axis to match the screen aspect ratio.
//   - [ComputeMerge] compares the players' world distance with the on-screen
//     threshold and yields a merge ratio and the number of active views.
//   - [PlaceViewpoints] positions each camera so its player lands on its
//     layout slot, pulled toward the shared midpoint by the merge ratio.
//   - [Compositor.Render] writes the boundary mask, captures each view
//     through it, draws the dividing line, optionally applies FXAA and
//     blends the caller's overlay on top.
//
// The compositor talks to the GPU through [Backend]. [EbitenBackend] is the
// stock implementation; tests and other engines can supply their own.
//
// # Configuration
//
// [Config] can be built in code or loaded from TOML with [LoadConfig]:
//
//	line_color = "#202020"
//	fxaa = true
//	merging = true
//	player_count = 2
//	ortho_size = 5
//	transition_ease = "in-out-quad"
//
// # Inspection
//
// [DrawHUD] prints the merge state into an overlay. [Session.Screenshot]
// saves the next composited frame as PNG, and [LoadScript] plays back a
// JSON list of player moves so split and merge states can be captured
// repeatably. See examples/twoplayer for all three.
//
// [Ebitengine]: https://ebitengine.org
package splitview
