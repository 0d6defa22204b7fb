package splitview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudBackground keeps debug text readable over any scene.
var hudBackground = color.RGBA{0, 0, 0, 128}

// FrameInfo formats the state of f for on-screen debugging.
func FrameInfo(f Frame) string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nviews: %d  merge: %.2f  dist: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), f.ActiveViews, f.Merge.Ratio, f.Merge.DistRatio)
}

// DrawHUD prints FrameInfo(f) and any extra lines in the top-left corner of
// dst over a semi-transparent panel. Pass dst as the overlay to
// Session.Render so the panel is not split with the scene.
func DrawHUD(dst *ebiten.Image, f Frame, extra ...string) {
	text := FrameInfo(f)
	lines := 2
	for _, e := range extra {
		text += "\n" + e
		lines++
	}
	// ebitenutil's debug font is 6x16.
	w := 6 * 48
	h := 16*lines + 4
	panel := dst.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	panel.Fill(hudBackground)
	ebitenutil.DebugPrint(dst, text)
}
