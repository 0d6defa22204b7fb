package splitview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is an offscreen canvas used as a Target by EbitenBackend.
// Textures created by the backend are owned by it; textures made with
// WrapImage borrow the caller's image and never deallocate it.
type RenderTexture struct {
	image  *ebiten.Image
	w, h   int
	format TargetFormat
	owned  bool
	pooled bool
}

// NewRenderTexture creates an owned offscreen canvas of the given size.
func NewRenderTexture(w, h int) *RenderTexture {
	return &RenderTexture{
		image: ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true}),
		w:     w,
		h:     h,
		owned: true,
	}
}

// WrapImage exposes an existing image, such as the ebiten screen or a UI
// overlay, as a Target. The image keeps belonging to the caller.
func WrapImage(img *ebiten.Image) *RenderTexture {
	b := img.Bounds()
	return &RenderTexture{image: img, w: b.Dx(), h: b.Dy()}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Size returns the texture size in pixels.
func (rt *RenderTexture) Size() (w, h int) {
	return rt.w, rt.h
}

// Format returns the format the texture was allocated for.
func (rt *RenderTexture) Format() TargetFormat {
	return rt.format
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	rt.image.Clear()
}

// Fill fills the entire texture with the given color.
func (rt *RenderTexture) Fill(c Color) {
	rt.image.Fill(c.toRGBA())
}

// Resize deallocates an owned image and creates a new one at the given
// dimensions. Wrapped images are only re-measured.
func (rt *RenderTexture) Resize(w, h int) {
	if !rt.owned {
		b := rt.image.Bounds()
		rt.w, rt.h = b.Dx(), b.Dy()
		return
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
	rt.w = w
	rt.h = h
}

// Dispose deallocates an owned image. The RenderTexture should not be used
// after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.owned && rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = nil
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}
