package splitview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxTargetSize is the largest width or height EbitenBackend allocates.
const MaxTargetSize = 16384

// SceneDrawer draws the game world as seen by cam. cam.Viewport covers the
// whole dst image; use cam.GeoM to map world coordinates to pixels.
type SceneDrawer interface {
	DrawScene(dst *ebiten.Image, cam *Camera)
}

// SceneDrawerFunc adapts a function to the SceneDrawer interface.
type SceneDrawerFunc func(dst *ebiten.Image, cam *Camera)

// DrawScene calls f(dst, cam).
func (f SceneDrawerFunc) DrawScene(dst *ebiten.Image, cam *Camera) { f(dst, cam) }

// EbitenBackend implements Backend on Ebitengine images and Kage shaders.
// It must only be used from the Draw callback of the game loop.
type EbitenBackend struct {
	scene   SceneDrawer
	pool    texturePool
	shaders shaderSet

	shaderOp       ebiten.DrawRectShaderOptions
	imgOp          ebiten.DrawImageOptions
	maskedUniforms map[string]any
}

// NewEbitenBackend creates a backend that renders viewpoints with scene.
func NewEbitenBackend(scene SceneDrawer) *EbitenBackend {
	return &EbitenBackend{
		scene:          scene,
		maskedUniforms: make(map[string]any, 2),
	}
}

// SetScene replaces the scene drawer.
func (b *EbitenBackend) SetScene(scene SceneDrawer) {
	b.scene = scene
}

// NewTarget allocates an owned render texture.
func (b *EbitenBackend) NewTarget(w, h int, format TargetFormat) (Target, error) {
	if err := validSize(w, h); err != nil {
		return nil, err
	}
	rt := NewRenderTexture(w, h)
	rt.format = format
	// Persistent targets change size together; drop scratch textures that
	// no longer match.
	b.pool.Purge(w, h)
	return rt, nil
}

// ReleaseTarget deallocates a target created by NewTarget.
func (b *EbitenBackend) ReleaseTarget(t Target) {
	if rt, ok := t.(*RenderTexture); ok && rt != nil {
		rt.Dispose()
	}
}

// AcquireTemporary returns a pooled scratch texture.
func (b *EbitenBackend) AcquireTemporary(w, h int) (Target, error) {
	if err := validSize(w, h); err != nil {
		return nil, err
	}
	return b.pool.Acquire(w, h), nil
}

// ReleaseTemporary returns a scratch texture to the pool.
func (b *EbitenBackend) ReleaseTemporary(t Target) {
	if rt, ok := t.(*RenderTexture); ok && rt != nil && rt.pooled {
		b.pool.Release(rt)
	}
}

// Clear fills t with c.
func (b *EbitenBackend) Clear(t Target, c Color) error {
	rt, err := b.texture(t)
	if err != nil {
		return err
	}
	rt.Fill(c)
	return nil
}

// Blit draws a full-screen pass into dst. Every pass overwrites dst.
func (b *EbitenBackend) Blit(dst Target, pass Pass) error {
	d, err := b.texture(dst)
	if err != nil {
		return err
	}

	if pass.Program == ProgramCopy {
		src, err := b.texture(pass.Sources[0])
		if err != nil {
			return err
		}
		if err := sameSize(src, d); err != nil {
			return err
		}
		b.imgOp.GeoM.Reset()
		b.imgOp.ColorScale.Reset()
		b.imgOp.Blend = ebiten.BlendCopy
		d.image.DrawImage(src.image, &b.imgOp)
		return nil
	}

	shader := b.shaders.program(pass.Program)
	if shader == nil {
		return fmt.Errorf("splitview: unknown program %d", pass.Program)
	}
	op := &b.shaderOp
	op.Images = [4]*ebiten.Image{}
	for i, s := range pass.Sources {
		if s == nil {
			continue
		}
		src, err := b.texture(s)
		if err != nil {
			return err
		}
		if err := sameSize(src, d); err != nil {
			return err
		}
		op.Images[i] = src.image
	}
	op.Uniforms = pass.Uniforms
	op.Blend = ebiten.BlendCopy
	d.image.DrawRectShader(d.w, d.h, shader, op)
	return nil
}

// RenderScene draws the scene from view.Camera into a scratch texture and
// copies the pixels that pass the mask comparison into dst.
func (b *EbitenBackend) RenderScene(dst Target, view View) error {
	d, err := b.texture(dst)
	if err != nil {
		return err
	}
	scratch := b.pool.Acquire(d.w, d.h)
	defer b.pool.Release(scratch)

	cam := view.Camera
	cam.Viewport = Rect{Width: float64(d.w), Height: float64(d.h)}
	if b.scene != nil {
		b.scene.DrawScene(scratch.image, &cam)
	}

	op := &b.shaderOp
	op.Images = [4]*ebiten.Image{scratch.image}
	compare := view.Compare
	if view.Mask == nil {
		compare = CompareDisabled
	} else {
		mask, err := b.texture(view.Mask)
		if err != nil {
			return err
		}
		if err := sameSize(mask, d); err != nil {
			return err
		}
		op.Images[1] = mask.image
	}
	b.maskedUniforms["ViewID"] = float32(view.ID)
	b.maskedUniforms["Compare"] = float32(compare)
	op.Uniforms = b.maskedUniforms
	op.Blend = ebiten.BlendCopy
	d.image.DrawRectShader(d.w, d.h, b.shaders.masked(), op)
	return nil
}

// Dispose frees pooled scratch textures and compiled shaders.
func (b *EbitenBackend) Dispose() {
	b.pool.Dispose()
	b.shaders.dispose()
}

func (b *EbitenBackend) texture(t Target) (*RenderTexture, error) {
	rt, ok := t.(*RenderTexture)
	if !ok || rt == nil {
		return nil, fmt.Errorf("%w: %T", ErrForeignTarget, t)
	}
	if rt.image == nil {
		return nil, fmt.Errorf("splitview: target %dx%d used after release", rt.w, rt.h)
	}
	return rt, nil
}

func validSize(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxTargetSize || h > MaxTargetSize {
		return fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, w, h)
	}
	return nil
}

func sameSize(src, dst *RenderTexture) error {
	if src.w != dst.w || src.h != dst.h {
		return fmt.Errorf("splitview: source %dx%d does not match destination %dx%d", src.w, src.h, dst.w, dst.h)
	}
	return nil
}
