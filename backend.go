package splitview

import "errors"

var (
	// ErrAllocation is returned when a backend cannot provide a render target.
	ErrAllocation = errors.New("splitview: render target allocation failed")
	// ErrFrameSkipped wraps every error that caused Render to leave the
	// destination untouched. The next frame is the retry.
	ErrFrameSkipped = errors.New("splitview: frame skipped")
	// ErrForeignTarget is returned when a target from another backend is used.
	ErrForeignTarget = errors.New("splitview: target does not belong to this backend")
)

// Target is a GPU-resident 2D buffer owned by a Backend.
type Target interface {
	Size() (w, h int)
}

// Program identifies a full-screen shader pass.
type Program uint8

const (
	ProgramCells      Program = iota // viewpoint ownership, hard or soft
	ProgramSplitLine                 // capture + cells -> image with dividing line
	ProgramFXAA                      // fast approximate anti-aliasing
	ProgramAlphaBlend                // overlay (source 0) over composite (source 1)
	ProgramCopy                      // plain copy of source 0
)

// String returns the program name.
func (p Program) String() string {
	switch p {
	case ProgramCells:
		return "cells"
	case ProgramSplitLine:
		return "split-line"
	case ProgramFXAA:
		return "fxaa"
	case ProgramAlphaBlend:
		return "alpha-blend"
	case ProgramCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// Pass describes one full-screen blit through a program. Sources must match
// the destination size. Uniform values follow ebiten's conventions: float32,
// []float32 or int.
type Pass struct {
	Program  Program
	Sources  [4]Target
	Uniforms map[string]any
}

// View describes one per-viewpoint scene capture.
type View struct {
	// ID is the viewpoint id, 1-based. 0 means "no viewpoint".
	ID int
	// Camera is the placement to render the scene from.
	Camera Camera
	// Mask holds the hard viewpoint id per pixel. Nil disables masking.
	Mask Target
	// Compare selects how ID is tested against Mask.
	Compare CompareFunc
}

// Backend is the rendering capability surface the compositor needs.
type Backend interface {
	// NewTarget allocates a persistent target. It fails with ErrAllocation
	// rather than panicking.
	NewTarget(w, h int, format TargetFormat) (Target, error)
	// ReleaseTarget frees a persistent target. Nil is ignored.
	ReleaseTarget(t Target)
	// AcquireTemporary returns a cleared scratch target valid for one frame.
	AcquireTemporary(w, h int) (Target, error)
	// ReleaseTemporary hands a scratch target back. Nil is ignored.
	ReleaseTemporary(t Target)
	// Clear fills t with c.
	Clear(t Target, c Color) error
	// Blit runs pass over the full destination.
	Blit(dst Target, pass Pass) error
	// RenderScene draws the scene from view into dst, keeping only the
	// pixels that pass the view's mask comparison.
	RenderScene(dst Target, view View) error
}
