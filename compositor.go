package splitview

import (
	"fmt"
	"time"
)

// Phase identifies the compositor step currently executing.
type Phase uint8

const (
	PhaseIdle          Phase = iota // between frames
	PhaseMaskPrepare                // boundary mask written, capture cleared
	PhaseCapture                    // per-viewpoint masked scene capture
	PhaseCellVisualize              // soft ownership texture for the line pass
	PhaseLineBlend                  // capture + dividing line
	PhaseAntialias                  // optional FXAA
	PhaseFinalBlend                 // overlay blended into the destination
	PhaseCleanup                    // mask disabled, compare modes reset
)

var phaseNames = [...]string{"idle", "mask", "capture", "cells", "line", "fxaa", "blend", "cleanup"}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// PipelineState is the explicit render state threaded through the passes.
// It replaces shader-global switches: every pass reads what it needs from
// here or from its own uniforms.
type PipelineState struct {
	Phase Phase
	// MaskEnabled is true while the boundary mask may be consulted.
	MaskEnabled bool
	// CellsCompare is the compare mode used when writing the mask.
	CellsCompare CompareFunc
	// MaskedCompare is the compare mode captures use against the mask.
	MaskedCompare CompareFunc
	// ViewID is the viewpoint currently being captured, 0 when none.
	ViewID int
}

// Compositor owns the persistent render targets and runs the per-frame
// pass sequence against a Backend.
type Compositor struct {
	backend Backend

	width, height int
	capture       Target
	mask          Target
	cells         Target

	state PipelineState

	// Uniform maps are owned by this compositor and reused every frame.
	maskUniforms  map[string]any
	cellsUniforms map[string]any
	lineUniforms  map[string]any

	timing bool
	stats  frameStats
	mark   time.Time
}

// NewCompositor creates a compositor drawing through backend. Targets are
// allocated lazily by the first Resize or Render.
func NewCompositor(backend Backend) *Compositor {
	return &Compositor{
		backend:       backend,
		maskUniforms:  make(map[string]any, 5),
		cellsUniforms: make(map[string]any, 5),
		lineUniforms:  make(map[string]any, 3),
	}
}

// State returns the current pipeline state.
func (c *Compositor) State() PipelineState {
	return c.state
}

// Size returns the size of the persistent targets, or 0, 0 before the first
// successful allocation.
func (c *Compositor) Size() (w, h int) {
	return c.width, c.height
}

// Resize makes sure the persistent targets match (w, h). Old targets are
// released before new ones are allocated. On failure every target is
// released and the next call retries.
func (c *Compositor) Resize(w, h int) error {
	if w == c.width && h == c.height && c.allocated() {
		return nil
	}
	c.Release()

	var err error
	if c.capture, err = c.backend.NewTarget(w, h, FormatColorMask); err != nil {
		c.Release()
		return fmt.Errorf("splitview: allocate capture target %dx%d: %w", w, h, err)
	}
	if c.mask, err = c.backend.NewTarget(w, h, FormatR8); err != nil {
		c.Release()
		return fmt.Errorf("splitview: allocate mask target %dx%d: %w", w, h, err)
	}
	if c.cells, err = c.backend.NewTarget(w, h, FormatR8); err != nil {
		c.Release()
		return fmt.Errorf("splitview: allocate cells target %dx%d: %w", w, h, err)
	}
	c.width, c.height = w, h
	return nil
}

// Release frees every persistent target.
func (c *Compositor) Release() {
	for _, t := range []*Target{&c.capture, &c.mask, &c.cells} {
		if *t != nil {
			c.backend.ReleaseTarget(*t)
			*t = nil
		}
	}
	c.width, c.height = 0, 0
}

func (c *Compositor) allocated() bool {
	return c.capture != nil && c.mask != nil && c.cells != nil
}

// Render composites one frame into dst. src is an optional overlay (for
// example UI) blended over the split view; it is never written to.
//
// dst is written only by the final pass. Any earlier error leaves it
// untouched and is returned wrapped in ErrFrameSkipped.
func (c *Compositor) Render(f *Frame, src, dst Target) error {
	if f == nil || !f.Screen.Valid() {
		return fmt.Errorf("%w: invalid frame", ErrFrameSkipped)
	}
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrFrameSkipped)
	}
	w, h := f.Screen.Width, f.Screen.Height
	if err := c.Resize(w, h); err != nil {
		return fmt.Errorf("%w: %w", ErrFrameSkipped, err)
	}
	if err := checkSize("destination", dst, w, h); err != nil {
		return fmt.Errorf("%w: %w", ErrFrameSkipped, err)
	}
	if src != nil {
		if err := checkSize("source", src, w, h); err != nil {
			return fmt.Errorf("%w: %w", ErrFrameSkipped, err)
		}
	}

	screenTex, err := c.backend.AcquireTemporary(w, h)
	if err != nil {
		return fmt.Errorf("%w: acquire screen texture: %w", ErrFrameSkipped, err)
	}
	defer c.backend.ReleaseTemporary(screenTex)

	var aaTex Target
	if f.FXAA {
		if aaTex, err = c.backend.AcquireTemporary(w, h); err != nil {
			return fmt.Errorf("%w: acquire fxaa texture: %w", ErrFrameSkipped, err)
		}
		defer c.backend.ReleaseTemporary(aaTex)
	}

	c.beginStats()
	defer c.cleanup()

	if err := c.prepareMask(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFrameSkipped, c.state.Phase, err)
	}
	c.lap(&c.stats.maskTime)

	if err := c.captureViews(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFrameSkipped, c.state.Phase, err)
	}
	c.lap(&c.stats.captureTime)

	result, err := c.composite(f, screenTex, aaTex)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFrameSkipped, c.state.Phase, err)
	}

	c.state.Phase = PhaseFinalBlend
	final := Pass{Program: ProgramCopy, Sources: [4]Target{result}}
	if src != nil {
		final = Pass{Program: ProgramAlphaBlend, Sources: [4]Target{src, result}}
	}
	if err := c.blit(dst, final); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFrameSkipped, c.state.Phase, err)
	}
	c.lap(&c.stats.blendTime)
	return nil
}

// prepareMask enables the boundary mask, writes hard viewpoint ids into it
// and clears the capture target.
func (c *Compositor) prepareMask(f *Frame) error {
	c.state.Phase = PhaseMaskPrepare
	c.state.MaskEnabled = true
	c.state.CellsCompare = CompareAlways
	c.state.MaskedCompare = CompareEqual

	c.setCellUniforms(c.maskUniforms, f, 0)
	if err := c.blit(c.mask, Pass{Program: ProgramCells, Uniforms: c.maskUniforms}); err != nil {
		return err
	}
	return c.backend.Clear(c.capture, ColorBlack)
}

// captureViews renders every active viewpoint into the shared capture
// target, each restricted to its own cell of the mask.
func (c *Compositor) captureViews(f *Frame) error {
	c.state.Phase = PhaseCapture
	for i := 0; i < f.ActiveViews && i < MaxViewpoints; i++ {
		c.state.ViewID = i + 1
		view := View{
			ID:      c.state.ViewID,
			Camera:  f.Cameras[i],
			Mask:    c.mask,
			Compare: c.state.MaskedCompare,
		}
		if err := c.backend.RenderScene(c.capture, view); err != nil {
			return fmt.Errorf("view %d: %w", view.ID, err)
		}
		c.stats.views++
	}
	c.state.ViewID = 0
	return nil
}

// composite runs the cell visualization, split line and optional FXAA
// passes and returns the target holding the finished split view.
func (c *Compositor) composite(f *Frame, screenTex, aaTex Target) (Target, error) {
	c.state.Phase = PhaseCellVisualize
	c.setCellUniforms(c.cellsUniforms, f, 1)
	if err := c.blit(c.cells, Pass{Program: ProgramCells, Uniforms: c.cellsUniforms}); err != nil {
		return nil, err
	}
	c.lap(&c.stats.cellsTime)

	c.state.Phase = PhaseLineBlend
	c.lineUniforms["LineColor"] = f.LineColor.premultiplied()
	c.lineUniforms["Thickness"] = float32(f.Screen.LineThickness())
	c.lineUniforms["LineAlpha"] = float32(1 - f.Merge.Ratio)
	line := Pass{
		Program:  ProgramSplitLine,
		Sources:  [4]Target{c.capture, c.cells},
		Uniforms: c.lineUniforms,
	}
	if err := c.blit(screenTex, line); err != nil {
		return nil, err
	}
	c.lap(&c.stats.lineTime)

	if !f.FXAA || aaTex == nil {
		return screenTex, nil
	}
	c.state.Phase = PhaseAntialias
	if err := c.blit(aaTex, Pass{Program: ProgramFXAA, Sources: [4]Target{screenTex}}); err != nil {
		return nil, err
	}
	c.lap(&c.stats.fxaaTime)
	return aaTex, nil
}

// cleanup disables the mask and resets compare modes. It runs after every
// Render, including failed ones.
func (c *Compositor) cleanup() {
	c.state.Phase = PhaseCleanup
	c.state.MaskEnabled = false
	c.state.MaskedCompare = CompareDisabled
	c.state.CellsCompare = CompareDisabled
	c.state.ViewID = 0
	c.state.Phase = PhaseIdle
}

// setCellUniforms fills the ownership program parameters. soft selects the
// blended boundary used by the line pass instead of hard ids.
func (c *Compositor) setCellUniforms(u map[string]any, f *Frame, soft float32) {
	s0 := f.Layout.Positions[0]
	s1 := f.Layout.Positions[1]
	if f.ActiveViews < 2 {
		s1 = s0
	}
	u["Site0"] = []float32{float32(s0.X), float32(s0.Y)}
	u["Site1"] = []float32{float32(s1.X), float32(s1.Y)}
	u["ActiveViews"] = float32(f.ActiveViews)
	u["Resolution"] = []float32{float32(f.Screen.Width), float32(f.Screen.Height)}
	u["Soft"] = soft
}

func (c *Compositor) blit(dst Target, pass Pass) error {
	c.stats.passes++
	if err := c.backend.Blit(dst, pass); err != nil {
		return fmt.Errorf("%s pass: %w", pass.Program, err)
	}
	return nil
}

func checkSize(name string, t Target, w, h int) error {
	tw, th := t.Size()
	if tw != w || th != h {
		return fmt.Errorf("splitview: %s is %dx%d, want %dx%d", name, tw, th, w, h)
	}
	return nil
}
