package splitview

import "github.com/hajimehoshi/ebiten/v2"

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Every target is a full image with its
// origin at (0, 0), so srcPos addresses the same pixel in every source.
// Viewpoint ids are stored in the red channel as id/2: 0.5 for viewpoint 1,
// 1.0 for viewpoint 2, 0 for none.

const cellsShaderSrc = `//kage:unit pixels
package main

var Site0 vec2
var Site1 vec2
var ActiveViews float
var Resolution vec2
var Soft float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if ActiveViews < 1.5 {
		return vec4(0.5, 0, 0, 1)
	}
	// Sites are normalized; compare in pixels so the bisector is
	// perpendicular on screen.
	a := Site0 * Resolution
	b := Site1 * Resolution
	axis := b - a
	l := length(axis)
	if l < 0.0001 {
		return vec4(0.5, 0, 0, 1)
	}
	p := dstPos.xy - imageDstOrigin()
	d := dot(p-(a+b)*0.5, axis/l)
	if Soft > 0.5 {
		return vec4(mix(0.5, 1.0, smoothstep(-1.0, 1.0, d)), 0, 0, 1)
	}
	if d > 0 {
		return vec4(1, 0, 0, 1)
	}
	return vec4(0.5, 0, 0, 1)
}
`

const maskedCopyShaderSrc = `//kage:unit pixels
package main

var ViewID float
var Compare float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)
	// Compare: 0 disabled, 1 always, 2 equal.
	if Compare > 1.5 {
		id := floor(imageSrc1At(srcPos).r*2.0 + 0.5)
		if abs(id-ViewID) > 0.5 {
			discard()
		}
	}
	return c
}
`

const splitLineShaderSrc = `//kage:unit pixels
package main

var LineColor vec4
var Thickness float
var LineAlpha float

func cell(p vec2) float {
	o := imageSrc1Origin()
	return imageSrc1At(clamp(p, o+0.5, o+imageSrc1Size()-0.5)).r
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)
	t := max(Thickness, 1.0)
	center := cell(srcPos)
	edge := abs(cell(srcPos+vec2(t, 0)) - center)
	edge = max(edge, abs(cell(srcPos-vec2(t, 0))-center))
	edge = max(edge, abs(cell(srcPos+vec2(0, t))-center))
	edge = max(edge, abs(cell(srcPos-vec2(0, t))-center))
	// Neighboring viewpoints differ by 0.5.
	k := clamp(edge*2.0, 0.0, 1.0) * LineAlpha
	return mix(c, LineColor, k)
}
`

const fxaaShaderSrc = `//kage:unit pixels
package main

func texel(p vec2) vec4 {
	o := imageSrc0Origin()
	return imageSrc0At(clamp(p, o+0.5, o+imageSrc0Size()-0.5))
}

func luma(c vec4) float {
	return dot(c.rgb, vec3(0.299, 0.587, 0.114))
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	m := texel(srcPos)
	lM := luma(m)
	lNW := luma(texel(srcPos + vec2(-1, -1)))
	lNE := luma(texel(srcPos + vec2(1, -1)))
	lSW := luma(texel(srcPos + vec2(-1, 1)))
	lSE := luma(texel(srcPos + vec2(1, 1)))
	lMin := min(lM, min(min(lNW, lNE), min(lSW, lSE)))
	lMax := max(lM, max(max(lNW, lNE), max(lSW, lSE)))
	if lMax-lMin < 0.0312 {
		return m
	}

	dir := vec2(-((lNW + lNE) - (lSW + lSE)), (lNW+lSW)-(lNE+lSE))
	reduce := max((lNW+lNE+lSW+lSE)*(0.25/8.0), 1.0/128.0)
	rcp := 1.0 / (min(abs(dir.x), abs(dir.y)) + reduce)
	dir = clamp(dir*rcp, vec2(-8.0), vec2(8.0))

	a := 0.5 * (texel(srcPos+dir*(1.0/3.0-0.5)) + texel(srcPos+dir*(2.0/3.0-0.5)))
	b := a*0.5 + 0.25*(texel(srcPos-dir*0.5)+texel(srcPos+dir*0.5))
	lB := luma(b)
	if lB < lMin || lB > lMax {
		return a
	}
	return b
}
`

const alphaBlendShaderSrc = `//kage:unit pixels
package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	overlay := imageSrc0At(srcPos)
	scene := imageSrc1At(srcPos)
	// Premultiplied source-over.
	return overlay + scene*(1.0-overlay.a)
}
`

// shaderSet lazily compiles the programs of one backend. No locking: a
// backend is only used from the render thread.
type shaderSet struct {
	cells      *ebiten.Shader
	maskedCopy *ebiten.Shader
	splitLine  *ebiten.Shader
	fxaa       *ebiten.Shader
	alphaBlend *ebiten.Shader
}

func compileShader(slot **ebiten.Shader, name, src string) *ebiten.Shader {
	if *slot == nil {
		s, err := ebiten.NewShader([]byte(src))
		if err != nil {
			panic("splitview: failed to compile " + name + " shader: " + err.Error())
		}
		*slot = s
	}
	return *slot
}

// program returns the compiled shader for p, or nil for ProgramCopy.
func (s *shaderSet) program(p Program) *ebiten.Shader {
	switch p {
	case ProgramCells:
		return compileShader(&s.cells, "cells", cellsShaderSrc)
	case ProgramSplitLine:
		return compileShader(&s.splitLine, "split line", splitLineShaderSrc)
	case ProgramFXAA:
		return compileShader(&s.fxaa, "fxaa", fxaaShaderSrc)
	case ProgramAlphaBlend:
		return compileShader(&s.alphaBlend, "alpha blend", alphaBlendShaderSrc)
	default:
		return nil
	}
}

func (s *shaderSet) masked() *ebiten.Shader {
	return compileShader(&s.maskedCopy, "masked copy", maskedCopyShaderSrc)
}

// dispose releases every compiled shader.
func (s *shaderSet) dispose() {
	for _, sh := range []**ebiten.Shader{&s.cells, &s.maskedCopy, &s.splitLine, &s.fxaa, &s.alphaBlend} {
		if *sh != nil {
			(*sh).Deallocate()
			*sh = nil
		}
	}
}
