package splitview

// texturePool manages reusable scratch textures keyed by exact dimensions.
// Full-screen passes need sources and destinations of identical size, so
// sizes are not rounded. After warmup, Acquire/Release are zero-alloc.
type texturePool struct {
	buckets map[uint64][]*RenderTexture
	out     int
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared texture of exactly (w, h) pixels.
func (p *texturePool) Acquire(w, h int) *RenderTexture {
	p.out++
	key := poolKey(w, h)
	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			rt := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			rt.Clear()
			return rt
		}
	}
	rt := NewRenderTexture(w, h)
	rt.pooled = true
	return rt
}

// Release returns a texture to the pool for reuse. The texture is cleared
// on next Acquire, not here.
func (p *texturePool) Release(rt *RenderTexture) {
	if rt == nil || rt.image == nil {
		return
	}
	p.out--
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*RenderTexture)
	}
	key := poolKey(rt.w, rt.h)
	p.buckets[key] = append(p.buckets[key], rt)
}

// Purge deallocates every pooled texture whose size differs from (w, h).
// Called after a resolution change so stale sizes are not kept alive.
func (p *texturePool) Purge(w, h int) {
	keep := poolKey(w, h)
	for key, stack := range p.buckets {
		if key == keep {
			continue
		}
		for _, rt := range stack {
			rt.Dispose()
		}
		delete(p.buckets, key)
	}
}

// Outstanding returns the number of textures acquired and not yet released.
func (p *texturePool) Outstanding() int {
	return p.out
}

// Dispose deallocates every pooled texture.
func (p *texturePool) Dispose() {
	for key, stack := range p.buckets {
		for _, rt := range stack {
			rt.Dispose()
		}
		delete(p.buckets, key)
	}
}
