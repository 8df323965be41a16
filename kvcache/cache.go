// Package kvcache implements the per-layer key/value stores the decoder
// reads and extends across prefill/step calls.
package kvcache

import "github.com/go-qwen2/qwen2core/numeric"

// LayerCache holds one layer's rotated-key and raw-value stores, each
// shaped [maxseq, nkvh, dh] in row-major order. Entries [0, PastLen) are
// valid; entries [PastLen, maxseq) are unspecified.
type LayerCache[T numeric.Floats] struct {
	K []T
	V []T
}

// Cache is the session's full per-layer KV store plus the shared append
// cursor PastLen. A Reset sets PastLen to zero without freeing storage; an
// SetEnabled(false) frees storage and forces full recomputation on every
// subsequent call.
type Cache[T numeric.Floats] struct {
	Layers  []LayerCache[T]
	PastLen int
	Enabled bool

	maxseq int
	nkvh   int
	dh     int
}

// New allocates a disabled, empty cache sized for the given layer count
// and per-layer shape. Storage is not allocated here, nor by
// SetEnabled(true); EnsureAllocated allocates it on the first cached call.
func New[T numeric.Floats](nlayer, maxseq, nkvh, dh int) *Cache[T] {
	return &Cache[T]{maxseq: maxseq, nkvh: nkvh, dh: dh, Layers: make([]LayerCache[T], nlayer)}
}

// Initialized reports whether storage has been allocated.
func (c *Cache[T]) Initialized() bool {
	return len(c.Layers) > 0 && c.Layers[0].K != nil
}

// Reset sets PastLen to zero without freeing storage.
func (c *Cache[T]) Reset() {
	c.PastLen = 0
}

// SetEnabled toggles caching. Disabling frees all per-layer storage and
// resets PastLen; re-enabling leaves storage unallocated until the next
// cached call lazily allocates it.
func (c *Cache[T]) SetEnabled(enabled bool) {
	c.Enabled = enabled
	if !enabled {
		for i := range c.Layers {
			c.Layers[i] = LayerCache[T]{}
		}
		c.PastLen = 0
	}
}

// EnsureAllocated lazily allocates storage for every layer on first use.
func (c *Cache[T]) EnsureAllocated() {
	if c.Initialized() {
		return
	}
	size := c.maxseq * c.nkvh * c.dh
	for i := range c.Layers {
		c.Layers[i] = LayerCache[T]{K: make([]T, size), V: make([]T, size)}
	}
}

// MaxSeq, NKVH and DH report the fixed per-layer shape this cache was
// constructed with.
func (c *Cache[T]) MaxSeq() int { return c.maxseq }
func (c *Cache[T]) NKVH() int   { return c.nkvh }
func (c *Cache[T]) DH() int     { return c.dh }
