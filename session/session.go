// Package session implements the external-facing façade described in the
// specification's Session API: create, prefill, step, reset_kv_cache,
// set_kv_cache_enabled, and destroy. It is the only package that converts
// internal failures (kernel Faults, decoder errors) into the single
// sentinel return value -1 rather than propagating a Go error, matching
// the C-style binding contract the core was designed against.
package session

import (
	"errors"
	"fmt"

	"github.com/go-qwen2/qwen2core/decoder"
	"github.com/go-qwen2/qwen2core/kernel"
	"github.com/go-qwen2/qwen2core/kvcache"
	"github.com/go-qwen2/qwen2core/modelcfg"
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
	"github.com/go-qwen2/qwen2core/sampler"
	"github.com/go-qwen2/qwen2core/tracelog"
	"github.com/go-qwen2/qwen2core/weights"
)

// Session binds a validated model configuration to a borrowed weight
// table and an owned KV cache. It is single-threaded and not reentrant:
// callers must not invoke Prefill/Step/Reset concurrently nor interleave
// calls to the same Session.
type Session[T numeric.Floats] struct {
	Meta    modelcfg.Meta
	Weights *weights.Weights[T]
	Cache   *kvcache.Cache[T]
	dec     *decoder.Decoder[T]

	caps  numeric.Capabilities
	trace bool
}

// New validates meta and constructs a Session with caching enabled by
// default. Weights is the caller's borrowed reference; it must outlive
// the session and already hold exactly meta.NLayer layers (New rejects any
// other count), whose slices must be populated before the first
// Prefill/Step call.
func New[T numeric.Floats](meta modelcfg.Meta, w *weights.Weights[T], trace bool) (*Session[T], error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	cache := kvcache.New[T](meta.NLayer, meta.MaxSeq, meta.NKVH, meta.DH)
	cache.SetEnabled(true)

	dec, err := decoder.New(meta, w, cache)
	if err != nil {
		return nil, err
	}

	caps := numeric.Detect()
	if trace {
		tracelog.Infof("session created: dtype=%s nlayer=%d hs=%d nh=%d nkvh=%d cpu=%s",
			meta.Dtype, meta.NLayer, meta.HS, meta.NH, meta.NKVH, caps)
	}

	return &Session[T]{Meta: meta, Weights: w, Cache: cache, dec: dec, caps: caps, trace: trace}, nil
}

// forward runs the decoder, recovering any kernel.Fault panic (or other
// internal panic) into an ordinary error so neither Prefill nor Step ever
// panics across this package's boundary. The cache cursor is only
// advanced by the decoder after a fully successful pass, so a failure
// here leaves the cursor where it was. The one exception is a Prefill no
// longer than the cached prefix: that discards the cache, and a failure
// after the ids have been embedded leaves the cache reset to empty.
func (s *Session[T]) forward(ids []int64, appendOnly bool, logits []T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(kernel.Fault); ok {
				err = f.Err
				return
			}
			err = qerr.New(qerr.AllocationFailure, fmt.Sprintf("internal panic: %v", r))
		}
	}()
	return s.dec.Forward(ids, appendOnly, logits)
}

// runGreedy drives forward and applies the greedy sampler, returning -1
// on any failure; when tracing is enabled it also logs a diagnostic line.
func (s *Session[T]) runGreedy(ids []int64, appendOnly bool, op string) int64 {
	if len(ids) == 0 {
		if s.trace {
			tracelog.Warnf("%s: empty input", op)
		}
		return -1
	}

	logits := make([]T, s.Meta.Voc)
	if err := s.forward(ids, appendOnly, logits); err != nil {
		if s.trace {
			tracelog.Warnf("%s failed: %v", op, err)
		}
		return -1
	}

	id := sampler.Greedy(logits)
	if s.trace {
		tracelog.Infof("%s: %d tokens in, next=%d", op, len(ids), id)
	}
	return id
}

// Prefill runs a full forward pass over ids with append_only=false and
// returns the greedily sampled next token id, or -1 on failure.
func (s *Session[T]) Prefill(ids []int64) int64 {
	return s.runGreedy(ids, false, "prefill")
}

// Infer is an alias for Prefill.
func (s *Session[T]) Infer(ids []int64) int64 {
	return s.Prefill(ids)
}

// Step runs a forward pass over only the newly appended ids with
// append_only=true and returns the greedily sampled next token id, or -1
// on failure (including when caching is disabled).
func (s *Session[T]) Step(ids []int64) int64 {
	if !s.Cache.Enabled {
		if s.trace {
			tracelog.Warnf("step: cache disabled")
		}
		return -1
	}
	return s.runGreedy(ids, true, "step")
}

// ResetKVCache sets the cache cursor to zero without freeing storage.
func (s *Session[T]) ResetKVCache() {
	s.Cache.Reset()
	if s.trace {
		tracelog.Infof("kv cache reset")
	}
}

// SetKVCacheEnabled toggles caching. Disabling frees the cache storage;
// re-enabling allocates it lazily on the next cached call.
func (s *Session[T]) SetKVCacheEnabled(enabled bool) {
	s.Cache.SetEnabled(enabled)
	if s.trace {
		tracelog.Infof("kv cache enabled=%v", enabled)
	}
}

// WeightsHandle returns the mutable borrowed weight table for the caller
// to populate before inference, matching the external interface's
// weights(session) operation.
func (s *Session[T]) WeightsHandle() *weights.Weights[T] {
	return s.Weights
}

// Capabilities reports the CPU capability snapshot detected at session
// creation; its String form is the diagnostic SIMD-tier line. Never
// consulted by the forward pass itself.
func (s *Session[T]) Capabilities() numeric.Capabilities {
	return s.caps
}

// Close releases the session's KV cache storage, matching the external
// interface's destroy(session) operation. The Session must not be used
// for Prefill/Step after Close; Weights is borrowed and outlives it.
func (s *Session[T]) Close() {
	s.Cache.SetEnabled(false)
	if s.trace {
		tracelog.Infof("session closed")
	}
}

// IsInvalidMeta reports whether err is (or wraps) a construction-time
// InvalidMeta failure, for callers that want to distinguish it from a
// runtime -1.
func IsInvalidMeta(err error) bool {
	return errors.Is(err, qerr.ErrInvalidMeta)
}
