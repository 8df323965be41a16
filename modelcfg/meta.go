// Package modelcfg defines the immutable model configuration the rest of
// the engine is built from.
package modelcfg

import (
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// Meta is the structural configuration of a Qwen2-family decoder-only
// transformer. It is validated once at construction and never mutated
// afterward.
type Meta struct {
	Dtype   numeric.Dtype
	NLayer  int
	HS      int // hidden size
	NH      int // query heads
	NKVH    int // key/value heads
	DH      int // per-head dimension
	DI      int // MLP intermediate size
	MaxSeq  int
	Voc     int
	Epsilon float32
	Theta   float32
	EndTok  int64
}

// GroupFactor returns nh/nkvh, the number of query heads sharing each
// key/value head.
func (m Meta) GroupFactor() int {
	return m.NH / m.NKVH
}

// Validate checks the structural invariants the external interface's
// create() operation enforces: hs == nh*dh, nh % nkvh == 0, dh even, and
// maxseq > 0. Returns a *qerr.Error with Kind InvalidMeta on violation.
func (m Meta) Validate() error {
	switch {
	case m.NLayer < 1:
		return qerr.New(qerr.InvalidMeta, "nlayer must be >= 1")
	case m.NH <= 0 || m.NKVH <= 0:
		return qerr.New(qerr.InvalidMeta, "nh and nkvh must be positive")
	case m.NH%m.NKVH != 0:
		return qerr.New(qerr.InvalidMeta, "nh must be a multiple of nkvh")
	case m.DH <= 0 || m.DH%2 != 0:
		return qerr.New(qerr.InvalidMeta, "dh must be even and positive")
	case m.HS != m.NH*m.DH:
		return qerr.New(qerr.InvalidMeta, "hs must equal nh*dh")
	case m.DI <= 0:
		return qerr.New(qerr.InvalidMeta, "di must be positive")
	case m.MaxSeq <= 0:
		return qerr.New(qerr.InvalidMeta, "maxseq must be positive")
	case m.Voc <= 0:
		return qerr.New(qerr.InvalidMeta, "voc must be positive")
	}
	return nil
}
