// Package decoder implements the single forward-pass routine the session
// façade drives once per prefill or step call: embed, run every decoder
// layer (attention then MLP, each pre-normed and residual), apply the
// final norm and output projection, and return the last token's logits.
package decoder

import (
	"fmt"
	stdmath "math"

	"github.com/go-qwen2/qwen2core/kernel"
	"github.com/go-qwen2/qwen2core/kvcache"
	"github.com/go-qwen2/qwen2core/modelcfg"
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
	"github.com/go-qwen2/qwen2core/weights"
)

// Decoder binds a validated Meta, a borrowed Weights table and an owned
// Cache together and exposes the single Forward operation. The caller
// owns ids and logitsOut across the call; Decoder retains nothing beyond
// their contents and the Cache's own storage.
type Decoder[T numeric.Floats] struct {
	Meta    modelcfg.Meta
	Weights *weights.Weights[T]
	Cache   *kvcache.Cache[T]
}

// New constructs a Decoder over an already-validated Meta, a borrowed
// Weights table (must have exactly Meta.NLayer layers) and a fresh Cache.
func New[T numeric.Floats](meta modelcfg.Meta, w *weights.Weights[T], cache *kvcache.Cache[T]) (*Decoder[T], error) {
	if len(w.Layers) != meta.NLayer {
		return nil, qerr.New(qerr.InvalidArgument, fmt.Sprintf("weights has %d layers, meta requires %d", len(w.Layers), meta.NLayer))
	}
	return &Decoder[T]{Meta: meta, Weights: w, Cache: cache}, nil
}

// lens resolves (past_len, cur_len, cached) from the cache state and the
// append_only flag, per the state machine in the specification's decoder
// block section.
func (d *Decoder[T]) lens(ntoken int, appendOnly bool) (pastLen, curLen int, cached bool, err error) {
	if d.Cache == nil || !d.Cache.Enabled {
		if appendOnly {
			return 0, 0, false, qerr.New(qerr.InvalidArgument, "append_only requires an enabled cache")
		}
		return 0, ntoken, false, nil
	}

	d.Cache.EnsureAllocated()
	if appendOnly {
		return d.Cache.PastLen, ntoken, true, nil
	}

	if ntoken > d.Cache.PastLen {
		return d.Cache.PastLen, ntoken - d.Cache.PastLen, true, nil
	}
	// Discard the cached prefix by recomputing from position 0. Forward
	// resets PastLen only once the input ids have been embedded.
	return 0, ntoken, true, nil
}

// Forward runs the full pipeline described in the specification and
// writes the last token's logits (shape [1, voc]) into logitsOut. The
// cache cursor only advances after the entire pass succeeds.
func (d *Decoder[T]) Forward(ids []int64, appendOnly bool, logitsOut []T) error {
	m := d.Meta
	ntoken := len(ids)
	if ntoken == 0 {
		return qerr.New(qerr.InvalidArgument, "empty input")
	}
	if len(logitsOut) < m.Voc {
		return qerr.New(qerr.InvalidArgument, fmt.Sprintf("logitsOut too short for voc=%d", m.Voc))
	}

	pastLen, curLen, cached, err := d.lens(ntoken, appendOnly)
	if err != nil {
		return err
	}
	if pastLen+curLen > m.MaxSeq {
		return qerr.New(qerr.InvalidArgument, fmt.Sprintf("past_len+cur_len=%d exceeds maxseq=%d", pastLen+curLen, m.MaxSeq))
	}

	idx := ids[ntoken-curLen:]
	pos := make([]int64, curLen)
	for i := range pos {
		pos[i] = int64(pastLen + i)
	}

	qDim := m.NH * m.DH
	kvDim := m.NKVH * m.DH
	kvLen := curLen
	if cached {
		kvLen = pastLen + curLen
	}

	hidden := make([]T, curLen*m.HS)
	kernel.EmbeddingGather(hidden, idx, d.Weights.InEmbed, m.HS)
	if cached && pastLen < d.Cache.PastLen {
		// The cache slots about to be overwritten held the old prefix.
		d.Cache.Reset()
	}

	norm := make([]T, curLen*m.HS)
	q2 := make([]T, curLen*qDim)
	k2 := make([]T, curLen*kvDim)
	v2 := make([]T, curLen*kvDim)
	attnOut := make([]T, curLen*qDim)
	proj := make([]T, curLen*m.HS)
	mn := make([]T, curLen*m.HS)
	gate := make([]T, curLen*m.DI)
	up := make([]T, curLen*m.DI)
	swi := make([]T, curLen*m.DI)
	mlpOut := make([]T, curLen*m.HS)
	scores := make([]float32, kvLen)
	scale := float32(1.0 / stdmath.Sqrt(float64(m.DH)))

	for l := 0; l < m.NLayer; l++ {
		layer := d.Weights.Layers[l]

		kernel.RMSNorm(norm, hidden, layer.AttnNormW, curLen, m.HS, m.Epsilon)

		kernel.Linear(q2, norm, layer.AttnQW, layer.AttnQB, curLen, m.HS, qDim)
		kernel.Linear(k2, norm, layer.AttnKW, layer.AttnKB, curLen, m.HS, kvDim)
		kernel.Linear(v2, norm, layer.AttnVW, layer.AttnVB, curLen, m.HS, kvDim)

		kernel.RoPE(q2, q2, pos, curLen, m.NH, m.DH, m.Theta)
		kernel.RoPE(k2, k2, pos, curLen, m.NKVH, m.DH, m.Theta)

		checkView3(q2, curLen, m.NH, m.DH)
		checkView3(k2, curLen, m.NKVH, m.DH)
		checkView3(v2, curLen, m.NKVH, m.DH)

		var kAtt, vAtt []T
		if cached {
			lc := d.Cache.Layers[l]
			maxSeq := d.Cache.MaxSeq()
			writeShape := []int64{int64(curLen), int64(m.NKVH), int64(m.DH)}
			cacheStrides := []int64{int64(m.NKVH * m.DH), int64(m.DH), 1}

			kWriteSlot := rows2D(lc.K, maxSeq, m.NKVH*m.DH, pastLen, maxSeq)
			vWriteSlot := rows2D(lc.V, maxSeq, m.NKVH*m.DH, pastLen, maxSeq)
			kernel.Rearrange(kWriteSlot, 0, cacheStrides, k2, 0, cacheStrides, writeShape)
			kernel.Rearrange(vWriteSlot, 0, cacheStrides, v2, 0, cacheStrides, writeShape)

			kAtt = rows2D(lc.K, maxSeq, m.NKVH*m.DH, 0, kvLen)
			vAtt = rows2D(lc.V, maxSeq, m.NKVH*m.DH, 0, kvLen)
		} else {
			kAtt = k2
			vAtt = v2
		}

		kernel.SelfAttention(attnOut, q2, kAtt, vAtt, scores, curLen, kvLen, m.NH, m.NKVH, m.DH, m.DH, scale)

		kernel.Linear(proj, attnOut, layer.AttnOW, nil, curLen, qDim, m.HS)
		kernel.Add(hidden, hidden, proj)

		kernel.RMSNorm(mn, hidden, layer.MLPNormW, curLen, m.HS, m.Epsilon)
		kernel.Linear(gate, mn, layer.MLPGateW, nil, curLen, m.HS, m.DI)
		kernel.Linear(up, mn, layer.MLPUpW, nil, curLen, m.HS, m.DI)
		kernel.SwiGLU(swi, gate, up)
		kernel.Linear(mlpOut, swi, layer.MLPDownW, nil, curLen, m.DI, m.HS)
		kernel.Add(hidden, hidden, mlpOut)
	}

	if cached {
		d.Cache.PastLen = pastLen + curLen
	}

	lastRow := rows2D(hidden, curLen, m.HS, curLen-1, curLen)
	lastNorm := make([]T, m.HS)
	kernel.RMSNorm(lastNorm, lastRow, d.Weights.OutNormW, 1, m.HS, m.Epsilon)
	kernel.Linear(logitsOut[:m.Voc], lastNorm, d.Weights.OutEmbed, nil, 1, m.HS, m.Voc)

	return nil
}
