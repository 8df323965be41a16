package kernel

import (
	stdmath "math"

	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// SwiGLU computes the elementwise gated activation out = up * silu(gate),
// where silu(x) = x * sigmoid(x) = x / (1 + e^-x).
func SwiGLU[T numeric.Floats](out, gate, up []T) {
	n := min(len(gate), len(up))
	if len(out) < n {
		fail(qerr.InvalidArgument, "swiglu: out too short for %d elements", n)
	}
	for i := 0; i < n; i++ {
		g := numeric.ToF32(gate[i])
		u := numeric.ToF32(up[i])
		sigmoid := float32(1.0 / (1.0 + stdmath.Exp(-float64(g))))
		out[i] = numeric.FromF32[T](u * g * sigmoid)
	}
}
