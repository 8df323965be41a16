package kernel

import (
	stdmath "math"

	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// RMSNorm computes root-mean-square normalization over rows of width dim.
// For each row r: s = mean(in[r]^2) in float32, k = 1/sqrt(s+eps),
// out[r,j] = in[r,j]*k*w[j]. There is no mean subtraction and no bias term
// — unlike layer norm, RMSNorm only carries a per-feature scale.
func RMSNorm[T numeric.Floats](out, in []T, w []T, rows, dim int, eps float32) {
	if dim <= 0 || rows < 0 {
		fail(qerr.InvalidArgument, "rms_norm: invalid shape rows=%d dim=%d", rows, dim)
	}
	if len(in) < rows*dim || len(out) < rows*dim {
		fail(qerr.InvalidArgument, "rms_norm: in/out too short for [%d,%d]", rows, dim)
	}
	if len(w) < dim {
		fail(qerr.InvalidArgument, "rms_norm: w too short for dim=%d", dim)
	}

	invDim := float32(1.0) / float32(dim)
	for r := 0; r < rows; r++ {
		off := r * dim
		var sumSq float32
		for j := 0; j < dim; j++ {
			x := numeric.ToF32(in[off+j])
			sumSq += x * x
		}
		meanSq := sumSq * invDim
		k := float32(1.0 / stdmath.Sqrt(float64(meanSq+eps)))

		for j := 0; j < dim; j++ {
			x := numeric.ToF32(in[off+j])
			wj := numeric.ToF32(w[j])
			out[off+j] = numeric.FromF32[T](x * k * wj)
		}
	}
}
