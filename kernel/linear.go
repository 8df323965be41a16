package kernel

import (
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// Linear computes out = in @ w^T + bias: in is [m,k], w is [n,k]
// ("output-rows x input-cols" orientation), bias is [n] or nil, out is
// [m,n]. Accumulation happens in float32 regardless of the storage dtype.
func Linear[T numeric.Floats](out, in, w []T, bias []T, m, k, n int) {
	if m < 0 || k <= 0 || n <= 0 {
		fail(qerr.InvalidArgument, "linear: invalid shape m=%d k=%d n=%d", m, k, n)
	}
	if len(in) < m*k {
		fail(qerr.InvalidArgument, "linear: in too short for [%d,%d]", m, k)
	}
	if len(w) < n*k {
		fail(qerr.InvalidArgument, "linear: w too short for [%d,%d]", n, k)
	}
	if len(out) < m*n {
		fail(qerr.InvalidArgument, "linear: out too short for [%d,%d]", m, n)
	}
	if bias != nil && len(bias) < n {
		fail(qerr.InvalidArgument, "linear: bias too short for n=%d", n)
	}

	for i := 0; i < m; i++ {
		inOff := i * k
		outOff := i * n
		for j := 0; j < n; j++ {
			wOff := j * k
			var sum float32
			for p := 0; p < k; p++ {
				sum += numeric.ToF32(in[inOff+p]) * numeric.ToF32(w[wOff+p])
			}
			if bias != nil {
				sum += numeric.ToF32(bias[j])
			}
			out[outOff+j] = numeric.FromF32[T](sum)
		}
	}
}
