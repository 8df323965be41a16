package kernel

import (
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// Add computes the elementwise sum out = a + b over matching-length slices.
func Add[T numeric.Floats](out, a, b []T) {
	n := min(len(a), len(b))
	if len(out) < n {
		fail(qerr.InvalidArgument, "add: out too short for %d elements", n)
	}
	for i := 0; i < n; i++ {
		out[i] = numeric.FromF32[T](numeric.ToF32(a[i]) + numeric.ToF32(b[i]))
	}
}
