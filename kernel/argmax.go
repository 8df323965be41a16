package kernel

import (
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// Argmax returns the index and value of the maximum element of x. Ties are
// broken in favor of the lowest index: the scan only advances on a strict
// '>' comparison.
func Argmax[T numeric.Floats](x []T) (idx int64, val float32) {
	if len(x) == 0 {
		fail(qerr.InvalidArgument, "argmax: empty input")
	}
	bestIdx := int64(0)
	bestVal := numeric.ToF32(x[0])
	for i := 1; i < len(x); i++ {
		v := numeric.ToF32(x[i])
		if v > bestVal {
			bestVal = v
			bestIdx = int64(i)
		}
	}
	return bestIdx, bestVal
}
