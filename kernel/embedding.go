package kernel

import (
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// EmbeddingGather copies row idx[i] of weight into row i of out, for each
// i in [0, len(idx)). weight is [voc, hs] row-major; out is [len(idx), hs].
// Every idx[i] must be in [0, voc); out-of-range indices raise
// qerr.InvalidIndex.
func EmbeddingGather[T numeric.Floats](out []T, idx []int64, weight []T, hs int) {
	if hs <= 0 {
		fail(qerr.InvalidArgument, "embedding_gather: hs must be positive, got %d", hs)
	}
	if len(weight)%hs != 0 {
		fail(qerr.InvalidArgument, "embedding_gather: weight length %d not a multiple of hs=%d", len(weight), hs)
	}
	voc := int64(len(weight) / hs)
	if len(out) < len(idx)*hs {
		fail(qerr.InvalidArgument, "embedding_gather: out too short for %d rows of width %d", len(idx), hs)
	}

	for i, id := range idx {
		if id < 0 || id >= voc {
			fail(qerr.InvalidIndex, "embedding_gather: index %d out of range [0, %d)", id, voc)
		}
		copy(out[i*hs:(i+1)*hs], weight[id*int64(hs):id*int64(hs)+int64(hs)])
	}
}
