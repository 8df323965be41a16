// Package sampler turns a logits row into a chosen token id. Greedy
// argmax is the only policy the core guarantees; Temperature/TopK/TopP are
// optional stateless post-processors over a copied row, per the
// specification's design notes — none of them are invoked by
// Session.Prefill/Step/Infer.
package sampler

import (
	"github.com/go-qwen2/qwen2core/kernel"
	"github.com/go-qwen2/qwen2core/numeric"
)

// Greedy returns the index of the maximum logit, lowest index wins ties.
func Greedy[T numeric.Floats](logits []T) int64 {
	idx, _ := kernel.Argmax(logits)
	return idx
}
