package kernel

import (
	"math"
	"testing"
)

func TestSelfAttentionCausalMaskFirstToken(t *testing.T) {
	// qLen == kvLen == 2, single head: token 0 may only attend to itself.
	q := []float32{1, 0, 0, 1} // [2,1,2]
	k := []float32{1, 0, 0, 1}
	v := []float32{5, 5, 9, 9}
	out := make([]float32, 4)
	scores := make([]float32, 2)

	SelfAttention(out, q, k, v, scores, 2, 2, 1, 1, 2, 2, 1.0)

	if math.Abs(float64(out[0]-5)) > 1e-4 || math.Abs(float64(out[1]-5)) > 1e-4 {
		t.Errorf("token 0 should attend only to itself: out=%v", out[:2])
	}
}

func TestSelfAttentionGroupedQuery(t *testing.T) {
	// nh=2, nkvh=1: both query heads share the single kv head.
	q := []float32{1, 0, 1, 0} // [1,2,2]: both heads identical
	k := []float32{1, 0}       // [1,1,2]
	v := []float32{7, 7}
	out := make([]float32, 4)
	scores := make([]float32, 1)

	SelfAttention(out, q, k, v, scores, 1, 1, 2, 1, 2, 2, 1.0)

	for i, got := range out {
		if math.Abs(float64(got-7)) > 1e-4 {
			t.Errorf("out[%d] = %v, want 7 (only one kv position available)", i, got)
		}
	}
}

func TestSelfAttentionSoftmaxSumsToOne(t *testing.T) {
	q := []float32{1, 2}
	k := []float32{1, 0, 0, 1, 1, 1} // kvLen=3
	v := []float32{1, 0, 0, 1, 1, 1}
	out := make([]float32, 2)
	scores := make([]float32, 3)

	SelfAttention(out, q, k, v, scores, 1, 3, 1, 1, 2, 2, 0.5)

	// Output must be a convex combination of v rows: bounded by min/max per dim.
	if out[0] < 0 || out[0] > 1 {
		t.Errorf("out[0] = %v should be a convex combination in [0,1]", out[0])
	}
}
