package kernel

import (
	"math"
	"testing"
)

func TestRoPEPositionZeroIsIdentity(t *testing.T) {
	in := []float32{1, 2, 3, 4}
	out := make([]float32, 4)
	pos := []int64{0}

	RoPE(out, in, pos, 1, 1, 4, 10000)

	for i, v := range in {
		if math.Abs(float64(out[i]-v)) > 1e-5 {
			t.Errorf("position 0 should leave values unchanged: out[%d]=%v want %v", i, out[i], v)
		}
	}
}

func TestRoPEPreservesPairNorm(t *testing.T) {
	in := []float32{3, 0, 0, 4, 0, 0} // seqLen=1, heads=1, headDim=6
	out := make([]float32, 6)
	pos := []int64{5}

	RoPE(out, in, pos, 1, 1, 6, 10000)

	half := 3
	for j := 0; j < half; j++ {
		a, b := in[j], in[j+half]
		oa, ob := out[j], out[j+half]
		origNorm := math.Sqrt(float64(a*a + b*b))
		newNorm := math.Sqrt(float64(oa*oa + ob*ob))
		if math.Abs(origNorm-newNorm) > 1e-4 {
			t.Errorf("pair %d: rotation should preserve norm: %v vs %v", j, origNorm, newNorm)
		}
	}
}
