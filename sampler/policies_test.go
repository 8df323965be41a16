package sampler

import (
	"math"
	"math/rand"
	"testing"
)

func TestTemperatureIdentityAtOne(t *testing.T) {
	logits := []float32{1, 2, 3}
	row := Temperature(logits, 1.0)
	for i, v := range row {
		if v != logits[i] {
			t.Errorf("Temperature(1.0)[%d] = %v, want %v", i, v, logits[i])
		}
	}
}

func TestTemperatureScalesDown(t *testing.T) {
	logits := []float32{2, 4}
	row := Temperature(logits, 2.0)
	if row[0] != 1 || row[1] != 2 {
		t.Errorf("Temperature(2.0) = %v, want [1 2]", row)
	}
}

func TestTopKSingleCandidateAlwaysWins(t *testing.T) {
	row := []float32{1, 100, 2, 3}
	rng := rand.New(rand.NewSource(1))
	id := TopK(row, 1, rng)
	if id != 1 {
		t.Errorf("TopK(k=1) = %d, want 1 (the sole candidate, max logit)", id)
	}
}

func TestTopKZeroMeansUnrestricted(t *testing.T) {
	row := []float32{1, 1, 1, 1}
	rng := rand.New(rand.NewSource(1))
	id := TopK(row, 0, rng)
	if id < 0 || id >= int64(len(row)) {
		t.Errorf("TopK(k=0) = %d, out of range", id)
	}
}

func TestTopPNarrowMassPicksTopCandidate(t *testing.T) {
	row := []float32{10, -10, -10, -10}
	rng := rand.New(rand.NewSource(1))
	id := TopP(row, 0.5, rng)
	if id != 0 {
		t.Errorf("TopP with a dominant logit = %d, want 0", id)
	}
}

func TestSoftmaxSumsToOne(t *testing.T) {
	cands := candidates([]float32{1, 2, 3})
	weights := softmax(cands)
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("softmax weights sum to %v, want 1.0", sum)
	}
}
