package sampler

import (
	"math"
	"math/rand"
	"sort"

	"github.com/samber/lo"

	"github.com/go-qwen2/qwen2core/numeric"
)

// scaled copies logits into a float32 working row, widening through
// numeric.ToF32 the same way every kernel does.
func scaled[T numeric.Floats](logits []T) []float32 {
	return lo.Map(logits, func(x T, _ int) float32 { return numeric.ToF32(x) })
}

// Temperature divides every logit by temp (temp > 0) before softmax-style
// sampling. Returns a new float32 row; the input is never mutated.
func Temperature[T numeric.Floats](logits []T, temp float32) []float32 {
	row := scaled(logits)
	if temp <= 0 || temp == 1 {
		return row
	}
	return lo.Map(row, func(x float32, _ int) float32 { return x / temp })
}

// candidate pairs a vocabulary index with its logit, used by TopK/TopP to
// sort without losing the original index.
type candidate struct {
	idx   int64
	logit float32
}

func candidates(row []float32) []candidate {
	return lo.Map(row, func(x float32, i int) candidate { return candidate{idx: int64(i), logit: x} })
}

func softmax(cands []candidate) []float64 {
	maxLogit := lo.MaxBy(cands, func(a, b candidate) bool { return a.logit > b.logit }).logit
	weights := make([]float64, len(cands))
	var sum float64
	for i, c := range cands {
		w := math.Exp(float64(c.logit - maxLogit))
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

func sampleFrom(cands []candidate, weights []float64, rng *rand.Rand) int64 {
	if len(cands) == 1 {
		return cands[0].idx
	}
	r := rng.Float64()
	var acc float64
	for i, w := range weights {
		acc += w
		if r <= acc {
			return cands[i].idx
		}
	}
	return cands[len(cands)-1].idx
}

// TopK restricts sampling to the k highest-logit candidates (after an
// optional temperature row is supplied), then samples proportionally to
// their softmax weight using rng.
func TopK(row []float32, k int, rng *rand.Rand) int64 {
	cands := candidates(row)
	sort.Slice(cands, func(i, j int) bool { return cands[i].logit > cands[j].logit })
	if k > 0 && k < len(cands) {
		cands = cands[:k]
	}
	return sampleFrom(cands, softmax(cands), rng)
}

// TopP restricts sampling to the smallest prefix of logits (sorted
// descending) whose cumulative softmax mass reaches p, then samples
// proportionally within that nucleus using rng.
func TopP(row []float32, p float32, rng *rand.Rand) int64 {
	cands := candidates(row)
	sort.Slice(cands, func(i, j int) bool { return cands[i].logit > cands[j].logit })
	weights := softmax(cands)

	var cum float64
	cut := len(cands)
	for i, w := range weights {
		cum += w
		if cum >= float64(p) {
			cut = i + 1
			break
		}
	}
	cands = cands[:cut]
	weights = weights[:cut]

	total := lo.Reduce(weights, func(acc float64, w float64, _ int) float64 { return acc + w }, 0.0)
	for i := range weights {
		weights[i] /= total
	}
	return sampleFrom(cands, weights, rng)
}
