package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-qwen2/qwen2core/modelcfg"
	"github.com/go-qwen2/qwen2core/weights"
)

func toyMeta() modelcfg.Meta {
	return modelcfg.Meta{
		NLayer: 2, HS: 8, NH: 4, NKVH: 2, DH: 2, DI: 16,
		MaxSeq: 16, Voc: 12, Epsilon: 1e-5, Theta: 10000, EndTok: 0,
	}
}

func toyWeights(m modelcfg.Meta) *weights.Weights[float32] {
	fill := func(n int) []float32 {
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(i%7-3) * 0.01
		}
		return out
	}
	layers := make([]weights.Layer[float32], m.NLayer)
	for i := range layers {
		layers[i] = weights.Layer[float32]{
			AttnNormW: fill(m.HS),
			MLPNormW:  fill(m.HS),
			AttnQW:    fill(m.NH * m.DH * m.HS),
			AttnKW:    fill(m.NKVH * m.DH * m.HS),
			AttnVW:    fill(m.NKVH * m.DH * m.HS),
			AttnOW:    fill(m.HS * m.NH * m.DH),
			MLPGateW:  fill(m.DI * m.HS),
			MLPUpW:    fill(m.DI * m.HS),
			MLPDownW:  fill(m.HS * m.DI),
		}
	}
	return &weights.Weights[float32]{
		InEmbed:  fill(m.Voc * m.HS),
		OutEmbed: fill(m.Voc * m.HS),
		OutNormW: fill(m.HS),
		Layers:   layers,
	}
}

func TestNewRejectsInvalidMeta(t *testing.T) {
	bad := toyMeta()
	bad.NH = 3 // not a multiple of nkvh=2
	_, err := New(bad, toyWeights(toyMeta()), false)
	require.Error(t, err)
	assert.True(t, IsInvalidMeta(err))
}

func TestPrefillReturnsInRangeToken(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	got := sess.Prefill([]int64{1, 2, 3})
	assert.GreaterOrEqual(t, got, int64(0))
	assert.Less(t, got, int64(m.Voc))
}

func TestPrefillOnEmptyInputReturnsSentinel(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	assert.Equal(t, int64(-1), sess.Prefill(nil))
}

func TestStepWithoutPriorCacheStillWorks(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	first := sess.Prefill([]int64{1, 2})
	require.NotEqual(t, int64(-1), first)

	second := sess.Step([]int64{first})
	assert.GreaterOrEqual(t, second, int64(0))
}

func TestStepWithCacheDisabledReturnsSentinel(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	sess.SetKVCacheEnabled(false)
	assert.Equal(t, int64(-1), sess.Step([]int64{1}))
}

func TestResetKVCacheAllowsReprefill(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	first := sess.Prefill([]int64{1, 2, 3})
	sess.ResetKVCache()
	second := sess.Prefill([]int64{1, 2, 3})

	assert.Equal(t, first, second, "resetting and re-prefilling the same prompt must reproduce the same token")
}

func TestWeightsHandleReturnsSameReference(t *testing.T) {
	m := toyMeta()
	w := toyWeights(m)
	sess, err := New(m, w, false)
	require.NoError(t, err)

	assert.Same(t, w, sess.WeightsHandle())
}

func TestCapabilitiesReportsArch(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	assert.NotEmpty(t, sess.Capabilities().Arch)
}

func TestCloseDisablesCache(t *testing.T) {
	m := toyMeta()
	sess, err := New(m, toyWeights(m), false)
	require.NoError(t, err)

	first := sess.Prefill([]int64{1, 2, 3})
	require.NotEqual(t, int64(-1), first)

	sess.Close()
	assert.False(t, sess.Cache.Enabled)
	assert.Equal(t, int64(-1), sess.Step([]int64{first}), "step after Close must fail like any disabled cache")
}
