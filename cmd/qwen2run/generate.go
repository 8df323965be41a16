package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-qwen2/qwen2core/config"
	"github.com/go-qwen2/qwen2core/modelcfg"
	"github.com/go-qwen2/qwen2core/session"
	"github.com/go-qwen2/qwen2core/tracelog"
	"github.com/go-qwen2/qwen2core/weights"
)

var (
	cfgPath      string
	promptIDsRaw string
	maxNewTokens int
	seed         int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prefill a token-id prompt and greedily decode new tokens",
	Run:   runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&cfgPath, "config", "", "path to a YAML model config")
	generateCmd.Flags().StringVar(&promptIDsRaw, "prompt-ids", "", "comma-separated prompt token ids")
	generateCmd.Flags().IntVar(&maxNewTokens, "max-new-tokens", 32, "decode budget after prefill")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "seed for the demo weight initializer")
	_ = generateCmd.MarkFlagRequired("config")
	_ = generateCmd.MarkFlagRequired("prompt-ids")
}

func parseIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("prompt-ids: %w", err)
		}
		ids = append(ids, v)
	}
	return ids, nil
}

// demoWeights builds a randomly initialized weight table matching meta's
// shapes. This CLI has no model-file loader; it exists to exercise the
// session/decoder path end to end, not to serve a trained checkpoint.
func demoWeights(meta modelcfg.Meta, rng *rand.Rand) *weights.Weights[float32] {
	fill := func(n int) []float32 {
		v := make([]float32, n)
		for i := range v {
			v[i] = (rng.Float32() - 0.5) * 0.02
		}
		return v
	}

	layers := make([]weights.Layer[float32], meta.NLayer)
	for i := range layers {
		layers[i] = weights.Layer[float32]{
			AttnNormW: fill(meta.HS),
			MLPNormW:  fill(meta.HS),
			AttnQW:    fill(meta.NH * meta.DH * meta.HS),
			AttnKW:    fill(meta.NKVH * meta.DH * meta.HS),
			AttnVW:    fill(meta.NKVH * meta.DH * meta.HS),
			AttnOW:    fill(meta.HS * meta.NH * meta.DH),
			MLPGateW:  fill(meta.DI * meta.HS),
			MLPUpW:    fill(meta.DI * meta.HS),
			MLPDownW:  fill(meta.HS * meta.DI),
		}
	}
	return &weights.Weights[float32]{
		InEmbed:  fill(meta.Voc * meta.HS),
		OutEmbed: fill(meta.Voc * meta.HS),
		OutNormW: fill(meta.HS),
		Layers:   layers,
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	applyLogLevel()

	meta, _, err := config.LoadMeta(cfgPath)
	if err != nil {
		tracelog.Warnf("config load failed: %v", err)
		fmt.Println(-1)
		return
	}
	if meta.Dtype != 0 {
		tracelog.Warnf("generate: only f32 is wired into this CLI demo, got dtype=%s", meta.Dtype)
	}

	ids, err := parseIDs(promptIDsRaw)
	if err != nil {
		tracelog.Warnf("%v", err)
		fmt.Println(-1)
		return
	}

	rng := rand.New(rand.NewSource(seed))
	w := demoWeights(meta, rng)

	sess, err := session.New(meta, w, traceEnabled)
	if err != nil {
		tracelog.Warnf("session create failed: %v", err)
		fmt.Println(-1)
		return
	}

	next := sess.Prefill(ids)
	generated := []int64{}
	for i := 0; i < maxNewTokens && next != meta.EndTok; i++ {
		if next < 0 {
			break
		}
		generated = append(generated, next)
		next = sess.Step([]int64{next})
	}

	fmt.Printf("prompt=%v generated=%v\n", ids, generated)
}
