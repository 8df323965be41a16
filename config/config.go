// Package config loads a Meta (and a sibling weight-file location, for
// the CLI) from a YAML document, the same way inference-sim's cmd package
// composes its run parameters from a config file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-qwen2/qwen2core/modelcfg"
	"github.com/go-qwen2/qwen2core/numeric"
)

// File is the on-disk schema for a run configuration.
type File struct {
	Dtype      string  `yaml:"dtype"`
	NLayer     int     `yaml:"nlayer"`
	HiddenSize int     `yaml:"hidden_size"`
	NHeads     int     `yaml:"n_heads"`
	NKVHeads   int     `yaml:"n_kv_heads"`
	HeadDim    int     `yaml:"head_dim"`
	Intermed   int     `yaml:"intermediate_size"`
	MaxSeq     int     `yaml:"max_seq_len"`
	VocabSize  int     `yaml:"vocab_size"`
	Epsilon    float32 `yaml:"epsilon"`
	Theta      float32 `yaml:"rope_theta"`
	EndToken   int64   `yaml:"end_token"`

	WeightsPath   string `yaml:"weights_path"`
	TokenizerPath string `yaml:"tokenizer_path"`
}

// parseDtype maps the config file's dtype string to numeric.Dtype.
func parseDtype(s string) (numeric.Dtype, error) {
	switch s {
	case "", "f32", "float32":
		return numeric.F32, nil
	case "fp16", "f16", "float16":
		return numeric.FP16, nil
	case "bf16", "bfloat16":
		return numeric.BF16Dtype, nil
	default:
		return 0, &unsupportedDtypeError{s}
	}
}

type unsupportedDtypeError struct{ s string }

func (e *unsupportedDtypeError) Error() string { return "config: unsupported dtype " + e.s }

// Load reads and parses a YAML config file into a File.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Meta converts a parsed File into a validated modelcfg.Meta.
func (f File) Meta() (modelcfg.Meta, error) {
	dtype, err := parseDtype(f.Dtype)
	if err != nil {
		return modelcfg.Meta{}, err
	}
	m := modelcfg.Meta{
		Dtype:   dtype,
		NLayer:  f.NLayer,
		HS:      f.HiddenSize,
		NH:      f.NHeads,
		NKVH:    f.NKVHeads,
		DH:      f.HeadDim,
		DI:      f.Intermed,
		MaxSeq:  f.MaxSeq,
		Voc:     f.VocabSize,
		Epsilon: f.Epsilon,
		Theta:   f.Theta,
		EndTok:  f.EndToken,
	}
	if err := m.Validate(); err != nil {
		return modelcfg.Meta{}, err
	}
	return m, nil
}

// LoadMeta is a convenience wrapper combining Load and Meta.
func LoadMeta(path string) (modelcfg.Meta, File, error) {
	f, err := Load(path)
	if err != nil {
		return modelcfg.Meta{}, File{}, err
	}
	m, err := f.Meta()
	return m, f, err
}
