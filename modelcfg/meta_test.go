package modelcfg

import (
	"testing"

	"github.com/go-qwen2/qwen2core/qerr"
)

func validMeta() Meta {
	return Meta{
		NLayer: 2, HS: 8, NH: 4, NKVH: 2, DH: 2, DI: 16,
		MaxSeq: 32, Voc: 100, Epsilon: 1e-6, Theta: 10000, EndTok: 1,
	}
}

func TestValidateAcceptsWellFormedMeta(t *testing.T) {
	if err := validMeta().Validate(); err != nil {
		t.Fatalf("Validate() on a well-formed Meta returned %v", err)
	}
}

func TestGroupFactor(t *testing.T) {
	m := validMeta()
	if g := m.GroupFactor(); g != 2 {
		t.Errorf("GroupFactor() = %d, want 2", g)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Meta)
	}{
		{"nlayer zero", func(m *Meta) { m.NLayer = 0 }},
		{"nh not multiple of nkvh", func(m *Meta) { m.NH = 5 }},
		{"dh odd", func(m *Meta) { m.DH = 3; m.HS = m.NH * m.DH }},
		{"hs mismatch", func(m *Meta) { m.HS = m.HS + 1 }},
		{"di zero", func(m *Meta) { m.DI = 0 }},
		{"maxseq zero", func(m *Meta) { m.MaxSeq = 0 }},
		{"voc zero", func(m *Meta) { m.Voc = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMeta()
			tt.mut(&m)
			err := m.Validate()
			if err == nil {
				t.Fatalf("Validate() on %s: expected an error", tt.name)
			}
			if kind, ok := qerr.KindOf(err); !ok || kind != qerr.InvalidMeta {
				t.Errorf("Validate() on %s: got Kind %v, want InvalidMeta", tt.name, kind)
			}
		})
	}
}
