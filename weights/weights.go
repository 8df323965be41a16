// Package weights defines the borrowed (caller-owned) tensor references
// the session reads during a forward pass. Nothing in this package copies
// or frees these slices; their lifetime must exceed the session's.
package weights

import "github.com/go-qwen2/qwen2core/numeric"

// Layer holds one decoder layer's weights, in the orientations kernel.Linear
// expects: projection weights are [outFeatures, inFeatures] row-major.
type Layer[T numeric.Floats] struct {
	AttnNormW []T // [hs]
	MLPNormW  []T // [hs]

	AttnQW []T // [nh*dh, hs]
	AttnQB []T // [nh*dh], optional (nil to omit)
	AttnKW []T // [nkvh*dh, hs]
	AttnKB []T // [nkvh*dh], optional
	AttnVW []T // [nkvh*dh, hs]
	AttnVB []T // [nkvh*dh], optional
	AttnOW []T // [hs, nh*dh], unbiased

	MLPGateW []T // [di, hs]
	MLPUpW   []T // [di, hs]
	MLPDownW []T // [hs, di], unbiased
}

// Weights is the full borrowed weight table for a model: the shared
// embedding/output/norm tensors plus one Layer per decoder layer.
//
// Whether OutEmbed aliases InEmbed (tied embeddings) is unspecified at
// this layer: the engine treats them as independent references and never
// assumes they share storage.
type Weights[T numeric.Floats] struct {
	InEmbed  []T // [voc, hs]
	OutEmbed []T // [voc, hs]
	OutNormW []T // [hs]
	Layers   []Layer[T]
}
