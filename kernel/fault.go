// Package kernel implements the nine dtype-polymorphic compute primitives
// the decoder composes into a forward pass: EmbeddingGather, RMSNorm,
// Linear, RoPE, SelfAttention, SwiGLU, Add, Argmax and Rearrange. Every
// kernel requires contiguous inputs (Rearrange is the only strided-capable
// one), accumulates in float32 regardless of the storage dtype T, and
// raises contract violations by panicking with a Fault rather than
// returning an error — these are programmer errors in the orchestrator,
// not recoverable run-time conditions, matching the teacher's own
// panic("dense: x slice too short")-style convention.
package kernel

import (
	"fmt"

	"github.com/go-qwen2/qwen2core/qerr"
)

// Fault is the panic value raised by a kernel contract violation. The
// session layer recovers it and converts it to the external sentinel
// return value; nothing below the session layer ever recovers from one.
type Fault struct {
	Err *qerr.Error
}

func (f Fault) Error() string { return f.Err.Error() }

func fail(kind qerr.Kind, format string, args ...any) {
	panic(Fault{Err: qerr.New(kind, fmt.Sprintf(format, args...))})
}
