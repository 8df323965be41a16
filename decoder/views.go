package decoder

import (
	"github.com/go-qwen2/qwen2core/kernel"
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
	"github.com/go-qwen2/qwen2core/tensor"
)

// rows2D treats data as a contiguous [totalRows, cols] tensor.View and
// returns the sub-slice backing rows [start, end) of it. This is how
// Forward carves the last token's hidden row and a cached key/value
// prefix out of a larger contiguous buffer, instead of recomputing
// row-major offset arithmetic inline at each call site.
func rows2D[T numeric.Floats](data []T, totalRows, cols, start, end int) []T {
	v := tensor.New(numeric.DtypeOf[T](), []int64{int64(totalRows), int64(cols)})
	sub, err := v.Slice(int64(start), int64(end))
	if err != nil {
		panic(kernel.Fault{Err: qerr.New(qerr.InvalidArgument, err.Error())})
	}
	n := sub.NumElements()
	return data[sub.Offset : sub.Offset+n]
}

// checkView3 validates that a flat [rows*heads*dh] buffer is addressable
// as a contiguous [rows, heads, dh] tensor — the "view as Q3/K3/V3" step.
// Forward runs it on the Q/K buffers after RoPE and on V, before the cache
// write and SelfAttention.
func checkView3[T numeric.Floats](data []T, rows, heads, dh int) {
	v := tensor.New(numeric.DtypeOf[T](), []int64{int64(rows), int64(heads), int64(dh)})
	if !v.Contiguous() || v.NumElements() != int64(len(data)) {
		panic(kernel.Fault{Err: qerr.New(qerr.InvalidArgument, "decoder: buffer does not match its [rows,heads,dh] view")})
	}
}
