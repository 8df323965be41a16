// Package tensor provides an immutable shape/stride descriptor over a
// caller-owned buffer. Views are non-owning: Slice and Reshape produce new
// descriptors into the same backing storage. Kernels never consult a View
// directly (they take raw typed slices plus shape scalars); View exists so
// the decoder and session layers can reason about shapes and contiguity
// without duplicating bounds arithmetic at every call site.
package tensor

import (
	"fmt"

	"github.com/go-qwen2/qwen2core/numeric"
)

// View is an immutable descriptor: element type, logical shape, strides in
// elements, and an offset (also in elements) into the buffer. Shape and strides are
// row-major logical order; a View is contiguous iff its strides equal the
// standard row-major strides derived from its shape.
type View struct {
	Dtype   numeric.Dtype
	Shape   []int64
	Strides []int64
	Offset  int64
}

// RowMajorStrides computes the standard contiguous strides for shape.
func RowMajorStrides(shape []int64) []int64 {
	n := len(shape)
	strides := make([]int64, n)
	acc := int64(1)
	for i := n - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// New builds a contiguous View over shape starting at element offset 0.
func New(dtype numeric.Dtype, shape []int64) View {
	return View{Dtype: dtype, Shape: append([]int64(nil), shape...), Strides: RowMajorStrides(shape), Offset: 0}
}

// Contiguous reports whether v's strides match the row-major strides
// derived from its shape — the precondition every kernel except Rearrange
// requires of its inputs.
func (v View) Contiguous() bool {
	want := RowMajorStrides(v.Shape)
	if len(want) != len(v.Strides) {
		return false
	}
	for i := range want {
		if want[i] != v.Strides[i] {
			return false
		}
	}
	return true
}

// NumElements returns the logical element count (product of Shape).
func (v View) NumElements() int64 {
	n := int64(1)
	for _, s := range v.Shape {
		n *= s
	}
	return n
}

// Slice returns the sub-view of rows [start, end) along the leading
// dimension, sharing the same backing storage. The leading dimension must
// exist and the view must be contiguous in that dimension's stride.
func (v View) Slice(start, end int64) (View, error) {
	if len(v.Shape) == 0 {
		return View{}, fmt.Errorf("tensor: cannot slice a 0-dimensional view")
	}
	if start < 0 || end > v.Shape[0] || start > end {
		return View{}, fmt.Errorf("tensor: slice [%d:%d) out of bounds for dim0=%d", start, end, v.Shape[0])
	}
	out := v
	out.Shape = append([]int64(nil), v.Shape...)
	out.Shape[0] = end - start
	out.Offset = v.Offset + start*v.Strides[0]
	out.Strides = append([]int64(nil), v.Strides...)
	return out, nil
}

// Reshape returns a view of the same backing storage under a new logical
// shape. Only valid for a contiguous view whose element count matches.
func (v View) Reshape(shape []int64) (View, error) {
	if !v.Contiguous() {
		return View{}, fmt.Errorf("tensor: reshape requires a contiguous view")
	}
	out := New(v.Dtype, shape)
	if out.NumElements() != v.NumElements() {
		return View{}, fmt.Errorf("tensor: reshape element count mismatch: %d vs %d", out.NumElements(), v.NumElements())
	}
	out.Offset = v.Offset
	return out, nil
}
