package kernel

import (
	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// Rearrange copies each logical element described by shape from src at its
// strided offset (per srcStrides) to dst at its strided offset (per
// dstStrides). This is the only kernel that accepts non-contiguous
// operands; it is how newly computed K/V rows are stamped into arbitrary
// cache slots at a nonzero past_len offset.
func Rearrange[T numeric.Floats](dst []T, dstOffset int64, dstStrides []int64, src []T, srcOffset int64, srcStrides []int64, shape []int64) {
	if len(shape) != len(dstStrides) || len(shape) != len(srcStrides) {
		fail(qerr.InvalidArgument, "rearrange: shape/strides rank mismatch")
	}
	rearrangeRec(dst, dstOffset, dstStrides, src, srcOffset, srcStrides, shape, 0)
}

func rearrangeRec[T numeric.Floats](dst []T, dstOffset int64, dstStrides []int64, src []T, srcOffset int64, srcStrides []int64, shape []int64, dim int) {
	if dim == len(shape) {
		dst[dstOffset] = src[srcOffset]
		return
	}
	for i := int64(0); i < shape[dim]; i++ {
		rearrangeRec(dst, dstOffset+i*dstStrides[dim], dstStrides, src, srcOffset+i*srcStrides[dim], srcStrides, shape, dim+1)
	}
}
