package kernel

import (
	stdmath "math"

	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// RoPE applies rotary positional embedding to in, of shape [seqLen, heads,
// headDim], writing the result into out; out may alias in for an in-place
// rotation. headDim must be even: for each position s, head h and
// pair index j in [0, headDim/2), the pair (in[s,h,j], in[s,h,j+half]) is
// rotated by the angle phi = pos[s] / theta^(2j/headDim).
func RoPE[T numeric.Floats](out, in []T, pos []int64, seqLen, heads, headDim int, theta float32) {
	if headDim <= 0 || headDim%2 != 0 {
		fail(qerr.InvalidArgument, "rope: headDim must be even and positive, got %d", headDim)
	}
	if seqLen < 0 || heads <= 0 {
		fail(qerr.InvalidArgument, "rope: invalid shape seqLen=%d heads=%d", seqLen, heads)
	}
	n := seqLen * heads * headDim
	if len(in) < n || len(out) < n {
		fail(qerr.InvalidArgument, "rope: in/out too short for [%d,%d,%d]", seqLen, heads, headDim)
	}
	if len(pos) < seqLen {
		fail(qerr.InvalidArgument, "rope: pos too short for seqLen=%d", seqLen)
	}

	half := headDim / 2
	thetaF64 := float64(theta)
	for s := 0; s < seqLen; s++ {
		p := float64(pos[s])
		for h := 0; h < heads; h++ {
			base := s*heads*headDim + h*headDim
			for j := 0; j < half; j++ {
				exponent := (2.0 * float64(j)) / float64(headDim)
				denom := stdmath.Pow(thetaF64, exponent)
				phi := p / denom
				c := float32(stdmath.Cos(phi))
				sn := float32(stdmath.Sin(phi))

				a := numeric.ToF32(in[base+j])
				b := numeric.ToF32(in[base+j+half])

				out[base+j] = numeric.FromF32[T](a*c - b*sn)
				out[base+j+half] = numeric.FromF32[T](b*c + a*sn)
			}
		}
	}
}
