package kernel

import (
	stdmath "math"

	"github.com/go-qwen2/qwen2core/numeric"
	"github.com/go-qwen2/qwen2core/qerr"
)

// SelfAttention computes causal grouped-query attention.
//
//   - q is [qLen, nh, dh], k is [kvLen, nkvh, dh], v is [kvLen, nkvh, dv].
//   - out is [qLen, nh, dv].
//   - g = nh/nkvh query heads share each kv head: kvh = h/g.
//   - kvLen may exceed qLen (cached context); the causal limit for query
//     row t is L(t) = t + (kvLen-qLen), clamped to [-1, kvLen-1]: key
//     position s is attended to iff s <= L(t).
//   - scores is caller-provided scratch of length >= kvLen, reused per
//     (t,h) to avoid an allocation inside the hot loop.
//
// If every key position is masked for some row (only possible when
// kvLen-qLen < 0, i.e. qLen > kvLen, which callers must not do), that
// row's output is zero.
func SelfAttention[T numeric.Floats](out, q, k, v []T, scores []float32, qLen, kvLen, nh, nkvh, dh, dv int, scale float32) {
	if nh <= 0 || nkvh <= 0 || nh%nkvh != 0 {
		fail(qerr.InvalidArgument, "self_attention: nh=%d must be a positive multiple of nkvh=%d", nh, nkvh)
	}
	if dh <= 0 || dv <= 0 || qLen < 0 || kvLen < 0 {
		fail(qerr.InvalidArgument, "self_attention: invalid shape qLen=%d kvLen=%d dh=%d dv=%d", qLen, kvLen, dh, dv)
	}
	if len(q) < qLen*nh*dh {
		fail(qerr.InvalidArgument, "self_attention: q too short")
	}
	if len(k) < kvLen*nkvh*dh {
		fail(qerr.InvalidArgument, "self_attention: k too short")
	}
	if len(v) < kvLen*nkvh*dv {
		fail(qerr.InvalidArgument, "self_attention: v too short")
	}
	if len(out) < qLen*nh*dv {
		fail(qerr.InvalidArgument, "self_attention: out too short")
	}
	if len(scores) < kvLen {
		fail(qerr.InvalidArgument, "self_attention: scores scratch too short for kvLen=%d", kvLen)
	}

	g := nh / nkvh
	offset := kvLen - qLen

	for t := 0; t < qLen; t++ {
		causalEnd := t + offset + 1 // attend to key positions [0, causalEnd)
		if causalEnd < 0 {
			causalEnd = 0
		}
		if causalEnd > kvLen {
			causalEnd = kvLen
		}

		for h := 0; h < nh; h++ {
			kvh := h / g
			qOff := t*nh*dh + h*dh
			row := scores[:kvLen]

			maxVal := float32(stdmath.Inf(-1))
			for s := 0; s < causalEnd; s++ {
				kOff := s*nkvh*dh + kvh*dh
				var sum float32
				for d := 0; d < dh; d++ {
					sum += numeric.ToF32(q[qOff+d]) * numeric.ToF32(k[kOff+d])
				}
				logit := sum * scale
				row[s] = logit
				if logit > maxVal {
					maxVal = logit
				}
			}

			oOff := t*nh*dv + h*dv
			if causalEnd == 0 {
				for d := 0; d < dv; d++ {
					out[oOff+d] = numeric.FromF32[T](0)
				}
				continue
			}

			var expSum float32
			for s := 0; s < causalEnd; s++ {
				e := float32(stdmath.Exp(float64(row[s] - maxVal)))
				row[s] = e
				expSum += e
			}
			invSum := float32(1.0) / expSum

			for d := 0; d < dv; d++ {
				var acc float32
				for s := 0; s < causalEnd; s++ {
					vOff := s*nkvh*dv + kvh*dv
					acc += row[s] * numeric.ToF32(v[vOff+d])
				}
				out[oOff+d] = numeric.FromF32[T](acc * invSum)
			}
		}
	}
}
