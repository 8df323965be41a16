// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package numeric

import "math"

// BF16FromF32 truncates a float32 to bfloat16 with round-to-nearest-even,
// ties to even, and NaN/Inf preserved by sign.
func BF16FromF32(f float32) BF16 {
	bits := math.Float32bits(f)

	if bits&0x7FFFFFFF > 0x7F800000 {
		return BF16((bits >> 16) | 0x0040) // canonical quiet NaN, sign preserved
	}

	rounding := uint32(0x7FFF) + ((bits >> 16) & 1)
	bits += rounding
	return BF16(bits >> 16)
}

// BF16ToF32 widens a bfloat16 to float32. Since bfloat16 is simply a
// truncated float32, this is an exact bit shift.
func BF16ToF32(b BF16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// IsNaN reports whether b encodes a NaN.
func (b BF16) IsNaN() bool {
	exp := (b >> 7) & 0xFF
	mant := b & 0x7F
	return exp == 0xFF && mant != 0
}
