// Copyright 2025 sight Authors
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

package simd

import "unsafe"

// SetInt32x4 returns a vector with every lane set to i.
func SetInt32x4(i int32) Int32x4 {
	return Int32x4{i, i, i, i}
}

// NewInt32x4 returns a vector with lane k set to ik.
func NewInt32x4(i0, i1, i2, i3 int32) Int32x4 {
	return Int32x4{i0, i1, i2, i3}
}

// Int32x4FromM128 reinterprets a register image as four int32 lanes.
func Int32x4FromM128(r M128) Int32x4 {
	var v Int32x4
	for i := range v {
		v[i] = int32(r.lane(i))
	}
	return v
}

// Bits returns the register image of v.
func (v Int32x4) Bits() M128 {
	var r M128
	for i := range v {
		r.setLane(i, uint32(v[i]))
	}
	return r
}

// Get returns lane i. It is meant for debugging and tests; index v directly
// in hot code.
func (v Int32x4) Get(i int) int32 {
	return v[i]
}

// LoadInt32x4 loads four lanes from src[0:4]. src may have any alignment.
// It panics if len(src) < 4.
func LoadInt32x4(src []int32) Int32x4 {
	_ = src[3]
	return Int32x4{src[0], src[1], src[2], src[3]}
}

// LoadInt32x4Aligned loads four lanes from src[0:4] with a single 16-byte
// read. The caller guarantees &src[0] is 16-byte aligned (see mem.IsAligned);
// this is not checked. It panics if len(src) < 4.
func LoadInt32x4Aligned(src []int32) Int32x4 {
	_ = src[3]
	return *(*Int32x4)(unsafe.Pointer(unsafe.SliceData(src)))
}

// Store writes the four lanes to dst[0:4]. dst may have any alignment.
// It panics if len(dst) < 4.
func (v Int32x4) Store(dst []int32) {
	_ = dst[3]
	dst[0], dst[1], dst[2], dst[3] = v[0], v[1], v[2], v[3]
}

// StoreAligned writes the four lanes to dst[0:4] with a single 16-byte
// write. The caller guarantees &dst[0] is 16-byte aligned; this is not
// checked. It panics if len(dst) < 4.
func (v Int32x4) StoreAligned(dst []int32) {
	_ = dst[3]
	*(*Int32x4)(unsafe.Pointer(unsafe.SliceData(dst))) = v
}

// Add returns v[i] + w[i], wrapping on overflow (paddd).
func (v Int32x4) Add(w Int32x4) Int32x4 {
	return Int32x4{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// Sub returns v[i] - w[i], wrapping on overflow (psubd).
func (v Int32x4) Sub(w Int32x4) Int32x4 {
	return Int32x4{v[0] - w[0], v[1] - w[1], v[2] - w[2], v[3] - w[3]}
}

// Mul returns the low 32 bits of v[i] * w[i]. The strategy depends on
// CurrentLevel; MulSSE41 and MulSSE2 give identical results.
func (v Int32x4) Mul(w Int32x4) Int32x4 {
	return mulInt32x4(v, w)
}

// And returns v & w.
func (v Int32x4) And(w Int32x4) Int32x4 {
	return Int32x4{v[0] & w[0], v[1] & w[1], v[2] & w[2], v[3] & w[3]}
}

// AndNot returns ^v & w, the operand order of pandn.
func (v Int32x4) AndNot(w Int32x4) Int32x4 {
	return Int32x4{^v[0] & w[0], ^v[1] & w[1], ^v[2] & w[2], ^v[3] & w[3]}
}

// Or returns v | w.
func (v Int32x4) Or(w Int32x4) Int32x4 {
	return Int32x4{v[0] | w[0], v[1] | w[1], v[2] | w[2], v[3] | w[3]}
}

// Xor returns v ^ w.
func (v Int32x4) Xor(w Int32x4) Int32x4 {
	return Int32x4{v[0] ^ w[0], v[1] ^ w[1], v[2] ^ w[2], v[3] ^ w[3]}
}

// Not returns v ^ 0xFFFFFFFF in every lane.
func (v Int32x4) Not() Int32x4 {
	return v.Xor(SetInt32x4(-1))
}

// Less returns a mask of v[i] < w[i] (pcmpgtd with swapped operands).
func (v Int32x4) Less(w Int32x4) Int32x4 {
	return w.Greater(v)
}

// LessEqual returns the mask Not(v > w).
func (v Int32x4) LessEqual(w Int32x4) Int32x4 {
	return v.Greater(w).Not()
}

// Greater returns a mask of v[i] > w[i] (pcmpgtd).
func (v Int32x4) Greater(w Int32x4) Int32x4 {
	return Int32x4{
		mask32(v[0] > w[0]),
		mask32(v[1] > w[1]),
		mask32(v[2] > w[2]),
		mask32(v[3] > w[3]),
	}
}

// GreaterEqual returns the mask Not(v < w).
func (v Int32x4) GreaterEqual(w Int32x4) Int32x4 {
	return v.Less(w).Not()
}

// Equal returns a mask of v[i] == w[i] (pcmpeqd).
func (v Int32x4) Equal(w Int32x4) Int32x4 {
	return Int32x4{
		mask32(v[0] == w[0]),
		mask32(v[1] == w[1]),
		mask32(v[2] == w[2]),
		mask32(v[3] == w[3]),
	}
}

// NotEqual returns the mask Not(v == w).
func (v Int32x4) NotEqual(w Int32x4) Int32x4 {
	return v.Equal(w).Not()
}

// ToFloat converts each lane to the nearest float32, ties to even (cvtdq2ps).
// Magnitudes above 2^24 may lose precision.
func (v Int32x4) ToFloat() Float32x4 {
	return Float32x4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// AsFloat32x4 reinterprets the lane bits as float32 without conversion.
func (v Int32x4) AsFloat32x4() Float32x4 {
	return *(*Float32x4)(unsafe.Pointer(&v))
}

// MaskBits gathers the sign bit of each lane into bits 0..3 (movmskps).
func (v Int32x4) MaskBits() uint8 {
	var bits uint8
	for i := range v {
		bits |= uint8(uint32(v[i])>>31) << i
	}
	return bits
}

// AllTrue reports whether every lane of the mask v has its sign bit set.
func (v Int32x4) AllTrue() bool {
	return v.MaskBits() == 0xF
}

// AnyTrue reports whether at least one lane of the mask v has its sign bit set.
func (v Int32x4) AnyTrue() bool {
	return v.MaskBits() != 0
}

func mask32(b bool) int32 {
	if b {
		return -1
	}
	return 0
}
