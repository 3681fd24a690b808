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

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"
)

// maskTrue is the bit pattern of a true comparison lane. Read as a float32 it
// is a NaN.
const maskTrue = 0xFFFFFFFF

// SetFloat32x4 returns a vector with every lane set to f.
func SetFloat32x4(f float32) Float32x4 {
	return Float32x4{f, f, f, f}
}

// NewFloat32x4 returns a vector with lane k set to fk.
func NewFloat32x4(f0, f1, f2, f3 float32) Float32x4 {
	return Float32x4{f0, f1, f2, f3}
}

// Float32x4FromM128 reinterprets a register image as four float32 lanes.
func Float32x4FromM128(r M128) Float32x4 {
	var v Float32x4
	for i := range v {
		v[i] = math.Float32frombits(r.lane(i))
	}
	return v
}

// Bits returns the register image of v. NaN payloads are preserved.
func (v Float32x4) Bits() M128 {
	var r M128
	for i := range v {
		r.setLane(i, math.Float32bits(v[i]))
	}
	return r
}

// Get returns lane i.
func (v Float32x4) Get(i int) float32 {
	return v[i]
}

// LoadFloat32x4 loads four lanes from src[0:4]. src may have any alignment.
// It panics if len(src) < 4.
func LoadFloat32x4(src []float32) Float32x4 {
	_ = src[3]
	return Float32x4{src[0], src[1], src[2], src[3]}
}

// LoadFloat32x4Aligned loads four lanes with a single 16-byte read. The
// caller guarantees &src[0] is 16-byte aligned; this is not checked.
// It panics if len(src) < 4.
func LoadFloat32x4Aligned(src []float32) Float32x4 {
	_ = src[3]
	return *(*Float32x4)(unsafe.Pointer(unsafe.SliceData(src)))
}

// Store writes the four lanes to dst[0:4]. dst may have any alignment.
// It panics if len(dst) < 4.
func (v Float32x4) Store(dst []float32) {
	_ = dst[3]
	dst[0], dst[1], dst[2], dst[3] = v[0], v[1], v[2], v[3]
}

// StoreAligned writes the four lanes with a single 16-byte write. The
// caller guarantees &dst[0] is 16-byte aligned; this is not checked.
// It panics if len(dst) < 4.
func (v Float32x4) StoreAligned(dst []float32) {
	_ = dst[3]
	*(*Float32x4)(unsafe.Pointer(unsafe.SliceData(dst))) = v
}

// The explicit float32 conversions below force rounding after every
// operation, so the compiler cannot fuse a Mul and an Add into one FMA.

// Add returns v[i] + w[i] (addps).
func (v Float32x4) Add(w Float32x4) Float32x4 {
	return Float32x4{float32(v[0] + w[0]), float32(v[1] + w[1]), float32(v[2] + w[2]), float32(v[3] + w[3])}
}

// Sub returns v[i] - w[i] (subps).
func (v Float32x4) Sub(w Float32x4) Float32x4 {
	return Float32x4{float32(v[0] - w[0]), float32(v[1] - w[1]), float32(v[2] - w[2]), float32(v[3] - w[3])}
}

// Mul returns v[i] * w[i] (mulps).
func (v Float32x4) Mul(w Float32x4) Float32x4 {
	return Float32x4{float32(v[0] * w[0]), float32(v[1] * w[1]), float32(v[2] * w[2]), float32(v[3] * w[3])}
}

// Div returns v[i] / w[i] (divps). Division by zero yields a signed
// infinity, 0/0 yields NaN.
func (v Float32x4) Div(w Float32x4) Float32x4 {
	return Float32x4{float32(v[0] / w[0]), float32(v[1] / w[1]), float32(v[2] / w[2]), float32(v[3] / w[3])}
}

// And returns the bitwise AND of the lane patterns (andps).
func (v Float32x4) And(w Float32x4) Float32x4 {
	return v.AsInt32x4().And(w.AsInt32x4()).AsFloat32x4()
}

// AndNot returns ^v & w on the lane patterns (andnps).
func (v Float32x4) AndNot(w Float32x4) Float32x4 {
	return v.AsInt32x4().AndNot(w.AsInt32x4()).AsFloat32x4()
}

// Or returns the bitwise OR of the lane patterns (orps).
func (v Float32x4) Or(w Float32x4) Float32x4 {
	return v.AsInt32x4().Or(w.AsInt32x4()).AsFloat32x4()
}

// Xor returns the bitwise XOR of the lane patterns (xorps).
func (v Float32x4) Xor(w Float32x4) Float32x4 {
	return v.AsInt32x4().Xor(w.AsInt32x4()).AsFloat32x4()
}

// Not flips every bit of every lane. The result is rarely a meaningful
// number: Not of 1.203 is a finite negative value, Not of +0 is a NaN.
func (v Float32x4) Not() Float32x4 {
	return v.AsInt32x4().Not().AsFloat32x4()
}

// Less returns a mask of v[i] < w[i]. Ordered: false if either lane is NaN
// (cmpltps).
func (v Float32x4) Less(w Float32x4) Float32x4 {
	return compare(v, w, func(a, b float32) bool { return a < b })
}

// LessEqual returns a mask of !(v[i] > w[i]) (cmpngtps). Unordered: true if
// either lane is NaN. This differs from Less or Equal on NaN inputs.
func (v Float32x4) LessEqual(w Float32x4) Float32x4 {
	return compare(v, w, func(a, b float32) bool { return !(a > b) })
}

// Greater returns a mask of v[i] > w[i]. Ordered (cmpgtps).
func (v Float32x4) Greater(w Float32x4) Float32x4 {
	return compare(v, w, func(a, b float32) bool { return a > b })
}

// GreaterEqual returns a mask of !(v[i] < w[i]) (cmpnltps). Unordered: true
// if either lane is NaN.
func (v Float32x4) GreaterEqual(w Float32x4) Float32x4 {
	return compare(v, w, func(a, b float32) bool { return !(a < b) })
}

// Equal returns a mask of v[i] == w[i]. Ordered (cmpeqps).
func (v Float32x4) Equal(w Float32x4) Float32x4 {
	return compare(v, w, func(a, b float32) bool { return a == b })
}

// NotEqual returns a mask of v[i] != w[i]. Unordered: true if either lane
// is NaN (cmpneqps).
func (v Float32x4) NotEqual(w Float32x4) Float32x4 {
	return compare(v, w, func(a, b float32) bool { return a != b })
}

// ToIntTruncate converts each lane to int32 rounding toward zero
// (cvttps2dq). NaN lanes and lanes whose truncation does not fit in int32
// yield math.MinInt32, the instruction's "integer indefinite" value; callers
// should not depend on it.
func (v Float32x4) ToIntTruncate() Int32x4 {
	return Int32x4{truncate(v[0]), truncate(v[1]), truncate(v[2]), truncate(v[3])}
}

// AsInt32x4 reinterprets the lane bits as int32 without conversion.
func (v Float32x4) AsInt32x4() Int32x4 {
	return *(*Int32x4)(unsafe.Pointer(&v))
}

// MaskBits gathers the sign bit of each lane into bits 0..3 (movmskps).
func (v Float32x4) MaskBits() uint8 {
	return v.AsInt32x4().MaskBits()
}

// AllTrue reports whether every lane of the mask v has its sign bit set.
func (v Float32x4) AllTrue() bool {
	return v.MaskBits() == 0xF
}

// AnyTrue reports whether at least one lane of the mask v has its sign bit set.
func (v Float32x4) AnyTrue() bool {
	return v.MaskBits() != 0
}

func compare(v, w Float32x4, pred func(a, b float32) bool) Float32x4 {
	var r Float32x4
	for i := range r {
		if pred(v[i], w[i]) {
			r[i] = math.Float32frombits(maskTrue)
		}
	}
	return r
}

func truncate(f float32) int32 {
	if math32.IsNaN(f) || f >= 2147483648 || f < -2147483648 {
		return math.MinInt32
	}
	return int32(f)
}
