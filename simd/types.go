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

// Package simd provides 128-bit vector value types with x86 SSE lane semantics.
//
// Int32x4 and Float32x4 each hold four 32-bit lanes, lane 0 first. Every
// operation reproduces the per-lane result of the SSE instruction it stands
// for: integer arithmetic wraps modulo 2^32, comparisons return masks whose
// true lanes are all ones and false lanes all zeros, float-to-int conversion
// truncates, and Reciprocal/RSqrt are low-precision estimates.
//
// Basic usage:
//
//	import "github.com/sightlib/sight/simd"
//
//	a := simd.LoadFloat32x4(src)
//	b := simd.SetFloat32x4(2)
//	m := a.Greater(b)
//	r := simd.IfThenElse(m, a.Mul(b), a)
//	r.Store(dst)
//
// The instruction-set level (SSE2 or SSE4.1) is chosen at build time with the
// sight_sse2 build tag. It only changes how Int32x4 multiplication and
// integer Lowest/Highest are computed; results are identical.
package simd

import "encoding/binary"

// Lanes is the number of 32-bit lanes in a vector.
const Lanes = 4

// Width is the vector width in bytes.
const Width = 16

// M128 is the in-memory image of a 128-bit register, lane 0 in the lowest
// four bytes, little endian.
type M128 [Width]byte

// Int32x4 is a vector of four int32 lanes.
type Int32x4 [Lanes]int32

// Float32x4 is a vector of four float32 lanes.
type Float32x4 [Lanes]float32

// Vector is a constraint for the vector types accepted by the generic helpers.
type Vector interface {
	Int32x4 | Float32x4
}

func (r M128) lane(i int) uint32 {
	return binary.LittleEndian.Uint32(r[4*i:])
}

func (r *M128) setLane(i int, bits uint32) {
	binary.LittleEndian.PutUint32(r[4*i:], bits)
}
