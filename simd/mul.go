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

// This file holds both integer strategies of each level. They are always
// compiled so tests and sightinfo can check them against each other; the
// level_*.go files pick the one Int32x4.Mul, Lowest and Highest use.

// MulSSE41 multiplies lane-wise keeping the low 32 bits of each product
// (pmulld).
func MulSSE41(a, b Int32x4) Int32x4 {
	var r Int32x4
	for i := range r {
		r[i] = int32(int64(a[i]) * int64(b[i]))
	}
	return r
}

// MulSSE2 computes the same result as MulSSE41 from SSE2 instructions only:
//
//	t1 = pmuludq(a, b)                     // a0*b0, a2*b2 as 64-bit
//	t2 = pmuludq(a>>32bits, b>>32bits)     // a1*b1, a3*b3 as 64-bit
//	r  = punpckldq(pshufd(t1, 0,0,2,0), pshufd(t2, 0,0,2,0))
func MulSSE2(a, b Int32x4) Int32x4 {
	t1 := pmuludq(a, b)
	t2 := pmuludq(psrldq4(a), psrldq4(b))
	return punpckldq(pshufd(t1, shuffle(0, 0, 2, 0)), pshufd(t2, shuffle(0, 0, 2, 0)))
}

// MinSSE41 returns the signed lane-wise minimum (pminsd).
func MinSSE41(a, b Int32x4) Int32x4 {
	var r Int32x4
	for i := range r {
		if a[i] < b[i] {
			r[i] = a[i]
		} else {
			r[i] = b[i]
		}
	}
	return r
}

// MaxSSE41 returns the signed lane-wise maximum (pmaxsd).
func MaxSSE41(a, b Int32x4) Int32x4 {
	var r Int32x4
	for i := range r {
		if a[i] > b[i] {
			r[i] = a[i]
		} else {
			r[i] = b[i]
		}
	}
	return r
}

// MinSSE2 is the SSE2 fallback for MinSSE41: each lane is extracted and
// compared as a scalar.
func MinSSE2(a, b Int32x4) Int32x4 {
	return NewInt32x4(
		min(a.Get(0), b.Get(0)),
		min(a.Get(1), b.Get(1)),
		min(a.Get(2), b.Get(2)),
		min(a.Get(3), b.Get(3)),
	)
}

// MaxSSE2 is the SSE2 fallback for MaxSSE41.
func MaxSSE2(a, b Int32x4) Int32x4 {
	return NewInt32x4(
		max(a.Get(0), b.Get(0)),
		max(a.Get(1), b.Get(1)),
		max(a.Get(2), b.Get(2)),
		max(a.Get(3), b.Get(3)),
	)
}

// pmuludq multiplies the unsigned low dword of each 64-bit half and stores
// the full 64-bit products: r = {lo(a0*b0), hi(a0*b0), lo(a2*b2), hi(a2*b2)}.
func pmuludq(a, b Int32x4) Int32x4 {
	p0 := uint64(uint32(a[0])) * uint64(uint32(b[0]))
	p2 := uint64(uint32(a[2])) * uint64(uint32(b[2]))
	return Int32x4{int32(uint32(p0)), int32(uint32(p0 >> 32)), int32(uint32(p2)), int32(uint32(p2 >> 32))}
}

// psrldq4 shifts the register right by 4 bytes, filling with zero.
func psrldq4(v Int32x4) Int32x4 {
	return Int32x4{v[1], v[2], v[3], 0}
}

// shuffle builds a pshufd immediate like _MM_SHUFFLE(z, y, x, w).
func shuffle(z, y, x, w uint8) uint8 {
	return z<<6 | y<<4 | x<<2 | w
}

// pshufd selects r[i] = v[(imm >> 2i) & 3].
func pshufd(v Int32x4, imm uint8) Int32x4 {
	var r Int32x4
	for i := range r {
		r[i] = v[(imm>>(2*i))&3]
	}
	return r
}

// punpckldq interleaves the low halves: r = {a0, b0, a1, b1}.
func punpckldq(a, b Int32x4) Int32x4 {
	return Int32x4{a[0], b[0], a[1], b[1]}
}
