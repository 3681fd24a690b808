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

	"github.com/chewxy/math32"
)

// Lowest returns the lane-wise minimum of a and b.
//
// For Float32x4 it follows minps: each lane is a[i] < b[i] ? a[i] : b[i],
// so when either lane is NaN, or both are zeros of any sign, b[i] is
// returned. For Int32x4 the strategy depends on CurrentLevel.
func Lowest[V Vector](a, b V) V {
	switch av := any(a).(type) {
	case Int32x4:
		return any(minInt32x4(av, any(b).(Int32x4))).(V)
	case Float32x4:
		bv := any(b).(Float32x4)
		var r Float32x4
		for i := range r {
			if av[i] < bv[i] {
				r[i] = av[i]
			} else {
				r[i] = bv[i]
			}
		}
		return any(r).(V)
	default:
		return a
	}
}

// Highest returns the lane-wise maximum of a and b.
//
// For Float32x4 it follows maxps: a[i] > b[i] ? a[i] : b[i], with the same
// NaN and signed-zero behavior as Lowest.
func Highest[V Vector](a, b V) V {
	switch av := any(a).(type) {
	case Int32x4:
		return any(maxInt32x4(av, any(b).(Int32x4))).(V)
	case Float32x4:
		bv := any(b).(Float32x4)
		var r Float32x4
		for i := range r {
			if av[i] > bv[i] {
				r[i] = av[i]
			} else {
				r[i] = bv[i]
			}
		}
		return any(r).(V)
	default:
		return a
	}
}

// IfThenElse selects bits: (mask & a) | (^mask & b). With a comparison
// result as mask this picks a[i] where the comparison held and b[i]
// elsewhere.
func IfThenElse[V Vector](mask, a, b V) V {
	switch m := any(mask).(type) {
	case Int32x4:
		return any(m.And(any(a).(Int32x4)).Or(m.AndNot(any(b).(Int32x4)))).(V)
	case Float32x4:
		return any(m.And(any(a).(Float32x4)).Or(m.AndNot(any(b).(Float32x4)))).(V)
	default:
		return a
	}
}

// Round converts to int32 by adding 0.5 and truncating toward zero.
//
// This rounds half up for non-negative inputs only. Negative inputs move
// toward +Inf: -0.7 becomes 0 and -1.5 becomes -1. Callers depend on this,
// so it is kept as is.
func Round(v Float32x4) Int32x4 {
	return v.Add(SetFloat32x4(0.5)).ToIntTruncate()
}

// Reciprocal returns an estimate of 1/v[i] (rcpps). The relative error is
// below 1.5*2^-12. Reciprocal(±0) is ±Inf and Reciprocal(±Inf) is ±0.
func Reciprocal(v Float32x4) Float32x4 {
	return Float32x4{rcp(v[0]), rcp(v[1]), rcp(v[2]), rcp(v[3])}
}

// RSqrt returns an estimate of 1/sqrt(v[i]) (rsqrtps). The relative error
// is below 1.5*2^-12. RSqrt(+0) is +Inf, RSqrt(-0) is -Inf, negative inputs
// give NaN.
func RSqrt(v Float32x4) Float32x4 {
	return Float32x4{rsqrt(v[0]), rsqrt(v[1]), rsqrt(v[2]), rsqrt(v[3])}
}

// Sqrt estimates sqrt(v[i]) as Reciprocal(RSqrt(v)). The error of both
// estimates compounds; do not use it where a correctly rounded root is
// required.
func Sqrt(v Float32x4) Float32x4 {
	return Reciprocal(RSqrt(v))
}

const (
	// estimateBits is the number of mantissa bits kept by rcp and rsqrt.
	estimateBits = 12
	dropMask     = 1<<(23-estimateBits) - 1

	signMask     = 0x80000000
	exponentMask = 0x7F800000
	quietBit     = 0x00400000

	// defaultNaN is the QNaN the hardware produces for invalid operations.
	defaultNaN = 0xFFC00000
)

// estimate truncates a correctly rounded result to estimateBits of
// mantissa. Results that would be subnormal are flushed to a signed zero.
func estimate(f float32) float32 {
	bits := math.Float32bits(f) &^ dropMask
	if bits&exponentMask == 0 {
		bits &= signMask
	}
	return math.Float32frombits(bits)
}

// flushInput treats a subnormal input as a zero of the same sign.
func flushInput(f float32) float32 {
	bits := math.Float32bits(f)
	if bits&exponentMask == 0 {
		return math.Float32frombits(bits & signMask)
	}
	return f
}

func quiet(f float32) float32 {
	return math.Float32frombits(math.Float32bits(f) | quietBit)
}

func rcp(x float32) float32 {
	if math32.IsNaN(x) {
		return quiet(x)
	}
	x = flushInput(x)
	return estimate(float32(1 / float64(x)))
}

func rsqrt(x float32) float32 {
	x = flushInput(x)
	switch {
	case math32.IsNaN(x):
		return quiet(x)
	case x == 0:
		if math32.Signbit(x) {
			return math32.Inf(-1)
		}
		return math32.Inf(1)
	case x < 0:
		return math.Float32frombits(defaultNaN)
	}
	return estimate(float32(1 / math.Sqrt(float64(x))))
}
