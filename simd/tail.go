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

import "github.com/sightlib/sight/simd/mem"

// ProcessWithTail walks [0, length) in steps of Lanes elements.
//
// It calls:
//   - fullFn(offset) while mem.Room(offset, Lanes, length) holds
//   - tailFn(offset, count) once for the remaining 1..3 elements, if any
//
// Example:
//
//	simd.ProcessWithTail(len(data),
//	    func(offset int) {
//	        v := simd.LoadFloat32x4(data[offset:])
//	        v.Mul(v).Store(out[offset:])
//	    },
//	    func(offset, count int) {
//	        for i := offset; i < offset+count; i++ {
//	            out[i] = data[i] * data[i]
//	        }
//	    },
//	)
func ProcessWithTail(length int, fullFn func(offset int), tailFn func(offset, count int)) {
	offset := 0
	for ; mem.Room(offset, Lanes, length); offset += Lanes {
		fullFn(offset)
	}
	if offset < length && tailFn != nil {
		tailFn(offset, length-offset)
	}
}

// AlignedSize rounds size up to a multiple of Lanes. Buffers of this length
// can be processed with full vectors only.
func AlignedSize(size int) int {
	return (size + Lanes - 1) / Lanes * Lanes
}

// LoadTailInt32x4 loads count elements from src into the low lanes and
// zeroes the rest. count is clamped to [0, Lanes].
func LoadTailInt32x4(src []int32, count int) Int32x4 {
	var v Int32x4
	copy(v[:tailCount(count)], src)
	return v
}

// LoadTailFloat32x4 loads count elements from src into the low lanes and
// zeroes the rest. count is clamped to [0, Lanes].
func LoadTailFloat32x4(src []float32, count int) Float32x4 {
	var v Float32x4
	copy(v[:tailCount(count)], src)
	return v
}

// StoreTail writes the low count lanes of v to dst, count clamped to
// [0, Lanes].
func (v Int32x4) StoreTail(dst []int32, count int) {
	copy(dst, v[:tailCount(count)])
}

// StoreTail writes the low count lanes of v to dst, count clamped to
// [0, Lanes].
func (v Float32x4) StoreTail(dst []float32, count int) {
	copy(dst, v[:tailCount(count)])
}

// tailCount clamps count to [0, Lanes].
func tailCount(count int) int {
	return max(0, min(count, Lanes))
}
