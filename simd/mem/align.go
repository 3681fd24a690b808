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

package mem

import "unsafe"

// IsAligned reports whether p is a multiple of align. A non-positive align
// never matches.
func IsAligned(p unsafe.Pointer, align int) bool {
	if align <= 0 {
		return false
	}
	return uintptr(p)%uintptr(align) == 0
}

// IsAlignedPtr is IsAligned for a typed pointer.
func IsAlignedPtr[T any](p *T, align int) bool {
	return IsAligned(unsafe.Pointer(p), align)
}

// IsAlignedSlice reports whether the first element of s is aligned.
// An empty slice is never aligned.
func IsAlignedSlice[T any](s []T, align int) bool {
	if len(s) == 0 {
		return false
	}
	return IsAligned(unsafe.Pointer(unsafe.SliceData(s)), align)
}

// Room reports whether m more elements starting at index fit in length,
// i.e. index+m <= length.
func Room(index, m, length int) bool {
	return index+m <= length
}
