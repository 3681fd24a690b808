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

import (
	"fmt"
	"math"
	"unsafe"
)

// Element is a constraint for the fixed-size numeric types AlignedStorage
// can hold. Pointer-carrying types are excluded because the backing buffer
// is a byte slice the garbage collector does not scan.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// AlignedStorage is a fixed-length buffer of T whose first element sits at an
// address that is a multiple of Align().
//
// The storage owns its buffer. Pointers and slices obtained from it are only
// meaningful while the storage (or one of them) is reachable; the Go runtime
// does not move heap objects, so the aligned address is stable for the
// lifetime of the buffer.
type AlignedStorage[T Element] struct {
	length int
	align  int
	raw    []byte
	offset int
}

// NewAlignedStorage allocates length elements of T aligned to align bytes.
// The buffer is length*sizeof(T)+align bytes; the aligned view starts at the
// first byte whose address satisfies addr%align == 0.
func NewAlignedStorage[T Element](length, align int) (*AlignedStorage[T], error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if align <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}
	size := sizeOf[T]()
	if length > (math.MaxInt-align)/size {
		return nil, fmt.Errorf("%w: %d elements of %d bytes aligned to %d", ErrTooLarge, length, size, align)
	}

	raw := make([]byte, length*size+align)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	offset := (uintptr(align) - addr%uintptr(align)) % uintptr(align)

	return &AlignedStorage[T]{
		length: length,
		align:  align,
		raw:    raw,
		offset: int(offset),
	}, nil
}

// MustAlignedStorage is like NewAlignedStorage but panics on error.
func MustAlignedStorage[T Element](length, align int) *AlignedStorage[T] {
	s, err := NewAlignedStorage[T](length, align)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of elements.
func (s *AlignedStorage[T]) Len() int { return s.length }

// Align returns the alignment in bytes.
func (s *AlignedStorage[T]) Align() int { return s.align }

// SizeBytes returns length*sizeof(T), the size of the aligned region.
func (s *AlignedStorage[T]) SizeBytes() int { return s.length * sizeOf[T]() }

// Clear sets every element to zero.
func (s *AlignedStorage[T]) Clear() {
	clear(s.raw[s.offset : s.offset+s.SizeBytes()])
}

// Pointer returns the aligned address.
func (s *AlignedStorage[T]) Pointer() unsafe.Pointer {
	return unsafe.Pointer(&s.raw[s.offset])
}

// Data returns a pointer to the first (aligned) element.
func (s *AlignedStorage[T]) Data() *T {
	return (*T)(s.Pointer())
}

// Slice returns the aligned elements as a slice of length Len().
// Accesses through the slice are bounds checked by Go.
func (s *AlignedStorage[T]) Slice() []T {
	return unsafe.Slice(s.Data(), s.length)
}

// Offset returns a pointer i elements away from the aligned address.
// i may be negative. There is no bounds check: the caller must keep the
// result inside the allocation.
func (s *AlignedStorage[T]) Offset(i int) *T {
	return (*T)(unsafe.Add(s.Pointer(), i*sizeOf[T]()))
}

// Index returns a pointer to element i without a bounds check.
// The caller guarantees 0 <= i < Len().
func (s *AlignedStorage[T]) Index(i int) *T {
	return s.Offset(i)
}

// At returns a pointer to element i, or a *RangeError if i is outside
// [0, Len()). No memory is touched when the index is rejected.
func (s *AlignedStorage[T]) At(i int) (*T, error) {
	if i < 0 || i >= s.length {
		return nil, &RangeError{Index: i, Length: s.length}
	}
	return s.Offset(i), nil
}

func sizeOf[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
