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
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("outside of aligned storage boundary")

	// ErrInvalidLength is returned when a storage is requested with a negative length.
	ErrInvalidLength = errors.New("invalid storage length")

	// ErrInvalidAlignment is returned when the alignment is not positive.
	ErrInvalidAlignment = errors.New("invalid alignment")

	// ErrTooLarge is returned when length*sizeof(T)+align does not fit in an int.
	ErrTooLarge = errors.New("storage size overflows int")
)

// RangeError reports a checked access outside [0, Length).
type RangeError struct {
	Index  int
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: index %d, length %d", ErrOutOfRange, e.Index, e.Length)
}

// Is makes errors.Is(err, ErrOutOfRange) hold for any *RangeError.
func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
