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

// Package mem provides aligned storage for vector loads and stores.
//
// # Aligned Storage
//
// AlignedStorage owns a heap buffer large enough for length elements plus
// alignment slack, and exposes the first element at an address that is a
// multiple of the requested alignment. Any positive alignment is accepted,
// not only powers of two: the offset is computed with modulo arithmetic.
//
//	buf, err := mem.NewAlignedStorage[float32](1024, 16)
//	if err != nil {
//	    return err
//	}
//	v := simd.LoadFloat32x4Aligned(buf.Slice())
//
// Accessors come in pairs. At is bounds checked and reports *RangeError;
// Index and Offset are not, and stepping outside the allocation with them is
// undefined behavior. IsAligned and Room are the predicates callers assert
// before taking the unchecked paths.
package mem
