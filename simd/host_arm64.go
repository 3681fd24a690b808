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

//go:build arm64

package simd

import "golang.org/x/sys/cpu"

// ARM64 has no SSE, but ASIMD (NEON) provides every operation both levels
// need: mul, smin/smax, and the float compares.
func hostSupports(l Level) bool {
	switch l {
	case LevelSSE2, LevelSSE41:
		return cpu.ARM64.HasASIMD
	default:
		return false
	}
}
