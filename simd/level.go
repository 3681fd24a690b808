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

// Level names the x86 instruction-set extension whose semantics a build uses.
type Level int

const (
	// LevelSSE2 is the x86-64 baseline. Integer multiply is composed from
	// two 32x32->64 multiplies and shuffles; integer min/max is scalar.
	LevelSSE2 Level = iota

	// LevelSSE41 adds direct low-half multiply (pmulld) and signed
	// min/max (pminsd, pmaxsd).
	LevelSSE41
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelSSE2:
		return "sse2"
	case LevelSSE41:
		return "sse4.1"
	default:
		return "unknown"
	}
}

// CurrentLevel returns the level this package was built for.
// It is fixed at build time; see the sight_sse2 build tag.
func CurrentLevel() Level {
	return compiledLevel
}

// CurrentName returns the name of CurrentLevel.
func CurrentName() string {
	return compiledLevel.String()
}

// CurrentWidth returns the vector width in bytes (always 16).
func CurrentWidth() int {
	return Width
}

// HostSupports reports whether the running CPU implements the extension l
// names. It is informational only: nothing in this package dispatches on it.
func HostSupports(l Level) bool {
	return hostSupports(l)
}
