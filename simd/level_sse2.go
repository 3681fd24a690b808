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

//go:build sight_sse2

package simd

const compiledLevel = LevelSSE2

func mulInt32x4(a, b Int32x4) Int32x4 { return MulSSE2(a, b) }

func minInt32x4(a, b Int32x4) Int32x4 { return MinSSE2(a, b) }

func maxInt32x4(a, b Int32x4) Int32x4 { return MaxSSE2(a, b) }
