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

package selfcheck

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"

	"github.com/sightlib/sight/simd"
)

func randomInt32x4(rng *rand.Rand) simd.Int32x4 {
	return simd.NewInt32x4(int32(rng.Uint32()), int32(rng.Uint32()), int32(rng.Uint32()), int32(rng.Uint32()))
}

// randomFinite returns a non-zero finite value. Zeros are avoided so that
// signed-zero min/max ordering does not depend on the oracle's instruction.
func randomFinite(rng *rand.Rand) float32 {
	f := float32((rng.Float64()*2 - 1) * 1e6)
	if f == 0 {
		return 1
	}
	return f
}

func randomFloat32x4(rng *rand.Rand) simd.Float32x4 {
	return simd.NewFloat32x4(randomFinite(rng), randomFinite(rng), randomFinite(rng), randomFinite(rng))
}

// checkEdges runs the fixed cases every build must satisfy. It ignores n.
func checkEdges(_ context.Context, _ *rand.Rand, _ int, fail func(string, ...any)) error {
	if got := simd.Round(simd.SetFloat32x4(0.5)); got != simd.SetInt32x4(1) {
		fail("Round(0.5) = %v, want 1", got)
	}
	if got := simd.Round(simd.SetFloat32x4(-0.7)); got != simd.SetInt32x4(0) {
		fail("Round(-0.7) = %v, want 0", got)
	}
	if got := simd.SetInt32x4(math.MinInt32).Mul(simd.SetInt32x4(1)); got != simd.SetInt32x4(math.MinInt32) {
		fail("MinInt32 * 1 = %v", got)
	}

	v := simd.SetFloat32x4(1.203)
	if v.Not().Equal(v).AnyTrue() {
		fail("Not(1.203) == 1.203 holds in some lane")
	}
	if !v.Not().Not().Equal(v).AllTrue() {
		fail("Not(Not(1.203)) == 1.203 fails in some lane")
	}

	nan := simd.SetFloat32x4(math32.NaN())
	one := simd.SetFloat32x4(1)
	if one.Less(nan).AnyTrue() || one.Greater(nan).AnyTrue() || one.Equal(nan).AnyTrue() {
		fail("ordered comparison with NaN is true")
	}
	if !one.LessEqual(nan).AllTrue() || !one.GreaterEqual(nan).AllTrue() || !one.NotEqual(nan).AllTrue() {
		fail("unordered comparison with NaN is false")
	}
	if got := simd.Lowest(nan, one); got != one {
		fail("Lowest(NaN, 1) = %v, want 1", got)
	}
	return nil
}

func checkIntMul(ctx context.Context, rng *rand.Rand, n int, fail func(string, ...any)) error {
	for i := range n {
		if err := cancelled(ctx, i); err != nil {
			return err
		}
		a, b := randomInt32x4(rng), randomInt32x4(rng)
		want := simd.MulSSE41(a, b)
		if got := simd.MulSSE2(a, b); got != want {
			fail("MulSSE2(%v, %v) = %v, MulSSE41 = %v", a, b, got, want)
		}
		for k := range simd.Lanes {
			if ref := int32(uint32(uint64(int64(a[k]) * int64(b[k])))); want[k] != ref {
				fail("lane %d: %d*%d = %d, want %d", k, a[k], b[k], want[k], ref)
			}
		}
		if got := a.Mul(b); got != want {
			fail("Mul(%v, %v) = %v, want %v", a, b, got, want)
		}
	}
	return nil
}

func checkIntMinMax(ctx context.Context, rng *rand.Rand, n int, fail func(string, ...any)) error {
	for i := range n {
		if err := cancelled(ctx, i); err != nil {
			return err
		}
		a, b := randomInt32x4(rng), randomInt32x4(rng)
		if x, y := simd.MinSSE41(a, b), simd.MinSSE2(a, b); x != y {
			fail("min(%v, %v): sse4.1 %v, sse2 %v", a, b, x, y)
		}
		if x, y := simd.MaxSSE41(a, b), simd.MaxSSE2(a, b); x != y {
			fail("max(%v, %v): sse4.1 %v, sse2 %v", a, b, x, y)
		}
	}
	return nil
}

// floatOps pairs each lane-wise float operation with its vek32 counterpart.
var floatOps = []struct {
	name   string
	simd   func(a, b simd.Float32x4) simd.Float32x4
	oracle func(x, y []float32) []float32
}{
	{"add", simd.Float32x4.Add, vek32.Add},
	{"sub", simd.Float32x4.Sub, vek32.Sub},
	{"mul", simd.Float32x4.Mul, vek32.Mul},
	{"div", simd.Float32x4.Div, vek32.Div},
	{"lowest", simd.Lowest[simd.Float32x4], vek32.Minimum},
	{"highest", simd.Highest[simd.Float32x4], vek32.Maximum},
}

func checkFloatArith(ctx context.Context, rng *rand.Rand, n int, fail func(string, ...any)) error {
	for i := range n {
		if err := cancelled(ctx, i); err != nil {
			return err
		}
		a, b := randomFloat32x4(rng), randomFloat32x4(rng)
		for _, op := range floatOps {
			got := op.simd(a, b)
			want := op.oracle(a[:], b[:])
			if !slices.Equal(got[:], want) {
				fail("%s(%v, %v) = %v, reference %v", op.name, a, b, got, want)
			}
		}
	}
	return nil
}

var compareOps = []struct {
	name   string
	simd   func(a, b simd.Float32x4) simd.Float32x4
	oracle func(x, y []float32) []bool
}{
	{"less", simd.Float32x4.Less, vek32.Lt},
	{"less-equal", simd.Float32x4.LessEqual, vek32.Lte},
	{"greater", simd.Float32x4.Greater, vek32.Gt},
	{"greater-equal", simd.Float32x4.GreaterEqual, vek32.Gte},
	{"equal", simd.Float32x4.Equal, vek32.Eq},
	{"not-equal", simd.Float32x4.NotEqual, vek32.Neq},
}

func checkFloatCompare(ctx context.Context, rng *rand.Rand, n int, fail func(string, ...any)) error {
	for i := range n {
		if err := cancelled(ctx, i); err != nil {
			return err
		}
		a, b := randomFloat32x4(rng), randomFloat32x4(rng)
		// Make a lane equal so Equal and NotEqual see both outcomes.
		b[i%simd.Lanes] = a[i%simd.Lanes]
		for _, op := range compareOps {
			m := op.simd(a, b)
			want := op.oracle(a[:], b[:])
			for k := range simd.Lanes {
				bits := math.Float32bits(m[k])
				if (bits == 0xFFFFFFFF) != want[k] || (bits != 0 && bits != 0xFFFFFFFF) {
					fail("%s lane %d: %v vs %v gave %#08x", op.name, k, a[k], b[k], bits)
				}
			}
		}
	}
	return nil
}

func checkConvert(ctx context.Context, rng *rand.Rand, n int, fail func(string, ...any)) error {
	for i := range n {
		if err := cancelled(ctx, i); err != nil {
			return err
		}
		v := randomInt32x4(rng)
		got := v.ToFloat()
		if want := vek32.FromInt32(v[:]); !slices.Equal(got[:], want) {
			fail("ToFloat(%v) = %v, reference %v", v, got, want)
		}

		f := randomFloat32x4(rng)
		trunc := f.ToIntTruncate()
		for k := range simd.Lanes {
			if want := int32(math32.Trunc(f[k])); trunc[k] != want {
				fail("ToIntTruncate lane %d: %v gave %d, want %d", k, f[k], trunc[k], want)
			}
		}
	}
	return nil
}
