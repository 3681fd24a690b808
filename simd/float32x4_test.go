package simd

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightlib/sight/simd/mem"
)

var (
	nan32   = math32.NaN()
	negZero = math.Float32frombits(0x80000000)
)

// isMaskNaN reports the truth of a comparison lane the way callers test it:
// a true lane is all ones, which reads as NaN.
func isMaskNaN(f float32) bool {
	return math32.IsNaN(f)
}

func checkMask(t *testing.T, name string, got Float32x4, want [4]bool) {
	t.Helper()
	for i := range got {
		if isMaskNaN(got[i]) != want[i] {
			t.Errorf("%s: lane %d: got %#08x, want true=%v", name, i, math.Float32bits(got[i]), want[i])
		}
		bits := math.Float32bits(got[i])
		if bits != 0 && bits != maskTrue {
			t.Errorf("%s: lane %d: %#08x is not a mask pattern", name, i, bits)
		}
	}
}

func TestFloat32x4Construction(t *testing.T) {
	t.Run("four scalars", func(t *testing.T) {
		v := NewFloat32x4(-1, 1, 3.14, -3.4e+29)
		checkLanes(t, "NewFloat32x4", v, [4]float32{-1, 1, 3.14, -3.4e+29})
	})

	t.Run("broadcast", func(t *testing.T) {
		checkLanes(t, "SetFloat32x4", SetFloat32x4(0.25), [4]float32{0.25, 0.25, 0.25, 0.25})
	})

	t.Run("load", func(t *testing.T) {
		x := []float32{-1, 1, 3.14, -3.4e+29}
		checkLanes(t, "LoadFloat32x4", LoadFloat32x4(x), [4]float32(x))
	})

	t.Run("register image keeps NaN payload", func(t *testing.T) {
		payload := math.Float32frombits(0x7FC00123)
		v := NewFloat32x4(1, payload, negZero, float32(math.Inf(-1)))
		r := v.Bits()
		w := Float32x4FromM128(r)
		for i := range v {
			assert.Equal(t, math.Float32bits(v[i]), math.Float32bits(w[i]), "lane %d", i)
		}
		assert.Equal(t, [4]byte{0x00, 0x00, 0x80, 0x3F}, [4]byte(r[0:4]))
	})
}

func TestFloat32x4LoadStoreAligned(t *testing.T) {
	p := mem.MustAlignedStorage[float32](12, 16)
	require.True(t, mem.IsAlignedSlice(p.Slice(), 16))

	v := NewFloat32x4(0.5, -2, 1e-3, 7)
	v.StoreAligned(p.Slice())
	assert.Equal(t, v, LoadFloat32x4Aligned(p.Slice()))

	v.Store(p.Slice()[5:])
	if diff := cmp.Diff([]float32{0.5, -2, 1e-3, 7}, p.Slice()[5:9]); diff != "" {
		t.Errorf("Store mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, v, LoadFloat32x4(p.Slice()[5:]))

	assert.Panics(t, func() { LoadFloat32x4(p.Slice()[10:]) })
	assert.Panics(t, func() { v.StoreAligned(p.Slice()[:3]) })
}

func TestFloat32x4Not(t *testing.T) {
	v := SetFloat32x4(1.203)
	v2 := v.Not()
	for i := range v2 {
		if math32.IsNaN(v2[i]) || math32.IsInf(v2[i], 0) {
			t.Errorf("lane %d: Not(1.203) = %v, want a finite value", i, v2[i])
		}
		if v2[i] >= 0 {
			t.Errorf("lane %d: Not(1.203) = %v, want negative", i, v2[i])
		}
	}
	checkMask(t, "Not(v) == v", v2.Equal(v), [4]bool{})
	checkMask(t, "Not(Not(v)) == v", v2.Not().Equal(v), [4]bool{true, true, true, true})

	assert.Equal(t, uint32(0xFFFFFFFF), math.Float32bits(SetFloat32x4(0).Not()[0]))
	assert.True(t, math32.IsNaN(SetFloat32x4(0).Not()[0]))
}

func TestFloat32x4Arithmetic(t *testing.T) {
	i := NewFloat32x4(0, -1, 1, 1)
	s := NewFloat32x4(1, 1, 1, -2)

	t.Run("add", func(t *testing.T) {
		r := NewFloat32x4(1, 0, 2, -1)
		checkLanes(t, "i+s", i.Add(s), r)
		checkLanes(t, "s+i", s.Add(i), r)
	})

	t.Run("sub", func(t *testing.T) {
		checkLanes(t, "i-s", i.Sub(s), [4]float32{-1, -2, 0, 3})
	})

	t.Run("mul", func(t *testing.T) {
		r := NewFloat32x4(0, -1, 1, -2)
		checkLanes(t, "i*s", i.Mul(s), r)
		checkLanes(t, "s*i", s.Mul(i), r)
	})

	t.Run("div", func(t *testing.T) {
		checkLanes(t, "i/s", i.Div(s), [4]float32{0, -1, 1, -0.5})
	})

	t.Run("division by zero", func(t *testing.T) {
		r := NewFloat32x4(1, -1, 0, negZero).Div(NewFloat32x4(0, 0, 0, 1))
		assert.True(t, math32.IsInf(r[0], 1))
		assert.True(t, math32.IsInf(r[1], -1))
		assert.True(t, math32.IsNaN(r[2]))
		assert.True(t, math32.Signbit(r[3]))
		assert.Equal(t, float32(0), r[3])
	})

	t.Run("nan propagates", func(t *testing.T) {
		n := SetFloat32x4(nan32)
		one := SetFloat32x4(1)
		for name, r := range map[string]Float32x4{
			"add": n.Add(one), "sub": one.Sub(n), "mul": n.Mul(one), "div": one.Div(n),
		} {
			for k := range r {
				assert.True(t, math32.IsNaN(r[k]), "%s lane %d", name, k)
			}
		}
	})

	t.Run("overflow to infinity", func(t *testing.T) {
		big := SetFloat32x4(math.MaxFloat32)
		r := big.Add(big)
		assert.True(t, math32.IsInf(r[0], 1))
		r = big.Mul(SetFloat32x4(-2))
		assert.True(t, math32.IsInf(r[0], -1))
	})

	t.Run("no fused multiply add", func(t *testing.T) {
		// Rounded separately, (a*a)-p is exactly zero. A fused a*a-p would
		// expose the rounding error of the product instead.
		a := SetFloat32x4(1 + 0x1p-12)
		p := a.Mul(a)
		r := a.Mul(a).Sub(p)
		checkLanes(t, "a*a-p", r, [4]float32{})
	})
}

func TestFloat32x4Bitwise(t *testing.T) {
	pt1, zero := SetFloat32x4(0.1), SetFloat32x4(0)

	tests := []struct {
		name string
		got  Float32x4
		want Float32x4
	}{
		{"0.1 & 0", pt1.And(zero), zero},
		{"0.1 & 0.1", pt1.And(pt1), pt1},
		{"0.1 | 0", pt1.Or(zero), pt1},
		{"0.1 | 0.1", pt1.Or(pt1), pt1},
		{"0 | 0", zero.Or(zero), zero},
		{"0.1 ^ 0", pt1.Xor(zero), pt1},
		{"0.1 ^ 0.1", pt1.Xor(pt1), zero},
		{"0 ^ 0", zero.Xor(zero), zero},
		{"andnot", pt1.AndNot(pt1), zero},
		{"andnot sign", SetFloat32x4(negZero).AndNot(SetFloat32x4(-3)), SetFloat32x4(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkLanes(t, tt.name, tt.got, tt.want)
		})
	}
}

func TestFloat32x4Compare(t *testing.T) {
	i := NewFloat32x4(0, 1, -1, 3.4e+29)
	s := NewFloat32x4(0, 0, 0, 1)

	checkMask(t, "i > s", i.Greater(s), [4]bool{false, true, false, true})
	checkMask(t, "i < s", i.Less(s), [4]bool{false, false, true, false})
	checkMask(t, "i >= s", i.GreaterEqual(s), [4]bool{true, true, false, true})
	checkMask(t, "i <= 0", i.LessEqual(SetFloat32x4(0)), [4]bool{true, false, true, false})

	j := NewFloat32x4(0, 1, -1, 2147483647)
	checkMask(t, "j == 0", j.Equal(SetFloat32x4(0)), [4]bool{true, false, false, false})
	checkMask(t, "j != 0", j.NotEqual(SetFloat32x4(0)), [4]bool{false, true, true, true})

	checkMask(t, "-0 == +0", SetFloat32x4(negZero).Equal(SetFloat32x4(0)), [4]bool{true, true, true, true})
}

// TestFloat32x4CompareNaN pins the ordered/unordered split: Less, Greater
// and Equal are false with a NaN operand, the others are true.
func TestFloat32x4CompareNaN(t *testing.T) {
	one := SetFloat32x4(1)
	n := SetFloat32x4(nan32)

	tests := []struct {
		name string
		op   func(a, b Float32x4) Float32x4
		want bool
	}{
		{"less", Float32x4.Less, false},
		{"greater", Float32x4.Greater, false},
		{"equal", Float32x4.Equal, false},
		{"less equal", Float32x4.LessEqual, true},
		{"greater equal", Float32x4.GreaterEqual, true},
		{"not equal", Float32x4.NotEqual, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := [4]bool{tt.want, tt.want, tt.want, tt.want}
			checkMask(t, "nan op 1", tt.op(n, one), all)
			checkMask(t, "1 op nan", tt.op(one, n), all)
			checkMask(t, "nan op nan", tt.op(n, n), all)
		})
	}

	// A true mask is itself a NaN, so comparing it again is unordered.
	m := one.Equal(one)
	checkMask(t, "mask == mask", m.Equal(m), [4]bool{})
	checkMask(t, "mask >= mask", m.GreaterEqual(m), [4]bool{true, true, true, true})
}

func TestFloat32x4CompareMatchesScalar(t *testing.T) {
	values := []float32{
		0, negZero, 1, -1, 0.5, 3.4e+29, -3.4e+29, math.MaxFloat32, math.SmallestNonzeroFloat32,
		math32.Inf(1), math32.Inf(-1), nan32,
	}
	for _, x := range values {
		for _, y := range values {
			a, b := SetFloat32x4(x), SetFloat32x4(y)
			unordered := math32.IsNaN(x) || math32.IsNaN(y)
			checkMask(t, "Less", a.Less(b), splat(x < y))
			checkMask(t, "Greater", a.Greater(b), splat(x > y))
			checkMask(t, "LessEqual", a.LessEqual(b), splat(x <= y || unordered))
			checkMask(t, "GreaterEqual", a.GreaterEqual(b), splat(x >= y || unordered))
			checkMask(t, "Equal", a.Equal(b), splat(x == y))
			checkMask(t, "NotEqual", a.NotEqual(b), splat(x != y))
		}
	}
}

func splat(b bool) [4]bool {
	return [4]bool{b, b, b, b}
}

func TestFloat32x4Masks(t *testing.T) {
	m := NewFloat32x4(0, 1, -1, 3.4e+29).Greater(SetFloat32x4(0))
	assert.Equal(t, uint8(0b1010), m.MaskBits())
	assert.True(t, m.AnyTrue())
	assert.False(t, m.AllTrue())

	// A mask round-trips through the integer view unchanged.
	assert.Equal(t, NewInt32x4(0, -1, 0, -1), m.AsInt32x4())
}

func TestFloat32x4ToIntTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   Float32x4
		want Int32x4
	}{
		{"toward zero", NewFloat32x4(1.9, -1.9, 0.5, -0.5), NewInt32x4(1, -1, 0, 0)},
		{"exact", NewFloat32x4(0, negZero, 23, -23), NewInt32x4(0, 0, 23, -23)},
		{"limits", NewFloat32x4(2147483520, -2147483648, 16777217, -16777217), NewInt32x4(2147483520, math.MinInt32, 16777216, -16777216)},
		{"out of range", NewFloat32x4(2147483648, -2147483904, 1e20, -1e20), SetInt32x4(math.MinInt32)},
		{"non finite", NewFloat32x4(nan32, math32.Inf(1), math32.Inf(-1), -nan32), SetInt32x4(math.MinInt32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkLanes(t, tt.name, tt.in.ToIntTruncate(), tt.want)
		})
	}
}

func BenchmarkFloat32x4Compare(b *testing.B) {
	x := NewFloat32x4(1, 2, 3, 4)
	y := NewFloat32x4(4, 3, 2, 1)
	var m Float32x4
	for b.Loop() {
		m = x.LessEqual(y)
	}
	_ = m
}
