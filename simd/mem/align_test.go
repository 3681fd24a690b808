package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestIsAligned(t *testing.T) {
	var buf [64]byte
	base := unsafe.Pointer(&buf[0])
	// Find the first 16-byte aligned byte in buf.
	first := 0
	for !IsAligned(unsafe.Add(base, first), 16) {
		first++
	}

	assert.True(t, IsAligned(unsafe.Add(base, first), 16))
	assert.True(t, IsAligned(unsafe.Add(base, first), 8))
	assert.True(t, IsAligned(unsafe.Add(base, first), 1))
	assert.False(t, IsAligned(unsafe.Add(base, first+4), 16))
	assert.True(t, IsAligned(unsafe.Add(base, first+4), 4))
	assert.False(t, IsAligned(base, 0))
	assert.False(t, IsAligned(base, -8))
}

func TestIsAlignedNonPowerOfTwo(t *testing.T) {
	s := MustAlignedStorage[int8](64, 17)
	p := s.Pointer()
	assert.True(t, IsAligned(p, 17))
	assert.False(t, IsAligned(unsafe.Add(p, 1), 17))
	assert.True(t, IsAligned(unsafe.Add(p, 34), 17))
}

func TestIsAlignedSlice(t *testing.T) {
	s := MustAlignedStorage[float32](8, 16)
	data := s.Slice()
	assert.True(t, IsAlignedSlice(data, 16))
	assert.True(t, IsAlignedSlice(data[4:], 16))
	assert.False(t, IsAlignedSlice(data[1:], 16))
	assert.False(t, IsAlignedSlice(data[:0], 16))
	assert.False(t, IsAlignedSlice([]float32(nil), 16))
}

func TestRoom(t *testing.T) {
	tests := []struct {
		index, m, length int
		want             bool
	}{
		{0, 4, 4, true},
		{0, 4, 3, false},
		{4, 4, 8, true},
		{5, 4, 8, false},
		{8, 0, 8, true},
		{0, 0, 0, true},
		{12, 4, 16, true},
		{13, 4, 16, false},
	}

	for _, tt := range tests {
		if got := Room(tt.index, tt.m, tt.length); got != tt.want {
			t.Errorf("Room(%d, %d, %d) = %v, want %v", tt.index, tt.m, tt.length, got, tt.want)
		}
	}
}
