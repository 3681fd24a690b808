//go:build !amd64 && !arm64

package simd

func hostSupports(Level) bool {
	return false
}
