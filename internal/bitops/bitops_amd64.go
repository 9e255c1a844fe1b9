//go:build amd64 && !generic

package bitops

import (
	"github.com/alecthomas/unsafeslice"
)

// Xor casts the first part of the byte slices (length divisible by 8) into
// uint64 and performs XOR on the uint64 slices. The excess bytes that could
// not be cast are XORed conventionally. Returns a freshly allocated slice.
// Only tested on x86-64.
func Xor(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	dst := make([]byte, len(a))
	copy(dst, a)

	castDst := unsafeslice.Uint64SliceFromByteSlice(dst)
	castB := unsafeslice.Uint64SliceFromByteSlice(b)

	for i := range castDst {
		castDst[i] ^= castB[i]
	}

	for j := 0; j < len(dst)%8; j++ {
		dst[len(dst)-j-1] ^= b[len(b)-j-1]
	}

	return dst, nil
}

// And casts the first part of the byte slices (length divisible by 8) into
// uint64 and performs AND on the uint64 slices. The excess bytes that could
// not be cast are ANDed conventionally. Returns a freshly allocated slice.
// Only tested on x86-64.
func And(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	dst := make([]byte, len(a))
	copy(dst, a)

	castDst := unsafeslice.Uint64SliceFromByteSlice(dst)
	castB := unsafeslice.Uint64SliceFromByteSlice(b)

	for i := range castDst {
		castDst[i] &= castB[i]
	}

	for j := 0; j < len(dst)%8; j++ {
		dst[len(dst)-j-1] &= b[len(b)-j-1]
	}

	return dst, nil
}
