// Package bitops implements byte-wise boolean algebra over equal-length byte
// slices: the primitive that every fixed-width hash word in this module is
// built from.
package bitops

import (
	"crypto/subtle"
	"fmt"
	"math/bits"
)

// ErrLengthMismatch is returned when two operands of a byte-wise operation
// do not have the same length.
var ErrLengthMismatch = fmt.Errorf("bitops: operands do not have the same length")

// Xor and And are defined per build tag (bitops_amd64.go / bitops_generic.go):
// a uint64-cast fast path on amd64 and a portable encoding/binary based
// fallback elsewhere.

// Or computes the bitwise OR of a and b into a freshly allocated slice.
func Or(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	dst := make([]byte, len(a))
	for i := range dst {
		dst[i] = a[i] | b[i]
	}
	return dst, nil
}

// Not computes the bitwise complement of a into a freshly allocated slice.
func Not(a []byte) []byte {
	dst := make([]byte, len(a))
	for i := range dst {
		dst[i] = ^a[i]
	}
	return dst
}

// Equal performs a constant-length byte comparison of a and b.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// IsZero reports whether every byte of a is zero.
func IsZero(a []byte) bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsOnes reports whether every byte of a is 0xFF.
func IsOnes(a []byte) bool {
	for _, v := range a {
		if v != 0xFF {
			return false
		}
	}
	return true
}

// Popcount returns the number of set bits across a.
func Popcount(a []byte) int {
	var n int
	for _, v := range a {
		n += bits.OnesCount8(v)
	}
	return n
}

// TrailingZeros8 returns the number of trailing zero bits in b, or 8 if b is
// zero (matching the HyperLogLog register convention used by pkg/cardinality).
func TrailingZeros8(b byte) int {
	if b == 0 {
		return 8
	}
	return bits.TrailingZeros8(b)
}
