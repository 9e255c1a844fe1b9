//go:build !amd64 || generic

package bitops

import "encoding/binary"

// Xor is the portable counterpart to the amd64 unsafe-cast fast path: it
// processes as many uint64 words as possible via encoding/binary and falls
// back to per-byte XOR for the remainder.
func Xor(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	dst := make([]byte, len(a))
	n := len(dst) / 8
	for i := 0; i < n; i++ {
		ua := binary.LittleEndian.Uint64(a[i*8 : (i+1)*8])
		ub := binary.LittleEndian.Uint64(b[i*8 : (i+1)*8])
		binary.LittleEndian.PutUint64(dst[i*8:(i+1)*8], ua^ub)
	}
	for j := n * 8; j < len(dst); j++ {
		dst[j] = a[j] ^ b[j]
	}
	return dst, nil
}

// And is the portable counterpart to the amd64 unsafe-cast fast path.
func And(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	dst := make([]byte, len(a))
	n := len(dst) / 8
	for i := 0; i < n; i++ {
		ua := binary.LittleEndian.Uint64(a[i*8 : (i+1)*8])
		ub := binary.LittleEndian.Uint64(b[i*8 : (i+1)*8])
		binary.LittleEndian.PutUint64(dst[i*8:(i+1)*8], ua&ub)
	}
	for j := n * 8; j < len(dst); j++ {
		dst[j] = a[j] & b[j]
	}
	return dst, nil
}
