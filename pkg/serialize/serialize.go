// Package serialize implements the fixed binary layout shared by trapdoors
// and sets: N bytes of hash followed by 8 bytes of key
// fingerprint, no framing, no length prefix, no type tag. Both directions
// use the same canonical byte order; there is no endianness
// auto-detection.
package serialize

import (
	"encoding/binary"

	"github.com/queelius/cipher-trapdoor-sets/pkg/boolset"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/sdset"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

const kfWidth = 8

func marshal(h hashword.Word, kf uint64) []byte {
	n := h.Len()
	out := make([]byte, n+kfWidth)
	copy(out, h.Bytes())
	binary.BigEndian.PutUint64(out[n:], kf)
	return out
}

// unmarshal decodes a buffer expected to hold an n-byte hash followed by 8
// bytes of kf. Returns ErrTruncatedInput if buf is shorter than n+8.
func unmarshal(buf []byte, n int) (hashword.Word, uint64, error) {
	if len(buf) < n+kfWidth {
		return hashword.Word{}, 0, errs.ErrTruncatedInput
	}
	h := hashword.FromBytes(buf[:n])
	kf := binary.BigEndian.Uint64(buf[n : n+kfWidth])
	return h, kf, nil
}

// MarshalTrapdoor encodes t as N bytes of hash ∥ 8 bytes of kf.
func MarshalTrapdoor(t trapdoor.Token) []byte {
	return marshal(t.H, t.KF)
}

// UnmarshalTrapdoor decodes an n-byte-hash trapdoor token from buf. Returns
// ErrTruncatedInput if buf is shorter than n+8 bytes.
func UnmarshalTrapdoor(buf []byte, n int) (trapdoor.Token, error) {
	h, kf, err := unmarshal(buf, n)
	if err != nil {
		return trapdoor.Token{}, err
	}
	return trapdoor.Token{H: h, KF: kf}, nil
}

// MarshalSet encodes a symmetric-difference set using the same layout as a
// trapdoor.
func MarshalSet(s sdset.Set) []byte {
	return marshal(s.H, s.KF)
}

// UnmarshalSet decodes an n-byte-hash symmetric-difference set from buf.
func UnmarshalSet(buf []byte, n int) (sdset.Set, error) {
	h, kf, err := unmarshal(buf, n)
	if err != nil {
		return sdset.Set{}, err
	}
	return sdset.Set{H: h, KF: kf}, nil
}

// MarshalBoolSet encodes a Boolean set using the same layout as a trapdoor.
// The sub-hash count m is a factory-level constant, not per-value state
//, so it is not encoded here — the
// caller's factory must already know it, and n, out of band.
func MarshalBoolSet(s boolset.Set) []byte {
	return marshal(s.H, s.KF)
}

// UnmarshalBoolSet decodes an n-byte-hash Boolean set from buf.
func UnmarshalBoolSet(buf []byte, n int) (boolset.Set, error) {
	h, kf, err := unmarshal(buf, n)
	if err != nil {
		return boolset.Set{}, err
	}
	return boolset.Set{H: h, KF: kf}, nil
}
