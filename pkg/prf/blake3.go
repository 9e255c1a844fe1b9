package prf

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
)

// blake3PRF is the default, cryptographically-grounded PRF backend, grounded
// in internal/crypto/prg.go, which uses a reset Blake3 hasher's Digest() as
// an arbitrary-length output stream (a DRBG-style XOF) — the same technique
// used here, keyed by writing key before the value into the hasher.
type blake3PRF struct {
	key []byte
	n   int
}

func newBlake3PRF(key []byte, n int) *blake3PRF {
	k := make([]byte, len(key))
	copy(k, key)
	return &blake3PRF{key: k, n: n}
}

func (p *blake3PRF) Width() int { return p.n }

func (p *blake3PRF) Derive(value []byte) hashword.Word {
	h := blake3.New()
	h.Write(p.key)
	h.Write(value)

	buf := make([]byte, p.n)
	digest := h.Digest()
	digest.Read(buf)

	return hashword.FromBytes(buf)
}

func (p *blake3PRF) Fingerprint() uint64 {
	h := blake3.New()
	h.Write(p.key)
	h.Write([]byte("cipher-trapdoor-sets/key-fingerprint"))

	buf := make([]byte, 8)
	digest := h.Digest()
	digest.Read(buf)

	return binary.BigEndian.Uint64(buf)
}
