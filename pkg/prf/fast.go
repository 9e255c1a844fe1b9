package prf

import (
	"encoding/binary"

	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"

	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
)

// murmur3PRF and metroPRF are opt-in, non-cryptographic backends grounded in
// internal/hash/hash.go's murmur64/metro Hasher implementations, which
// salt the input with the key before summing. Sum64 only yields 8 bytes, so
// deriving an N-byte word re-salts with a block counter until N bytes are
// produced, the way a counter-mode stream cipher expands a short keystream.

type murmur3PRF struct {
	key []byte
	n   int
}

func newMurmur3PRF(key []byte, n int) *murmur3PRF {
	k := make([]byte, len(key))
	copy(k, key)
	return &murmur3PRF{key: k, n: n}
}

func (p *murmur3PRF) Width() int { return p.n }

func (p *murmur3PRF) Derive(value []byte) hashword.Word {
	return hashword.FromBytes(expand64(p.n, func(counter byte) uint64 {
		return murmur3.Sum64(append([]byte{counter}, append(p.key, value...)...))
	}))
}

func (p *murmur3PRF) Fingerprint() uint64 {
	return murmur3.Sum64(append([]byte("fingerprint:"), p.key...))
}

type metroPRF struct {
	key []byte
	n   int
}

func newMetroPRF(key []byte, n int) *metroPRF {
	k := make([]byte, len(key))
	copy(k, key)
	return &metroPRF{key: k, n: n}
}

func (p *metroPRF) Width() int { return p.n }

func (p *metroPRF) Derive(value []byte) hashword.Word {
	return hashword.FromBytes(expand64(p.n, func(counter byte) uint64 {
		h := metrohash.NewMetroHash64()
		h.Write([]byte{counter})
		h.Write(p.key)
		h.Write(value)
		return h.Sum64()
	}))
}

func (p *metroPRF) Fingerprint() uint64 {
	h := metrohash.NewMetroHash64()
	h.Write([]byte("fingerprint:"))
	h.Write(p.key)
	return h.Sum64()
}

// expand64 fills an n-byte buffer with successive 8-byte blocks produced by
// block, each keyed on an incrementing counter, until n bytes are written.
func expand64(n int, block func(counter byte) uint64) []byte {
	buf := make([]byte, 0, n+8)
	var counter byte
	for len(buf) < n {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], block(counter))
		buf = append(buf, b[:]...)
		counter++
	}
	return buf[:n]
}
