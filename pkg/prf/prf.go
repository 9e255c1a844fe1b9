// Package prf defines the keyed pseudorandom function interface that every
// other component in this module treats as an injected black box, plus a
// small registry of concrete backends grounded in the multi-backend Hasher
// pattern (internal/hash/hash.go).
package prf

import (
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
)

// PRF derives an N-byte hash word from a value under an implicit key, and
// reports a short, non-secret fingerprint of that key used solely for
// compatibility checks between tokens/sets built under it.
type PRF interface {
	// Derive returns F(key, value), an N-byte word. Must be deterministic:
	// repeated calls with the same value return bit-identical words.
	Derive(value []byte) hashword.Word

	// Fingerprint returns a short identifier for the key. Never a secret;
	// used only to detect accidental mixing of tokens/sets from different
	// keys.
	Fingerprint() uint64

	// Width returns N, the byte width of words this PRF derives.
	Width() int
}

// Backend names the registry of concrete PRF implementations.
type Backend int

const (
	// Blake3 is the default, cryptographically-grounded backend.
	Blake3 Backend = iota
	// Murmur3 is a fast, non-cryptographic backend. Must be requested
	// explicitly; weaker collision resistance than Blake3.
	Murmur3
	// Metro is a fast, non-cryptographic backend. Must be requested
	// explicitly; weaker collision resistance than Blake3.
	Metro
)

// New constructs a PRF of the given backend, keyed with key, deriving words
// of width n bytes.
func New(backend Backend, key []byte, n int) (PRF, error) {
	switch backend {
	case Blake3:
		return newBlake3PRF(key, n), nil
	case Murmur3:
		return newMurmur3PRF(key, n), nil
	case Metro:
		return newMetroPRF(key, n), nil
	default:
		return nil, ErrUnknownBackend
	}
}
