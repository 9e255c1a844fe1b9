// Package hashword implements H<N>, the fixed-width immutable hash word that
// every trapdoor, symmetric-difference set and Boolean set in this module is
// built from. Go has no value-level (const) generics, so H<N> is realized as
// a single slice-backed Word type rather than a family of fixed-size generic
// structs; New16/New32/New64 are monomorphic convenience constructors for the
// three blessed widths and NewSize is the generic byte-buffer constructor for
// any other width.
package hashword

import (
	"fmt"

	"github.com/queelius/cipher-trapdoor-sets/internal/bitops"
)

// Word is an N-byte immutable hash value supporting byte-wise boolean
// algebra. The zero value is not valid; construct with New16/New32/New64,
// NewSize or FromBytes.
type Word struct {
	b []byte
}

// NewSize returns the zero Word of the given byte width.
func NewSize(n int) Word {
	if n <= 0 {
		panic("hashword: size must be positive")
	}
	return Word{b: make([]byte, n)}
}

// New16, New32 and New64 construct the zero Word at the three supported
// widths (N ∈ {16, 32, 64}).
func New16() Word { return NewSize(16) }
func New32() Word { return NewSize(32) }
func New64() Word { return NewSize(64) }

// FromBytes copies b into a new Word. The returned Word's width is len(b).
func FromBytes(b []byte) Word {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Word{b: cp}
}

// Len returns N, the byte width of w.
func (w Word) Len() int { return len(w.b) }

// Bytes returns a copy of w's underlying bytes. Callers must not assume
// aliasing with w's internal storage.
func (w Word) Bytes() []byte {
	cp := make([]byte, len(w.b))
	copy(cp, w.b)
	return cp
}

func (w Word) checkCompatible(o Word) {
	if len(w.b) != len(o.b) {
		panic(fmt.Sprintf("hashword: size mismatch %d vs %d", len(w.b), len(o.b)))
	}
}

// Xor returns w ^ o. Panics if the widths differ.
func (w Word) Xor(o Word) Word {
	w.checkCompatible(o)
	b, _ := bitops.Xor(w.b, o.b)
	return Word{b: b}
}

// And returns w & o. Panics if the widths differ.
func (w Word) And(o Word) Word {
	w.checkCompatible(o)
	b, _ := bitops.And(w.b, o.b)
	return Word{b: b}
}

// Or returns w | o. Panics if the widths differ.
func (w Word) Or(o Word) Word {
	w.checkCompatible(o)
	b, _ := bitops.Or(w.b, o.b)
	return Word{b: b}
}

// Not returns ~w.
func (w Word) Not() Word {
	return Word{b: bitops.Not(w.b)}
}

// Equal reports whether w and o hold the same bytes. Widths of different
// sizes are never equal.
func (w Word) Equal(o Word) bool {
	return bitops.Equal(w.b, o.b)
}

// IsZero reports whether every bit of w is 0.
func (w Word) IsZero() bool {
	return bitops.IsZero(w.b)
}

// IsOnes reports whether every bit of w is 1.
func (w Word) IsOnes() bool {
	return bitops.IsOnes(w.b)
}

// Popcount returns the number of set bits in w.
func (w Word) Popcount() int {
	return bitops.Popcount(w.b)
}

// ByteAt returns the byte at index i, needed by callers (cardinality,
// similarity) that read individual registers out of the hash word.
func (w Word) ByteAt(i int) byte {
	return w.b[i]
}

// SetBit sets bit (byteIdx, bitIdx) of w in place and returns w. bitIdx is in
// [0,8). Used only during singleton construction (pkg/boolset), before a Word
// is handed to a caller — once returned from a factory, Words are treated as
// immutable.
func (w Word) SetBit(byteIdx, bitIdx int) Word {
	w.b[byteIdx] |= 1 << uint(bitIdx)
	return w
}

// String renders w as a hex string.
func (w Word) String() string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(w.b)*2)
	for i, c := range w.b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0F]
	}
	return string(out)
}
