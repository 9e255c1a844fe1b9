package homomorphic

import (
	"crypto/rand"

	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// XORShareScheme is a k-of-n construction that samples k-1 random words and
// computes the k-th share as td.h XOR XOR(the k-1 random shares), padding
// out to n total shares with additional random filler. This reconstructs
// correctly with probability 1.0 on the canonical subset (the first k
// shares, in the order CreateShares returned them) and is undefined on any
// other k-subset — it is explicitly not true Shamir secret sharing. See
// ShamirScheme for a true finite-field alternative.
type XORShareScheme struct {
	k, n int
}

// NewXORShareScheme validates 1 <= k <= n.
func NewXORShareScheme(k, n int) (*XORShareScheme, error) {
	if k <= 0 || k > n {
		return nil, errs.ErrInvalidThreshold
	}
	return &XORShareScheme{k: k, n: n}, nil
}

// NewXORShareSchemeFromConfig constructs an XORShareScheme from a resolved
// config.Config's cfg.ThresholdK and cfg.ThresholdN.
func NewXORShareSchemeFromConfig(cfg config.Config) (*XORShareScheme, error) {
	return NewXORShareScheme(cfg.ThresholdK, cfg.ThresholdN)
}

func randomWord(width int) (hashword.Word, error) {
	buf := make([]byte, width)
	if _, err := rand.Read(buf); err != nil {
		return hashword.Word{}, err
	}
	return hashword.FromBytes(buf), nil
}

// CreateShares produces n words: shares[0:k-1] are uniformly random,
// shares[k-1] is td.h XOR'd with shares[0:k-1], and shares[k:n] are random
// filler not needed by reconstruction. The canonical subset shares[0:k]
// reconstructs td.h.
func (s *XORShareScheme) CreateShares(td trapdoor.Token) ([]hashword.Word, error) {
	width := td.H.Len()
	shares := make([]hashword.Word, s.n)

	for i := 0; i < s.k-1; i++ {
		w, err := randomWord(width)
		if err != nil {
			return nil, err
		}
		shares[i] = w
	}

	last := td.H
	for i := 0; i < s.k-1; i++ {
		last = last.Xor(shares[i])
	}
	shares[s.k-1] = last

	for i := s.k; i < s.n; i++ {
		w, err := randomWord(width)
		if err != nil {
			return nil, err
		}
		shares[i] = w
	}
	return shares, nil
}

// Reconstruct XORs every given share together. Requires at least k shares,
// else returns ErrInsufficientShares. Correct reconstruction of td.h is
// only guaranteed when shares is exactly the canonical subset CreateShares
// produced.
func (s *XORShareScheme) Reconstruct(shares []hashword.Word, kf uint64) (trapdoor.Token, error) {
	if len(shares) < s.k {
		return trapdoor.Token{}, errs.ErrInsufficientShares
	}
	h := shares[0]
	for _, share := range shares[1:] {
		h = h.Xor(share)
	}
	return trapdoor.Token{H: h, KF: kf}, nil
}
