// Package sdset implements SDS<N>, the symmetric-difference set: an abelian
// group under XOR whose identity is the all-zero word and
// every element is self-inverse. Structurally mirrors pkg/trapdoor's token
// shape (a set here is, bit for bit, a trapdoor-shaped value); the fold
// itself is grounded in the pervasive XorBytes/InPlaceXorBytes helpers
// (internal/util/bits.go).
package sdset

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/log"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
)

// Set is a symmetric-difference set: a hash word plus the fingerprint of the
// key it was built under.
type Set struct {
	H  hashword.Word
	KF uint64
}

// Factory builds symmetric-difference sets under a single key.
type Factory struct {
	prf    prf.PRF
	n      int
	logger logr.Logger
}

// NewFactory constructs a Factory using backend, keyed with key, over N-byte
// hash words. Logs at a default verbosity-0 logger; use NewFactoryFromConfig
// to inject one.
func NewFactory(backend prf.Backend, key []byte, n int) (*Factory, error) {
	p, err := prf.New(backend, key, n)
	if err != nil {
		return nil, err
	}
	return &Factory{prf: p, n: n, logger: log.GetLogger(0)}, nil
}

// NewFactoryFromConfig constructs a Factory from a resolved config.Config,
// using cfg.PRFBackend, cfg.Key, cfg.HashBytes and cfg.Logger.
func NewFactoryFromConfig(cfg config.Config) (*Factory, error) {
	p, err := prf.New(cfg.PRFBackend, cfg.Key, cfg.HashBytes)
	if err != nil {
		return nil, err
	}
	f := &Factory{prf: p, n: cfg.HashBytes, logger: cfg.Logger}
	f.logger.V(1).Info("sdset factory created", "hashBytes", cfg.HashBytes, "kf", p.Fingerprint())
	return f, nil
}

// Empty returns the empty set: the zero hash with kf = 0, the identity for
// Xor with any other set built by this factory.
func (f *Factory) Empty() Set {
	return Set{H: hashword.NewSize(f.n), KF: 0}
}

// FromUnique folds XOR over derive(key, x) for each x in values. Precondition
// (intentional contract, not enforced): values must be pairwise distinct —
// duplicates cancel silently under the group law.
func (f *Factory) FromUnique(values [][]byte) Set {
	f.logger.V(1).Info("starting set fold", "count", len(values))
	h := hashword.NewSize(f.n)
	for _, v := range values {
		h = h.Xor(f.prf.Derive(v))
	}
	f.logger.V(1).Info("finished set fold", "count", len(values))
	return Set{H: h, KF: f.prf.Fingerprint()}
}

// Xor returns a ^ b. If either operand is the identity (kf == 0, the zero
// word), the result adopts the other operand's kf. Otherwise a and b must
// share a kf or ErrIncompatibleKey is returned.
func Xor(a, b Set) (Set, error) {
	if a.KF == 0 && a.H.IsZero() {
		return Set{H: a.H.Xor(b.H), KF: b.KF}, nil
	}
	if b.KF == 0 && b.H.IsZero() {
		return Set{H: a.H.Xor(b.H), KF: a.KF}, nil
	}
	if a.KF != b.KF {
		return Set{}, errs.ErrIncompatibleKey
	}
	return Set{H: a.H.Xor(b.H), KF: a.KF}, nil
}

func falsePositiveRate(n int) float64 {
	return math.Pow(2, float64(-8*n))
}

// Equals compares two sets, requiring compatible kf.
func Equals(a, b Set) (approx.Value[bool], error) {
	if a.KF != b.KF {
		return approx.Value[bool]{}, errs.ErrIncompatibleKey
	}
	return approx.New(a.H.Equal(b.H), falsePositiveRate(a.H.Len()), 0), nil
}

// IsEmpty reports whether s is the identity element.
func IsEmpty(s Set) approx.Value[bool] {
	return approx.New(s.H.IsZero(), falsePositiveRate(s.H.Len()), 0)
}
