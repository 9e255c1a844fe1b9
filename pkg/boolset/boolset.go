// Package boolset implements BS<N>, the Bloom-filter-backed Boolean set.
// Grounded in pkg/bpsi, which wraps an external bloom filter behind a small
// interface (bloomfilter{Add, Check, MarshalBinary}, NewBloomfilter(t, n)
// sizing-by-type); here the Boolean set's backing "bloom filter" is not a
// wrapped external structure but the single hash word itself, so the
// "pick an implementation by tag, size it for n items" shape survives as
// the package's factory, while the storage layer is native.
package boolset

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/log"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// DefaultHashCount is the default per-factory sub-hash count m.
const DefaultHashCount = 3

// Set is a Boolean set: a hash word plus the fingerprint of the key it was
// built under. The hash-count parameter m lives on the Factory, not the Set.
type Set struct {
	H  hashword.Word
	KF uint64
}

// Factory builds Boolean sets under a single key with a fixed sub-hash count
// m (analogous to a classical Bloom filter's k).
type Factory struct {
	prf    prf.PRF
	n      int
	m      int
	logger logr.Logger
}

// NewFactory constructs a Factory using backend, keyed with key, over N-byte
// hash words with m sub-hashes per singleton. m <= 0 defaults to
// DefaultHashCount. Logs at a default verbosity-0 logger; use
// NewFactoryFromConfig to inject one.
func NewFactory(backend prf.Backend, key []byte, n, m int) (*Factory, error) {
	if m <= 0 {
		m = DefaultHashCount
	}
	p, err := prf.New(backend, key, n)
	if err != nil {
		return nil, err
	}
	return &Factory{prf: p, n: n, m: m, logger: log.GetLogger(0)}, nil
}

// NewFactoryFromConfig constructs a Factory from a resolved config.Config,
// using cfg.PRFBackend, cfg.Key, cfg.HashBytes, cfg.BloomHashes and
// cfg.Logger.
func NewFactoryFromConfig(cfg config.Config) (*Factory, error) {
	m := cfg.BloomHashes
	if m <= 0 {
		m = DefaultHashCount
	}
	p, err := prf.New(cfg.PRFBackend, cfg.Key, cfg.HashBytes)
	if err != nil {
		return nil, err
	}
	f := &Factory{prf: p, n: cfg.HashBytes, m: m, logger: cfg.Logger}
	f.logger.V(1).Info("boolset factory created", "hashBytes", cfg.HashBytes, "m", m, "kf", p.Fingerprint())
	return f, nil
}

// HashCount returns this factory's m.
func (f *Factory) HashCount() int { return f.m }

// singletonMask computes the bits that value's singleton would set: for each
// i in [0,m), derive t_i = F(key, i ∥ value); for each byte index j, if the
// low bit of t_i.bytes[j] is 1, set bit (i mod 8) of the result's byte j.
// This low-bit-only rule is intentionally weak — preserved verbatim, not
// upgraded.
func (f *Factory) singletonMask(value []byte) hashword.Word {
	mask := hashword.NewSize(f.n)
	prefixed := make([]byte, 0, len(value)+4)

	for i := 0; i < f.m; i++ {
		prefixed = prefixed[:0]
		prefixed = append(prefixed, byte(i>>24), byte(i>>16), byte(i>>8), byte(i))
		prefixed = append(prefixed, value...)

		t := f.prf.Derive(prefixed)
		bitIdx := i % 8
		for j := 0; j < f.n; j++ {
			if t.ByteAt(j)&0x01 == 1 {
				mask = mask.SetBit(j, bitIdx)
			}
		}
	}
	return mask
}

// Singleton returns the one-element Boolean set for value.
func (f *Factory) Singleton(value []byte) Set {
	return Set{H: f.singletonMask(value), KF: f.prf.Fingerprint()}
}

// FromCollection returns the bitwise OR of the singletons of each value.
func (f *Factory) FromCollection(values [][]byte) Set {
	f.logger.V(1).Info("starting set fold", "count", len(values))
	h := hashword.NewSize(f.n)
	for _, v := range values {
		h = h.Or(f.singletonMask(v))
	}
	f.logger.V(1).Info("finished set fold", "count", len(values))
	return Set{H: h, KF: f.prf.Fingerprint()}
}

func checkCompatible(a, b Set) error {
	if a.KF != b.KF {
		return errs.ErrIncompatibleKey
	}
	return nil
}

// Union returns a | b.
func Union(a, b Set) (Set, error) {
	if err := checkCompatible(a, b); err != nil {
		return Set{}, err
	}
	return Set{H: a.H.Or(b.H), KF: a.KF}, nil
}

// Intersect returns a & b.
func Intersect(a, b Set) (Set, error) {
	if err := checkCompatible(a, b); err != nil {
		return Set{}, err
	}
	return Set{H: a.H.And(b.H), KF: a.KF}, nil
}

// Complement returns ~a. Complement is unary and does not need a
// compatibility check.
func Complement(a Set) Set {
	return Set{H: a.H.Not(), KF: a.KF}
}

// Difference returns a & ~b (a - b). Not commutative.
func Difference(a, b Set) (Set, error) {
	if err := checkCompatible(a, b); err != nil {
		return Set{}, err
	}
	return Set{H: a.H.And(b.H.Not()), KF: a.KF}, nil
}

// SymmetricDifference returns a ^ b.
func SymmetricDifference(a, b Set) (Set, error) {
	if err := checkCompatible(a, b); err != nil {
		return Set{}, err
	}
	return Set{H: a.H.Xor(b.H), KF: a.KF}, nil
}

func falsePositiveRate(n int) float64 {
	return math.Pow(2, float64(-8*n))
}

// Contains tests approximate membership of a trapdoor-shaped token t's value
// in s, by reusing t's hash under the same per-byte singleton rule. fpr is
// the hard-coded conservative default 0.5 rather than a load-factor-derived
// estimate; see AdviseHashCount for a sizing aid that sits beside this
// contract without changing it.
func (f *Factory) Contains(s Set, t trapdoor.Token) (approx.Value[bool], error) {
	if t.KF != s.KF {
		f.logger.Info("rejected membership test: incompatible key", "setKF", s.KF, "tokenKF", t.KF)
		return approx.Value[bool]{}, errs.ErrIncompatibleKey
	}
	mask := f.maskFromHash(t.H)
	contains := mask.And(s.H).Equal(mask)
	return approx.New(contains, 0.5, 0), nil
}

// maskFromHash recomputes the singleton bit pattern a trapdoor's raw hash
// would set, by reapplying the per-byte, per-sub-hash rule directly to the
// hash bytes rather than re-deriving from the plaintext value (used by
// Contains, which is only handed a trapdoor's hash, not the original value).
//
// This requires h to have come from the same PRF/key as s, which the kf
// check in Contains enforces. For every sub-hash index i it reads the low
// bit of each byte of h and sets bit (i mod 8) of the mask's byte,
// mirroring the per-byte low-bit rule used by singletonMask but applied m
// times to a single already-derived hash instead of to m independent PRF
// outputs.
func (f *Factory) maskFromHash(h hashword.Word) hashword.Word {
	mask := hashword.NewSize(f.n)
	for i := 0; i < f.m; i++ {
		bitIdx := i % 8
		for j := 0; j < f.n; j++ {
			if h.ByteAt(j)&0x01 == 1 {
				mask = mask.SetBit(j, bitIdx)
			}
		}
	}
	return mask
}

// SubsetOf tests a ⊆ b: (a.H & b.H) == a.H, with a conservative fixed
// fpr = 0.5.
func SubsetOf(a, b Set) (approx.Value[bool], error) {
	if err := checkCompatible(a, b); err != nil {
		return approx.Value[bool]{}, err
	}
	return approx.New(a.H.And(b.H).Equal(a.H), 0.5, 0), nil
}

// IsEmpty reports whether s is the zero word.
func IsEmpty(s Set) approx.Value[bool] {
	return approx.New(s.H.IsZero(), falsePositiveRate(s.H.Len()), 0)
}

// IsUniversal reports whether s is the all-ones word.
func IsUniversal(s Set) approx.Value[bool] {
	return approx.New(s.H.IsOnes(), falsePositiveRate(s.H.Len()), 0)
}

// Equals compares two sets, requiring compatible kf.
func Equals(a, b Set) (approx.Value[bool], error) {
	if err := checkCompatible(a, b); err != nil {
		return approx.Value[bool]{}, err
	}
	return approx.New(a.H.Equal(b.H), falsePositiveRate(a.H.Len()), 0), nil
}

// AdviseHashCount reports the sub-hash count m that minimizes the expected
// false-positive load for a set built from n expected singletons over an
// 8*N bit array: the classical Bloom filter optimum k = (bits/n)*ln(2),
// inverted from sizing-for-target-fpr (what bits-and-blooms/bloom/v3's
// EstimateParameters solves) to sizing-for-fixed-array. That library's
// EstimateParameters always allocates its own bit array for a chosen target
// false-positive rate, which doesn't fit here: a Boolean set's entire
// storage is the single, already-fixed-width hash word, so there is no
// array left for the library to size — only k, for a width this module
// already owns. Hence the plain formula directly, not the library call.
// This is a sizing aid only — it does not change the Contains predicate's
// hard-coded fpr=0.5 contract.
func AdviseHashCount(bitWidth, n int) int {
	if n <= 0 {
		return DefaultHashCount
	}
	k := int(math.Round(float64(bitWidth) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k
}
