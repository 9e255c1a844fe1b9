package similarity

import (
	"encoding/binary"
	"math"

	"github.com/go-logr/logr"

	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/log"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
)

// DefaultSignatureLength is MinHash's default per-coordinate signature
// length K.
const DefaultSignatureLength = 128

// Signature is a MinHash sketch of a collection of values: one 32-bit
// minimum projection per coordinate, plus the key fingerprint it was built
// under.
type Signature struct {
	Coords []uint32
	KF     uint64
}

// MinHasher builds MinHash signatures under a single key with a fixed
// coordinate count K.
type MinHasher struct {
	prf    prf.PRF
	k      int
	logger logr.Logger
}

// NewMinHasher constructs a MinHasher using backend, keyed with key, over
// N-byte hash derivations and a K-coordinate signature. k <= 0 defaults to
// DefaultSignatureLength. Logs at a default verbosity-0 logger; use
// NewMinHasherFromConfig to inject one.
func NewMinHasher(backend prf.Backend, key []byte, n, k int) (*MinHasher, error) {
	if k <= 0 {
		k = DefaultSignatureLength
	}
	p, err := prf.New(backend, key, n)
	if err != nil {
		return nil, err
	}
	return &MinHasher{prf: p, k: k, logger: log.GetLogger(0)}, nil
}

// NewMinHasherFromConfig constructs a MinHasher from a resolved
// config.Config, using cfg.PRFBackend, cfg.Key, cfg.HashBytes,
// cfg.MinHashLength and cfg.Logger.
func NewMinHasherFromConfig(cfg config.Config) (*MinHasher, error) {
	k := cfg.MinHashLength
	if k <= 0 {
		k = DefaultSignatureLength
	}
	p, err := prf.New(cfg.PRFBackend, cfg.Key, cfg.HashBytes)
	if err != nil {
		return nil, err
	}
	m := &MinHasher{prf: p, k: k, logger: cfg.Logger}
	m.logger.V(1).Info("minhasher created", "k", k, "kf", p.Fingerprint())
	return m, nil
}

// project computes the 32-bit projection of derive(key, i ∥ value): the
// first four bytes of the derived hash, read big-endian.
func (m *MinHasher) project(i int, value []byte) uint32 {
	prefixed := make([]byte, 0, len(value)+4)
	prefixed = append(prefixed, byte(i>>24), byte(i>>16), byte(i>>8), byte(i))
	prefixed = append(prefixed, value...)

	h := m.prf.Derive(prefixed)
	return binary.BigEndian.Uint32(h.Bytes()[:4])
}

// Sign returns the MinHash signature of values: for each coordinate i, the
// minimum projection across all values.
func (m *MinHasher) Sign(values [][]byte) Signature {
	m.logger.V(1).Info("starting minhash signing", "count", len(values), "k", m.k)
	coords := make([]uint32, m.k)
	for i := range coords {
		coords[i] = math.MaxUint32
	}
	for _, v := range values {
		for i := 0; i < m.k; i++ {
			if p := m.project(i, v); p < coords[i] {
				coords[i] = p
			}
		}
	}
	m.logger.V(1).Info("finished minhash signing", "count", len(values))
	return Signature{Coords: coords, KF: m.prf.Fingerprint()}
}

// EstimateSimilarity returns the fraction of matching coordinates between a
// and b, with error √(p(1−p)/K) where p is the observed match ratio.
// Signatures built under different keys are rejected.
func EstimateSimilarity(a, b Signature) (approx.Value[float64], error) {
	if a.KF != b.KF {
		return approx.Value[float64]{}, errs.ErrIncompatibleKey
	}
	if len(a.Coords) != len(b.Coords) {
		return approx.Value[float64]{}, errs.ErrSizeMismatch
	}

	var matches int
	for i := range a.Coords {
		if a.Coords[i] == b.Coords[i] {
			matches++
		}
	}
	k := float64(len(a.Coords))
	p := float64(matches) / k
	sigma := math.Sqrt(p * (1 - p) / k)
	return approx.New(p, sigma, sigma), nil
}
