// Package trapdoor implements Td<N>, the opaque keyed one-way hash token.
// Grounded in pkg/npsi, whose hashPair{x []byte; h uint64} shape and
// HashAll batch-hashing pattern are adapted here into a synchronous factory
// (this core has no I/O or concurrency requirement, so the channel-based
// HashAll becomes a plain batch call).
package trapdoor

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

// Token is an opaque trapdoor: a hash word plus the fingerprint of the key it
// was derived under. Created only via Factory.Create; never mutated.
type Token struct {
	H  hashword.Word
	KF uint64
}

// Factory derives trapdoor tokens under a single key.
type Factory struct {
	prf    prf.PRF
	logger logr.Logger
}

// NewFactory constructs a Factory using backend, keyed with key, deriving
// N-byte hash words. Logs at a default verbosity-0 logger; use
// NewFactoryFromConfig to inject one.
func NewFactory(backend prf.Backend, key []byte, n int) (*Factory, error) {
	p, err := prf.New(backend, key, n)
	if err != nil {
		return nil, err
	}
	return &Factory{prf: p, logger: log.GetLogger(0)}, nil
}

// NewFactoryFromConfig constructs a Factory from a resolved config.Config,
// using cfg.PRFBackend, cfg.Key, cfg.HashBytes and cfg.Logger.
func NewFactoryFromConfig(cfg config.Config) (*Factory, error) {
	p, err := prf.New(cfg.PRFBackend, cfg.Key, cfg.HashBytes)
	if err != nil {
		return nil, err
	}
	f := &Factory{prf: p, logger: cfg.Logger}
	f.logger.V(1).Info("trapdoor factory created", "hashBytes", cfg.HashBytes, "kf", p.Fingerprint())
	return f, nil
}

// Create derives a trapdoor token for value.
func (f *Factory) Create(value []byte) Token {
	return Token{H: f.prf.Derive(value), KF: f.prf.Fingerprint()}
}

// CreateAll derives a trapdoor token for each value, preserving order.
func (f *Factory) CreateAll(values [][]byte) []Token {
	f.logger.V(1).Info("starting batch trapdoor derivation", "count", len(values))
	out := make([]Token, len(values))
	for i, v := range values {
		out[i] = f.Create(v)
	}
	f.logger.V(1).Info("finished batch trapdoor derivation", "count", len(values))
	return out
}

// Fingerprint returns the key fingerprint this factory derives tokens under.
func (f *Factory) Fingerprint() uint64 {
	return f.prf.Fingerprint()
}

// falsePositiveRate returns 2^(-8N), the probability that two distinct
// values collide under an N-byte PRF output.
func falsePositiveRate(n int) float64 {
	return math.Pow(2, float64(-8*n))
}

// Equals compares two tokens. Returns ErrIncompatibleKey if their key
// fingerprints differ. Otherwise returns an exact-in-fnr approximate boolean:
// equal hashes always mean equal inputs were hashed equally (no false
// negative), but distinct inputs collide with probability 2^(-8N) (false
// positive).
func Equals(a, b Token) (approx.Value[bool], error) {
	if a.KF != b.KF {
		return approx.Value[bool]{}, errs.ErrIncompatibleKey
	}
	return approx.New(a.H.Equal(b.H), falsePositiveRate(a.H.Len()), 0), nil
}
