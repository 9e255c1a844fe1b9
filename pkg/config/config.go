// Package config collects the functional-option configuration shared by
// every factory in this module, generalizing the
// root_bf.Config{N, P, HashName} struct-literal bloom filter configuration
// (pkg/bpsi) into one options struct every component's factory builds from.
package config

import (
	"github.com/go-logr/logr"

	"github.com/queelius/cipher-trapdoor-sets/pkg/log"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
)

// Package-wide defaults used when an Option doesn't override them.
const (
	DefaultHashBytes     = 32
	DefaultBloomHashes   = 3
	DefaultMinHashLength = 128
	DefaultLSHBands      = 20
	DefaultLSHBandSize   = 5
	DefaultHLLPrecision  = 6
)

// Config is the immutable, fully-resolved configuration any factory in this
// module builds from. Construct with New and a list of Options; factories
// read only the fields relevant to them.
type Config struct {
	HashBytes     int
	Key           []byte
	BloomHashes   int
	MinHashLength int
	LSHBands      int
	LSHBandSize   int
	HLLPrecision  int
	ThresholdK    int
	ThresholdN    int
	PRFBackend    prf.Backend
	Logger        logr.Logger
}

// Option mutates a Config under construction.
type Option func(*Config)

// New resolves opts against the package defaults.
func New(opts ...Option) Config {
	c := Config{
		HashBytes:     DefaultHashBytes,
		BloomHashes:   DefaultBloomHashes,
		MinHashLength: DefaultMinHashLength,
		LSHBands:      DefaultLSHBands,
		LSHBandSize:   DefaultLSHBandSize,
		HLLPrecision:  DefaultHLLPrecision,
		PRFBackend:    prf.Blake3,
		Logger:        log.GetLogger(0),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithHashBytes sets the hash word width N.
func WithHashBytes(n int) Option {
	return func(c *Config) { c.HashBytes = n }
}

// WithKey sets the secret key bytes.
func WithKey(key []byte) Option {
	return func(c *Config) { c.Key = key }
}

// WithKeyString sets the secret key from a UTF-8 string.
func WithKeyString(key string) Option {
	return func(c *Config) { c.Key = []byte(key) }
}

// WithBloomHashes sets the Boolean set factory's sub-hash count m.
func WithBloomHashes(m int) Option {
	return func(c *Config) { c.BloomHashes = m }
}

// WithMinHashLength sets MinHash's signature length K.
func WithMinHashLength(k int) Option {
	return func(c *Config) { c.MinHashLength = k }
}

// WithLSHBands sets the number of LSH bands B.
func WithLSHBands(b int) Option {
	return func(c *Config) { c.LSHBands = b }
}

// WithLSHBandSize sets the bits per LSH band R.
func WithLSHBandSize(r int) Option {
	return func(c *Config) { c.LSHBandSize = r }
}

// WithThreshold sets the (k, n) threshold-scheme parameters.
func WithThreshold(k, n int) Option {
	return func(c *Config) {
		c.ThresholdK = k
		c.ThresholdN = n
	}
}

// WithPRFBackend selects among the pkg/prf backend registry.
func WithPRFBackend(backend prf.Backend) Option {
	return func(c *Config) { c.PRFBackend = backend }
}

// WithLogger injects a logr.Logger, overriding the verbosity-0 stdr default.
func WithLogger(logger logr.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}
