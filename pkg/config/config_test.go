package config

import (
	"testing"

	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
)

func TestDefaults(t *testing.T) {
	c := New()
	if c.HashBytes != DefaultHashBytes {
		t.Fatalf("expected default hash width %d, got %d", DefaultHashBytes, c.HashBytes)
	}
	if c.BloomHashes != DefaultBloomHashes {
		t.Fatalf("expected default bloom hash count %d, got %d", DefaultBloomHashes, c.BloomHashes)
	}
	if c.PRFBackend != prf.Blake3 {
		t.Fatalf("expected default backend Blake3, got %v", c.PRFBackend)
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := New(
		WithHashBytes(64),
		WithKeyString("demo"),
		WithBloomHashes(7),
		WithMinHashLength(64),
		WithLSHBands(10),
		WithLSHBandSize(4),
		WithThreshold(2, 3),
		WithPRFBackend(prf.Murmur3),
	)

	if c.HashBytes != 64 {
		t.Fatalf("expected hash width 64, got %d", c.HashBytes)
	}
	if string(c.Key) != "demo" {
		t.Fatalf("expected key %q, got %q", "demo", c.Key)
	}
	if c.BloomHashes != 7 || c.MinHashLength != 64 || c.LSHBands != 10 || c.LSHBandSize != 4 {
		t.Fatalf("unexpected sketch parameters: %+v", c)
	}
	if c.ThresholdK != 2 || c.ThresholdN != 3 {
		t.Fatalf("expected threshold (2,3), got (%d,%d)", c.ThresholdK, c.ThresholdN)
	}
	if c.PRFBackend != prf.Murmur3 {
		t.Fatalf("expected backend Murmur3, got %v", c.PRFBackend)
	}
}
