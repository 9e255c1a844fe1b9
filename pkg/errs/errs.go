// Package errs defines the sentinel error taxonomy shared by every component
// in this module, following the package-level "var Err... = fmt.Errorf(...)"
// convention used throughout (internal/hash, internal/util).
package errs

import "errors"

var (
	// ErrIncompatibleKey is returned when a combining operation is attempted
	// on tokens or sets derived under different keys.
	ErrIncompatibleKey = errors.New("incompatible key fingerprints")

	// ErrSizeMismatch is returned by batch operations given unequal-length
	// inputs.
	ErrSizeMismatch = errors.New("size mismatch between batch inputs")

	// ErrInvalidThreshold is returned when a threshold scheme is constructed
	// with k > n or k == 0.
	ErrInvalidThreshold = errors.New("invalid threshold: require 1 <= k <= n")

	// ErrInsufficientShares is returned when reconstruct is called with
	// fewer than k shares.
	ErrInsufficientShares = errors.New("insufficient shares to reconstruct")

	// ErrEmptyCompound is returned when multiply is called on a compound
	// trapdoor with no components.
	ErrEmptyCompound = errors.New("compound trapdoor has no components")

	// ErrTruncatedInput is returned when a serialized buffer is shorter than
	// the layout requires.
	ErrTruncatedInput = errors.New("truncated input: buffer shorter than expected layout")
)
