package prf

import "fmt"

// ErrUnknownBackend is returned by New for an unrecognized Backend value,
// grounded in internal/hash.ErrUnknownHash.
var ErrUnknownBackend = fmt.Errorf("prf: cannot create a backend of unknown type")
