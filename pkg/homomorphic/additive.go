// Package homomorphic implements additive and multiplicative trapdoor
// algebra, secure aggregation, and k-of-n threshold sharing.
package homomorphic

import (
	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// Numeric is the set of payload types an AdditiveToken can carry.
type Numeric interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// AdditiveToken pairs a trapdoor with a numeric payload: the hash combines
// by XOR, the payload by ordinary addition.
type AdditiveToken[T Numeric] struct {
	H       hashword.Word
	KF      uint64
	Payload T
}

// NewAdditiveToken wraps a trapdoor token with a payload.
func NewAdditiveToken[T Numeric](t trapdoor.Token, payload T) AdditiveToken[T] {
	return AdditiveToken[T]{H: t.H, KF: t.KF, Payload: payload}
}

// Add combines a and b: the hash by XOR, the payload by +. Requires equal
// kf.
func Add[T Numeric](a, b AdditiveToken[T]) (AdditiveToken[T], error) {
	if a.KF != b.KF {
		return AdditiveToken[T]{}, errs.ErrIncompatibleKey
	}
	return AdditiveToken[T]{H: a.H.Xor(b.H), KF: a.KF, Payload: a.Payload + b.Payload}, nil
}

// ScalarMul multiplies a by the positive integer k: the payload by ordinary
// *, the hash by folding it k-1 additional times via XOR.
// There is no inversion — k must be >= 1.
func ScalarMul[T Numeric](a AdditiveToken[T], k int) AdditiveToken[T] {
	h := a.H
	for i := 1; i < k; i++ {
		h = h.Xor(a.H)
	}
	return AdditiveToken[T]{H: h, KF: a.KF, Payload: a.Payload * T(k)}
}

// Aggregator combines a collection of additive tokens built under a single
// key, exposing Sum and Mean of their payloads with a small fixed error
// rate representing aggregation uncertainty.
type Aggregator[T Numeric] struct {
	tokens []AdditiveToken[T]
	kf     uint64
	have   bool
}

// aggregationErrorRate is the fixed error rate the default aggregator
// reports for its sum/mean, representing the aggregate collision risk
// across all contributed trapdoors.
const aggregationErrorRate = 0.01

// NewAggregator returns an empty Aggregator.
func NewAggregator[T Numeric]() *Aggregator[T] {
	return &Aggregator[T]{}
}

// Add contributes t to the aggregate. Returns ErrIncompatibleKey if t's kf
// differs from a prior contribution's.
func (a *Aggregator[T]) Add(t AdditiveToken[T]) error {
	if a.have && t.KF != a.kf {
		return errs.ErrIncompatibleKey
	}
	a.kf = t.KF
	a.have = true
	a.tokens = append(a.tokens, t)
	return nil
}

// Sum returns the sum of all contributed payloads.
func (a *Aggregator[T]) Sum() approx.Value[T] {
	var sum T
	for _, t := range a.tokens {
		sum += t.Payload
	}
	return approx.New(sum, aggregationErrorRate, aggregationErrorRate)
}

// Mean returns the mean of all contributed payloads as a float64, 0 if
// empty.
func (a *Aggregator[T]) Mean() approx.Value[float64] {
	if len(a.tokens) == 0 {
		return approx.New(0.0, aggregationErrorRate, aggregationErrorRate)
	}
	var sum float64
	for _, t := range a.tokens {
		sum += float64(t.Payload)
	}
	return approx.New(sum/float64(len(a.tokens)), aggregationErrorRate, aggregationErrorRate)
}

// CombinedHash XORs every contributed token's hash together, mirroring
// pkg/sdset's fold for callers who want the aggregate's hash identity
// alongside its numeric sum.
func (a *Aggregator[T]) CombinedHash() hashword.Word {
	if len(a.tokens) == 0 {
		return hashword.Word{}
	}
	h := a.tokens[0].H
	for _, t := range a.tokens[1:] {
		h = h.Xor(t.H)
	}
	return h
}
