// Package cardinality implements sketch-based cardinality estimators: linear
// counting and a HyperLogLog-style estimator that reads registers directly
// off a hash word, plus an adaptive selector and an inclusion-exclusion
// union estimator. The HyperLogLog register layout, bias constant and
// linear-counting correction threshold are grounded in
// other_examples/clarkduvall-hyperloglog__hll.go, adapted from an explicit
// register array to a byte-word-as-registers variant.
package cardinality

import (
	"math"

	"github.com/queelius/cipher-trapdoor-sets/internal/bitops"
	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
)

// hllBuckets is the fixed bucket count m used by the HyperLogLog estimator.
const hllBuckets = 64

// hllAlpha is the bias-correction constant for m = 64 buckets:
// α = 0.7213 / (1 + 1.079/m).
var hllAlpha = 0.7213 / (1 + 1.079/float64(hllBuckets))

// LinearCount estimates |s| via linear counting: s = popcount(hash),
// M = 8N, z = M - s; n̂ = -M*ln(z/M). Returns (M, 0.5) on saturation
// (z == 0).
func LinearCount(h hashword.Word) approx.Value[float64] {
	m := float64(h.Len() * 8)
	s := float64(h.Popcount())
	z := m - s

	if z == 0 {
		return approx.New(m, 0.5, 0.5)
	}

	n := -m * math.Log(z/m)
	rho := s / m
	sigma := math.Sqrt(math.Exp(rho)-rho-1) / math.Sqrt(m)
	return approx.New(n, sigma, sigma)
}

// HyperLogLog estimates |s| using a HyperLogLog-style sketch over h's bytes:
// byte j contributes to bucket j mod m (m = 64, p = 6); a bucket's register
// value is count_trailing_zeros(byte) if nonzero, else 8.
func HyperLogLog(h hashword.Word) approx.Value[float64] {
	var buckets [hllBuckets]int
	filled := make([]bool, hllBuckets)

	for j := 0; j < h.Len(); j++ {
		bucket := j % hllBuckets
		reg := bitops.TrailingZeros8(h.ByteAt(j))
		if !filled[bucket] || reg > buckets[bucket] {
			buckets[bucket] = reg
		}
		filled[bucket] = true
	}

	var sumInv float64
	var zeros int
	for i, f := range filled {
		if !f {
			buckets[i] = 0
		}
		sumInv += math.Pow(2, -float64(buckets[i]))
		if buckets[i] == 0 {
			zeros++
		}
	}

	m := float64(hllBuckets)
	estimate := hllAlpha * m * m / sumInv

	if estimate < 2.5*m && zeros > 0 {
		estimate = m * math.Log(m/float64(zeros))
	}

	sigma := 1.04 / math.Sqrt(m)
	return approx.New(estimate, sigma, sigma)
}

// Adaptive runs LinearCount first; if its estimate is below 100, that
// estimate is kept, otherwise HyperLogLog's estimate is returned.
func Adaptive(h hashword.Word) approx.Value[float64] {
	lc := LinearCount(h)
	if lc.V < 100 {
		return lc
	}
	return HyperLogLog(h)
}

// Compare estimates the cardinalities of a and b via Adaptive and reports
// -1/0/+1 depending on whether the relative difference is within 10% (tie)
// or a is smaller/larger than b.
func Compare(a, b hashword.Word) approx.Value[int] {
	ea := Adaptive(a)
	eb := Adaptive(b)

	maxV := math.Max(ea.V, eb.V)
	var delta float64
	if maxV > 0 {
		delta = math.Abs(ea.V-eb.V) / maxV
	}

	var sign int
	switch {
	case delta < 0.1:
		sign = 0
	case ea.V < eb.V:
		sign = -1
	default:
		sign = 1
	}

	errRate := 1 - (1-ea.ErrorRate())*(1-eb.ErrorRate())
	return approx.New(sign, errRate, errRate)
}

// Union estimates |A ∪ B| via inclusion-exclusion: n̂(A) + n̂(B) - n̂(A ∩ B),
// composing the three input error rates.
func Union(a, b, intersection hashword.Word) approx.Value[float64] {
	ea := Adaptive(a)
	eb := Adaptive(b)
	ei := Adaptive(intersection)

	n := ea.V + eb.V - ei.V
	errRate := approx.Compose(approx.Compose(ea.ErrorRate(), eb.ErrorRate()), ei.ErrorRate())
	return approx.New(n, errRate, errRate)
}
