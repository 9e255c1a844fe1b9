package similarity

import (
	"math"

	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/boolset"
	"github.com/queelius/cipher-trapdoor-sets/pkg/cardinality"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/sdset"
)

// JaccardBS estimates the Jaccard index of two Boolean sets via
// n̂(a&b) / n̂(a|b), using Adaptive cardinality on the intersection and
// union hash words. Error is max(σ_∩, σ_∪). Returns 1.0 if
// the union is estimated empty.
func JaccardBS(a, b boolset.Set) (approx.Value[float64], error) {
	inter, err := boolset.Intersect(a, b)
	if err != nil {
		return approx.Value[float64]{}, err
	}
	union, err := boolset.Union(a, b)
	if err != nil {
		return approx.Value[float64]{}, err
	}

	ei := cardinality.Adaptive(inter.H)
	eu := cardinality.Adaptive(union.H)
	if eu.V == 0 {
		return approx.New(1.0, 0, 0), nil
	}

	sigma := math.Max(ei.ErrorRate(), eu.ErrorRate())
	return approx.New(ei.V/eu.V, sigma, sigma), nil
}

// JaccardSDS computes the direct bit-ratio Jaccard index of two
// symmetric-difference sets: c = popcount(a.h & b.h), u = popcount(a.h |
// b.h); returns c/u with σ = 1/√u.
func JaccardSDS(a, b sdset.Set) (approx.Value[float64], error) {
	if a.KF != b.KF {
		return approx.Value[float64]{}, errs.ErrIncompatibleKey
	}

	c := float64(a.H.And(b.H).Popcount())
	u := float64(a.H.Or(b.H).Popcount())
	if u == 0 {
		return approx.New(1.0, 0, 0), nil
	}

	sigma := 1 / math.Sqrt(u)
	return approx.New(c/u, sigma, sigma), nil
}

// Cosine treats a and b's bytes as real-valued coordinates in [0,255] and
// returns their cosine similarity ⟨a,b⟩ / (‖a‖·‖b‖), or 0 if either norm is
// zero. Error is 1/(8N).
func Cosine(a, b hashword.Word) (approx.Value[float64], error) {
	if a.Len() != b.Len() {
		return approx.Value[float64]{}, errs.ErrSizeMismatch
	}

	var dot, normA, normB float64
	for i := 0; i < a.Len(); i++ {
		x := float64(a.ByteAt(i))
		y := float64(b.ByteAt(i))
		dot += x * y
		normA += x * x
		normB += y * y
	}

	errRate := 1 / float64(8*a.Len())
	if normA == 0 || normB == 0 {
		return approx.New(0.0, errRate, errRate), nil
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return approx.New(sim, errRate, errRate), nil
}
