package homomorphic

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"

	"github.com/gtank/ristretto255"
)

// CommitmentAggregator is a Pedersen-commitment-backed variant of the
// secure aggregator, grounded in the
// teacher's PAIR scheme (pkg/pair), which already wraps gtank/ristretto255
// scalar/element arithmetic for blind re-encryption — repurposed here for
// additive commitments instead. Each contributed payload x_i is committed
// as C_i = x_i*G + r_i*H, two independent ristretto255 basepoints; the
// aggregator sums commitments via point addition, and the claimed sum is
// verified by recomputing the commitment from the revealed sum of x_i and
// r_i and checking point equality.
type CommitmentAggregator struct {
	g, h *ristretto255.Element
	sum  *ristretto255.Element
	n    int
}

// hGeneratorLabel derives the aggregator's second basepoint H, independent
// of the standard basepoint G, the same hash-to-point technique pkg/pair
// uses to map hashed plaintext onto the curve.
const hGeneratorLabel = "cipher-trapdoor-sets/homomorphic/H"

// NewCommitmentAggregator returns an empty aggregator.
func NewCommitmentAggregator() *CommitmentAggregator {
	one := scalarFromInt64(1)
	g := ristretto255.NewElement().ScalarBaseMult(one)

	label := sha512.Sum512([]byte(hGeneratorLabel))
	h := ristretto255.NewElement().FromUniformBytes(label[:])

	return &CommitmentAggregator{g: g, h: h, sum: ristretto255.NewElement()}
}

// scalarFromInt64 maps x into the scalar field via wide reduction. Values
// far below the field order (as every payload and blinding scalar here is)
// map deterministically and without collision.
func scalarFromInt64(x int64) *ristretto255.Scalar {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint64(buf[:8], uint64(x))
	return ristretto255.NewScalar().FromUniformBytes(buf)
}

// randomBlindingScalar draws a uniformly random blinding scalar r_i.
func randomBlindingScalar() (*ristretto255.Scalar, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return ristretto255.NewScalar().FromUniformBytes(buf), nil
}

// Commit contributes x under a freshly drawn blinding scalar r, returning
// both the commitment C and r (the holder must keep r to later reveal the
// aggregate blinding factor for Verify).
func (a *CommitmentAggregator) Commit(x int64) (commitment *ristretto255.Element, r *ristretto255.Scalar, err error) {
	r, err = randomBlindingScalar()
	if err != nil {
		return nil, nil, err
	}

	xg := ristretto255.NewElement().ScalarMult(scalarFromInt64(x), a.g)
	rh := ristretto255.NewElement().ScalarMult(r, a.h)
	c := ristretto255.NewElement().Add(xg, rh)

	a.sum.Add(a.sum, c)
	a.n++
	return c, r, nil
}

// N reports how many commitments have been contributed.
func (a *CommitmentAggregator) N() int {
	return a.n
}

// Verify checks that the revealed sum of payloads (sumX) and blinding
// scalars (sumR) recomputes the accumulated commitment sum exactly.
func (a *CommitmentAggregator) Verify(sumX int64, sumR *ristretto255.Scalar) bool {
	xg := ristretto255.NewElement().ScalarMult(scalarFromInt64(sumX), a.g)
	rh := ristretto255.NewElement().ScalarMult(sumR, a.h)
	recomputed := ristretto255.NewElement().Add(xg, rh)
	return recomputed.Equal(a.sum) == 1
}

// SumBlindingScalars adds every given blinding scalar together, the helper
// callers use to produce the sumR argument Verify expects.
func SumBlindingScalars(rs []*ristretto255.Scalar) *ristretto255.Scalar {
	sum := ristretto255.NewScalar()
	for _, r := range rs {
		sum.Add(sum, r)
	}
	return sum
}
