package homomorphic

import (
	"encoding/binary"
	"math/big"

	"github.com/bwesterb/go-ristretto"

	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// ShamirScheme is a genuine finite-field Shamir secret sharing scheme over
// the ristretto255 scalar field, offered alongside XORShareScheme as a
// true any-subset alternative. Unlike XORShareScheme, Reconstruct is
// correct for any k-subset of the n shares, via Lagrange interpolation.
// Grounded in bwesterb/go-ristretto's Scalar modular arithmetic (Add, Mul,
// Inverse), the same curve library pkg/pair uses for its PAIR key material,
// repurposed here for its finite-field arithmetic rather than its point
// group.
type ShamirScheme struct {
	k, n int
}

// NewShamirScheme validates 1 <= k <= n.
func NewShamirScheme(k, n int) (*ShamirScheme, error) {
	if k <= 0 || k > n {
		return nil, errs.ErrInvalidThreshold
	}
	return &ShamirScheme{k: k, n: n}, nil
}

// NewShamirSchemeFromConfig constructs a ShamirScheme from a resolved
// config.Config's cfg.ThresholdK and cfg.ThresholdN.
func NewShamirSchemeFromConfig(cfg config.Config) (*ShamirScheme, error) {
	return NewShamirScheme(cfg.ThresholdK, cfg.ThresholdN)
}

// Share is one party's share of a Shamir-split trapdoor: the evaluation
// point x and one scalar per 8-byte block of the trapdoor's hash.
type Share struct {
	X      uint64
	Blocks []ristretto.Scalar
}

func blockCount(byteWidth int) int {
	return (byteWidth + 7) / 8
}

func blockSecret(bytes []byte, block int) uint64 {
	var buf [8]byte
	start := block * 8
	end := start + 8
	if end > len(bytes) {
		end = len(bytes)
	}
	copy(buf[:end-start], bytes[start:end])
	return binary.BigEndian.Uint64(buf[:])
}

// CreateShares splits td.h into n Shamir shares, each block of the hash
// independently secret-shared under the same x-coordinates.
func (s *ShamirScheme) CreateShares(td trapdoor.Token) ([]Share, error) {
	bytes := td.H.Bytes()
	blocks := blockCount(len(bytes))

	polys := make([][]ristretto.Scalar, blocks)
	for b := 0; b < blocks; b++ {
		coeffs := make([]ristretto.Scalar, s.k)
		setUint64(&coeffs[0], blockSecret(bytes, b))
		for i := 1; i < s.k; i++ {
			coeffs[i].Rand()
		}
		polys[b] = coeffs
	}

	shares := make([]Share, s.n)
	for x := 1; x <= s.n; x++ {
		var xs ristretto.Scalar
		setUint64(&xs, uint64(x))

		vals := make([]ristretto.Scalar, blocks)
		for b := 0; b < blocks; b++ {
			vals[b] = evalPoly(polys[b], xs)
		}
		shares[x-1] = Share{X: uint64(x), Blocks: vals}
	}
	return shares, nil
}

// evalPoly evaluates coeffs (constant term first) at x via Horner's method.
func evalPoly(coeffs []ristretto.Scalar, x ristretto.Scalar) ristretto.Scalar {
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &coeffs[i])
	}
	return acc
}

// Reconstruct recovers td.h from any k of its n shares via Lagrange
// interpolation at x=0, one hash block at a time. Requires at least k
// shares, else returns ErrInsufficientShares.
func (s *ShamirScheme) Reconstruct(shares []Share, kf uint64, byteWidth int) (trapdoor.Token, error) {
	if len(shares) < s.k {
		return trapdoor.Token{}, errs.ErrInsufficientShares
	}
	use := shares[:s.k]
	blocks := blockCount(byteWidth)

	out := make([]byte, byteWidth)
	for b := 0; b < blocks; b++ {
		var secret ristretto.Scalar
		secret.SetZero()

		for i, si := range use {
			term := si.Blocks[b]
			for j, sj := range use {
				if i == j {
					continue
				}
				var xi, xj, num, den, frac ristretto.Scalar
				setUint64(&xi, si.X)
				setUint64(&xj, sj.X)

				num.SetZero()
				num.Sub(&num, &xj)

				den.Sub(&xi, &xj)
				frac.Inverse(&den)

				frac.Mul(&num, &frac)
				term.Mul(&term, &frac)
			}
			secret.Add(&secret, &term)
		}

		val := scalarLow64(&secret)
		start := b * 8
		end := start + 8
		if end > byteWidth {
			end = byteWidth
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], val)
		copy(out[start:end], buf[:end-start])
	}

	return trapdoor.Token{H: hashword.FromBytes(out), KF: kf}, nil
}

// scalarLow64 extracts the low 64 bits of a scalar's integer value, valid
// here because every shared secret is itself a uint64 well below the
// scalar field's order.
func scalarLow64(s *ristretto.Scalar) uint64 {
	return s.BigInt().Uint64()
}

// setUint64 sets s to the scalar value v, since ristretto.Scalar has no
// native SetUint64 method.
func setUint64(s *ristretto.Scalar, v uint64) *ristretto.Scalar {
	return s.SetBigInt(new(big.Int).SetUint64(v))
}
