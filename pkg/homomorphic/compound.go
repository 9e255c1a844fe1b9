package homomorphic

import (
	"math"

	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// CompoundToken collects trapdoor components sharing one kf and folds them
// multiplicatively, via AND, rather than the additive XOR fold of
// AdditiveToken.
type CompoundToken struct {
	components []trapdoor.Token
	kf         uint64
	have       bool
}

// NewCompoundToken returns an empty CompoundToken.
func NewCompoundToken() *CompoundToken {
	return &CompoundToken{}
}

// Add contributes t. Returns ErrIncompatibleKey if t's kf differs from a
// prior contribution's.
func (c *CompoundToken) Add(t trapdoor.Token) error {
	if c.have && t.KF != c.kf {
		return errs.ErrIncompatibleKey
	}
	c.kf = t.KF
	c.have = true
	c.components = append(c.components, t)
	return nil
}

// Len returns the number of contributed components.
func (c *CompoundToken) Len() int {
	return len(c.components)
}

// Multiply folds every contributed component's hash via AND. Returns
// ErrEmptyCompound if no components were added.
func (c *CompoundToken) Multiply() (trapdoor.Token, error) {
	if len(c.components) == 0 {
		return trapdoor.Token{}, errs.ErrEmptyCompound
	}
	h := c.components[0].H
	for _, t := range c.components[1:] {
		h = h.And(t.H)
	}
	return trapdoor.Token{H: h, KF: c.kf}, nil
}

// AllSatisfy reports whether pred holds for every contributed component's
// hash (true when there are no components). fpr = 1 - 0.99^k, where k is
// the component count.
func (c *CompoundToken) AllSatisfy(pred func(hashword.Word) bool) approx.Value[bool] {
	allTrue := true
	for _, t := range c.components {
		if !pred(t.H) {
			allTrue = false
			break
		}
	}
	k := len(c.components)
	fpr := 1 - math.Pow(0.99, float64(k))
	return approx.New(allTrue, fpr, 0)
}
