package homomorphic

import (
	"testing"

	"github.com/gtank/ristretto255"

	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/hashword"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

func TestAdditiveTokenAddAndScalarMul(t *testing.T) {
	tf, err := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := NewAdditiveToken(tf.Create([]byte("10")), 10)
	b := NewAdditiveToken(tf.Create([]byte("20")), 20)

	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Payload != 30 {
		t.Fatalf("expected payload 30, got %d", sum.Payload)
	}

	doubled := ScalarMul(a, 1)
	if !doubled.H.Equal(a.H) {
		t.Fatalf("scalar mul by 1 must preserve the hash")
	}
	if doubled.Payload != 10 {
		t.Fatalf("scalar mul by 1 must preserve the payload")
	}

	tripled := ScalarMul(a, 3)
	if tripled.Payload != 30 {
		t.Fatalf("expected payload 30 after *3, got %d", tripled.Payload)
	}
}

func TestAdditiveTokenIncompatibleKey(t *testing.T) {
	tf1, _ := trapdoor.NewFactory(prf.Blake3, []byte("key1"), 32)
	tf2, _ := trapdoor.NewFactory(prf.Blake3, []byte("key2"), 32)

	a := NewAdditiveToken(tf1.Create([]byte("x")), 1)
	b := NewAdditiveToken(tf2.Create([]byte("y")), 2)

	if _, err := Add(a, b); err == nil {
		t.Fatalf("expected incompatible key error")
	}
}

func TestAggregatorSumAndMean(t *testing.T) {
	tf, _ := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	agg := NewAggregator[float64]()

	values := []float64{10, 20, 30, 40}
	for i, v := range values {
		tok := NewAdditiveToken(tf.Create([]byte{byte(i)}), v)
		if err := agg.Add(tok); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sum := agg.Sum()
	if sum.V != 100 {
		t.Fatalf("expected sum 100, got %v", sum.V)
	}
	mean := agg.Mean()
	if mean.V != 25 {
		t.Fatalf("expected mean 25, got %v", mean.V)
	}
}

func TestCompoundTokenMultiplyAndAllSatisfy(t *testing.T) {
	tf, _ := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	c := NewCompoundToken()

	for _, v := range []string{"a", "b", "c"} {
		if err := c.Add(tf.Create([]byte(v))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if _, err := c.Multiply(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allNonZero := c.AllSatisfy(func(h hashword.Word) bool {
		return !h.IsZero()
	})
	if !allNonZero.V {
		t.Fatalf("expected all components to satisfy non-zero predicate")
	}
}

func TestCompoundTokenEmpty(t *testing.T) {
	c := NewCompoundToken()
	if _, err := c.Multiply(); err == nil {
		t.Fatalf("expected empty compound error")
	}
}

// TestS6ThresholdReconstruct checks that the canonical k-subset
// reconstructs a 3-of-5 XOR sharing and a 2-share subset does not.
func TestS6ThresholdReconstruct(t *testing.T) {
	tf, err := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	td := tf.Create([]byte("secret"))

	scheme, err := NewXORShareScheme(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shares, err := scheme.CreateShares(td)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("expected 5 shares, got %d", len(shares))
	}

	reconstructed, err := scheme.Reconstruct(shares[0:3], td.KF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reconstructed.H.Equal(td.H) {
		t.Fatalf("canonical subset must reconstruct the original hash")
	}

	if _, err := scheme.Reconstruct(shares[0:2], td.KF); err == nil {
		t.Fatalf("expected insufficient shares error")
	}
}

func TestXORShareInvalidThreshold(t *testing.T) {
	if _, err := NewXORShareScheme(6, 5); err == nil {
		t.Fatalf("expected invalid threshold error")
	}
}

func TestShamirReconstructsFromAnySubset(t *testing.T) {
	tf, err := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	td := tf.Create([]byte("secret"))

	scheme, err := NewShamirScheme(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shares, err := scheme.CreateShares(td)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A non-prefix subset must reconstruct correctly too, unlike
	// XORShareScheme's canonical-subset-only guarantee.
	subset := []Share{shares[1], shares[3], shares[4]}
	reconstructed, err := scheme.Reconstruct(subset, td.KF, td.H.Len())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reconstructed.H.Equal(td.H) {
		t.Fatalf("any k-subset must reconstruct the original hash")
	}
}

func TestShamirInsufficientShares(t *testing.T) {
	tf, _ := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 16)
	td := tf.Create([]byte("secret"))

	scheme, _ := NewShamirScheme(3, 5)
	shares, _ := scheme.CreateShares(td)

	if _, err := scheme.Reconstruct(shares[0:2], td.KF, td.H.Len()); err == nil {
		t.Fatalf("expected insufficient shares error")
	}
}

// TestNewXORShareSchemeFromConfig checks that a scheme built from a resolved
// config.Config's threshold fields behaves identically to the equivalent
// positional NewXORShareScheme call.
func TestNewXORShareSchemeFromConfig(t *testing.T) {
	tf, _ := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	td := tf.Create([]byte("secret"))

	cfg := config.New(config.WithThreshold(3, 5))
	scheme, err := NewXORShareSchemeFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shares, err := scheme.CreateShares(td)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("expected 5 shares, got %d", len(shares))
	}

	reconstructed, err := scheme.Reconstruct(shares[0:3], td.KF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reconstructed.H.Equal(td.H) {
		t.Fatalf("canonical subset must reconstruct the original hash")
	}
}

// TestNewShamirSchemeFromConfig checks that a scheme built from a resolved
// config.Config's threshold fields reconstructs from any k-subset, just like
// one built from the equivalent positional NewShamirScheme call.
func TestNewShamirSchemeFromConfig(t *testing.T) {
	tf, _ := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 16)
	td := tf.Create([]byte("secret"))

	cfg := config.New(config.WithThreshold(3, 5))
	scheme, err := NewShamirSchemeFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shares, err := scheme.CreateShares(td)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subset := []Share{shares[1], shares[3], shares[4]}
	reconstructed, err := scheme.Reconstruct(subset, td.KF, td.H.Len())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reconstructed.H.Equal(td.H) {
		t.Fatalf("any k-subset must reconstruct the original hash")
	}
}

func TestCommitmentAggregatorVerifiesSum(t *testing.T) {
	agg := NewCommitmentAggregator()

	values := []int64{10, 20, 30}
	var sumX int64
	var collected []*ristretto255.Scalar
	for _, v := range values {
		_, r, err := agg.Commit(v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sumX += v
		collected = append(collected, r)
	}

	sumR := SumBlindingScalars(collected)
	if !agg.Verify(sumX, sumR) {
		t.Fatalf("verification must succeed for the true revealed sum")
	}
	if agg.Verify(sumX+1, sumR) {
		t.Fatalf("verification must fail for a tampered sum")
	}
}
