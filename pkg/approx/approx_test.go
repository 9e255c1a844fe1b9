package approx

import "testing"

func TestComposeRange(t *testing.T) {
	for _, e1 := range []float64{0, 0.1, 0.5, 1} {
		for _, e2 := range []float64{0, 0.1, 0.5, 1} {
			c := Compose(e1, e2)
			if c < 0 || c > 1 {
				t.Fatalf("Compose(%v, %v) = %v out of [0,1]", e1, e2, c)
			}
		}
	}
}

func TestComposeIdentity(t *testing.T) {
	if Compose(0, 0) != 0 {
		t.Fatalf("Compose(0,0) should be 0")
	}
	if Compose(1, 0) != 1 || Compose(0, 1) != 1 {
		t.Fatalf("Compose(1,0) and Compose(0,1) should be 1")
	}
}

func TestDoubleNegationInvolution(t *testing.T) {
	a := New(true, 0.01, 0.02)
	got := Not(Not(a))
	if got.V != a.V || got.FPR != a.FPR || got.FNR != a.FNR {
		t.Fatalf("!!a should equal a pointwise, got %+v want %+v", got, a)
	}
}

func TestNotSwapsRates(t *testing.T) {
	a := New(true, 0.1, 0.2)
	n := Not(a)
	if n.FPR != a.FNR || n.FNR != a.FPR {
		t.Fatalf("Not must swap fpr/fnr, got %+v", n)
	}
}

func TestAndValueIsConjunction(t *testing.T) {
	cases := []struct{ a, b, want bool }{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, c := range cases {
		got := And(Exact(c.a), Exact(c.b))
		if got.V != c.want {
			t.Fatalf("And(%v,%v).V = %v, want %v", c.a, c.b, got.V, c.want)
		}
	}
}

func TestOrValueIsDisjunction(t *testing.T) {
	cases := []struct{ a, b, want bool }{
		{true, true, true},
		{true, false, true},
		{false, true, true},
		{false, false, false},
	}
	for _, c := range cases {
		got := Or(Exact(c.a), Exact(c.b))
		if got.V != c.want {
			t.Fatalf("Or(%v,%v).V = %v, want %v", c.a, c.b, got.V, c.want)
		}
	}
}

func TestErrorRateNeverDecreasesUnderComposition(t *testing.T) {
	a := New(true, 0.1, 0.05)
	b := New(true, 0.2, 0.1)
	c := And(a, b)
	if c.ErrorRate() < a.ErrorRate() || c.ErrorRate() < b.ErrorRate() {
		t.Fatalf("composed error rate %v must not be below either input (%v, %v)", c.ErrorRate(), a.ErrorRate(), b.ErrorRate())
	}
}

func TestIsExact(t *testing.T) {
	if !Exact(true).IsExact() {
		t.Fatalf("Exact(true) should be exact")
	}
	if New(true, 0.0001, 0).IsExact() {
		t.Fatalf("nonzero fpr should not be exact")
	}
}
