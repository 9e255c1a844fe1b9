package hashword

import "testing"

func mkWord(bs ...byte) Word {
	return FromBytes(bs)
}

func TestXorCommutesAndAssociates(t *testing.T) {
	a := mkWord(1, 2, 3, 4)
	b := mkWord(5, 6, 7, 8)
	c := mkWord(9, 10, 11, 12)

	if !a.Xor(b).Equal(b.Xor(a)) {
		t.Fatalf("xor should commute")
	}
	if !a.Xor(b).Xor(c).Equal(a.Xor(b.Xor(c))) {
		t.Fatalf("xor should associate")
	}
}

func TestXorSelfInverse(t *testing.T) {
	a := mkWord(1, 2, 3, 4)
	if !a.Xor(a).IsZero() {
		t.Fatalf("a xor a must be the zero word")
	}
}

func TestDoubleNegation(t *testing.T) {
	a := mkWord(0xDE, 0xAD, 0xBE, 0xEF)
	if !a.Not().Not().Equal(a) {
		t.Fatalf("~~a must equal a")
	}
}

func TestIsZeroIsOnes(t *testing.T) {
	z := New32()
	if !z.IsZero() {
		t.Fatalf("New32() must be the zero word")
	}
	if !z.Not().IsOnes() {
		t.Fatalf("~zero must be all-ones")
	}
}

func TestEqualityRequiresSameWidth(t *testing.T) {
	a := New16()
	b := New32()
	if a.Equal(b) {
		t.Fatalf("words of different width must never be equal")
	}
}

func TestPopcount(t *testing.T) {
	w := mkWord(0xFF, 0x00, 0x0F)
	if got := w.Popcount(); got != 12 {
		t.Fatalf("expected popcount 12, got %d", got)
	}
}

func TestMonomorphicConstructors(t *testing.T) {
	if New16().Len() != 16 || New32().Len() != 32 || New64().Len() != 64 {
		t.Fatalf("monomorphic constructors must produce the named widths")
	}
}
