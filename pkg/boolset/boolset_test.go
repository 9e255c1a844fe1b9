package boolset

import (
	"fmt"
	"testing"

	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// TestS3Membership checks approximate membership against a Boolean set
// built from several singletons.
func TestS3Membership(t *testing.T) {
	bf, err := NewFactory(prf.Blake3, []byte("demo"), 32, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tf, err := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := bf.FromCollection([][]byte{[]byte("apple"), []byte("banana"), []byte("cherry")})

	contains, err := bf.Contains(s, tf.Create([]byte("banana")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains.V {
		t.Fatalf("banana should be a member")
	}

	var falsePositives int
	const trials = 1000
	for i := 0; i < trials; i++ {
		nonMember := tf.Create([]byte(fmt.Sprintf("durian-%d", i)))
		c, err := bf.Contains(s, nonMember)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.V {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / trials
	if rate > 0.5 {
		t.Fatalf("observed false-positive rate %v exceeds the contract's 0.5 bound", rate)
	}
}

func TestUnionIntersectCommuteAndAssociate(t *testing.T) {
	bf, _ := NewFactory(prf.Blake3, []byte("demo"), 32, 3)
	a := bf.Singleton([]byte("a"))
	b := bf.Singleton([]byte("b"))
	c := bf.Singleton([]byte("c"))

	ab, _ := Union(a, b)
	ba, _ := Union(b, a)
	if eq, _ := Equals(ab, ba); !eq.V {
		t.Fatalf("union must commute")
	}

	abc1, _ := Union(ab, c)
	bc, _ := Union(b, c)
	abc2, _ := Union(a, bc)
	if eq, _ := Equals(abc1, abc2); !eq.V {
		t.Fatalf("union must associate")
	}

	aIb, _ := Intersect(a, b)
	bIa, _ := Intersect(b, a)
	if eq, _ := Equals(aIb, bIa); !eq.V {
		t.Fatalf("intersect must commute")
	}
}

func TestDifferenceAndSymmetricDifferenceIdentities(t *testing.T) {
	bf, _ := NewFactory(prf.Blake3, []byte("demo"), 32, 3)
	a := bf.FromCollection([][]byte{[]byte("a"), []byte("b")})
	b := bf.FromCollection([][]byte{[]byte("b"), []byte("c")})

	diff, _ := Difference(a, b)
	notB := Complement(b)
	aAndNotB, _ := Intersect(a, notB)
	if eq, _ := Equals(diff, aAndNotB); !eq.V {
		t.Fatalf("a - b must equal a & ~b")
	}

	symdiff, _ := SymmetricDifference(a, b)
	union, _ := Union(a, b)
	inter, _ := Intersect(a, b)
	notInter := Complement(inter)
	unionAndNotInter, _ := Intersect(union, notInter)
	if eq, _ := Equals(symdiff, unionAndNotInter); !eq.V {
		t.Fatalf("a ^ b must equal (a|b) & ~(a&b)")
	}
}

func TestIncompatibleKey(t *testing.T) {
	bf1, _ := NewFactory(prf.Blake3, []byte("key1"), 32, 3)
	bf2, _ := NewFactory(prf.Blake3, []byte("key2"), 32, 3)

	a := bf1.Singleton([]byte("x"))
	b := bf2.Singleton([]byte("y"))

	if _, err := Union(a, b); err == nil {
		t.Fatalf("expected incompatible key error")
	}
}

func TestAdviseHashCountPositive(t *testing.T) {
	if m := AdviseHashCount(256, 100); m < 1 {
		t.Fatalf("advised hash count must be at least 1, got %d", m)
	}
	if m := AdviseHashCount(256, 0); m != DefaultHashCount {
		t.Fatalf("zero expected items should fall back to the default, got %d", m)
	}
}

// TestNewFactoryFromConfig checks that a Factory built from a resolved
// config.Config takes its hash count from the config and reports a value
// of a set it built as a member.
func TestNewFactoryFromConfig(t *testing.T) {
	cfg := config.New(
		config.WithKeyString("demo"),
		config.WithHashBytes(32),
		config.WithBloomHashes(3),
		config.WithPRFBackend(prf.Blake3),
	)

	cf, err := NewFactoryFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cf.HashCount() != 3 {
		t.Fatalf("expected hash count 3, got %d", cf.HashCount())
	}

	tf, _ := trapdoor.NewFactory(prf.Blake3, []byte("demo"), 32)
	s := cf.FromCollection([][]byte{[]byte("apple"), []byte("banana")})

	contains, err := cf.Contains(s, tf.Create([]byte("banana")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains.V {
		t.Fatalf("banana should be a member")
	}
}
