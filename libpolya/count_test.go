package libpolya

import (
	"context"
	"math/big"
	"testing"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
)

// rotations of n beads
func cyclicGroup(n int) *gopolya.Group {
	G := &gopolya.Group{Name: "cyclic", DomainSize: n}
	for i := 0; i < n; i++ {
		p := make(gopolya.Perm, n)
		for j := range p {
			p[j] = (i + j) % n
		}
		G.Elements = append(G.Elements, MustDecompose(p))
	}
	return G
}

// rotations and reflections of n >= 3 beads
func dihedralGroup(n int) *gopolya.Group {
	G := cyclicGroup(n)
	G.Name = "dihedral"
	for i := 0; i < n; i++ {
		p := make(gopolya.Perm, n)
		for j := range p {
			p[j] = (i + n - 1 - j) % n
		}
		G.Elements = append(G.Elements, MustDecompose(p))
	}
	return G
}

func TestCycleIndex(t *testing.T) {
	checkCycleIndex(t, cyclicGroup(1), 2, 2)
	checkCycleIndex(t, cyclicGroup(3), 2, 4)
	checkCycleIndex(t, cyclicGroup(4), 2, 6)
	checkCycleIndex(t, cyclicGroup(4), 3, 24)
	checkCycleIndex(t, cyclicGroup(6), 2, 14)
	checkCycleIndex(t, dihedralGroup(4), 2, 6)
	checkCycleIndex(t, dihedralGroup(5), 2, 8)
	checkCycleIndex(t, dihedralGroup(6), 2, 13)
	checkCycleIndex(t, dihedralGroup(6), 1, 1)

	// A group with only the identity counts every coloring
	trivial := &gopolya.Group{DomainSize: 5, Elements: []gopolya.Cycles{{{0}, {1}, {2}, {3}, {4}}}}
	checkCycleIndex(t, trivial, 3, 243)
}

func TestBurnsideDivisible(t *testing.T) {
	for n := 3; n <= 9; n++ {
		for k := 1; k <= 4; k++ {
			for _, G := range []*gopolya.Group{cyclicGroup(n), dihedralGroup(n)} {
				sum, err := BurnsideSum(G, k)
				if err != nil {
					t.Fatal(err)
				}
				if new(big.Int).Rem(sum, big.NewInt(int64(G.Order()))).Sign() != 0 {
					t.Fatalf("%s(%d) k=%d: sum %v not divisible by %d", G.Name, n, k, sum, G.Order())
				}
			}
		}
	}
}

func TestInexactBurnside(t *testing.T) {
	// e, (0 1), (0 1 2) is not closed: 8 + 4 + 2 = 14 is not a multiple of 3
	G, err := ParseGroup("e; (0 1); (0 1 2)", 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = CycleIndex(G, 2); errors.Cause(err) != gopolya.ErrInexactBurnside {
		t.Fatalf("expected ErrInexactBurnside, got %v", err)
	}
}

func TestBadArgs(t *testing.T) {
	G := cyclicGroup(4)
	if _, err := CycleIndex(G, 0); errors.Cause(err) != gopolya.ErrBadColorCount {
		t.Fatalf("expected ErrBadColorCount, got %v", err)
	}
	if _, err := AsymmetricColorings(G, -1); errors.Cause(err) != gopolya.ErrBadColorCount {
		t.Fatalf("expected ErrBadColorCount, got %v", err)
	}
	if _, err := CycleIndex(&gopolya.Group{DomainSize: 3}, 2); errors.Cause(err) != gopolya.ErrEmptyGroup {
		t.Fatalf("expected ErrEmptyGroup, got %v", err)
	}

	// Element covers 3 points of a 4 point domain
	G.Elements[1] = gopolya.Cycles{{0, 1, 2}}
	if _, err := CycleIndex(G, 2); errors.Cause(err) != gopolya.ErrDomainMismatch {
		t.Fatalf("expected ErrDomainMismatch, got %v", err)
	}

	noIdentity := &gopolya.Group{DomainSize: 2, Elements: []gopolya.Cycles{{{0, 1}}}}
	if _, err := AsymmetricColorings(noIdentity, 2); errors.Cause(err) != gopolya.ErrMissingIdentity {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestAsymmetricColorings(t *testing.T) {

	// Asymmetric necklaces are Lyndon words: every one has exactly n rotations
	checkAsymmetric(t, cyclicGroup(3), 2, 6)
	checkAsymmetric(t, cyclicGroup(4), 2, 12)
	checkAsymmetric(t, cyclicGroup(6), 2, 54)
	checkAsymmetric(t, cyclicGroup(8), 2, 240)
	checkAsymmetric(t, cyclicGroup(4), 3, 72)

	// With one color nothing is asymmetric unless the group is trivial
	checkAsymmetric(t, cyclicGroup(5), 1, 0)
	checkAsymmetric(t, cyclicGroup(1), 1, 1)
	checkAsymmetric(t, cyclicGroup(1), 7, 7)

	// Every coloring of 4 beads has a reflection symmetry
	checkAsymmetric(t, dihedralGroup(4), 2, 0)

	for n := 3; n <= 7; n++ {
		for k := 1; k <= 3; k++ {
			G := dihedralGroup(n)
			orbits, err := CycleIndex(G, k)
			if err != nil {
				t.Fatal(err)
			}
			asym, err := AsymmetricColorings(G, k)
			if err != nil {
				t.Fatal(err)
			}
			if asym.Sign() < 0 {
				t.Fatalf("negative asymmetric count %v", asym)
			}
			bound := new(big.Int).Mul(orbits, big.NewInt(int64(G.Order())))
			if asym.Cmp(bound) > 0 {
				t.Fatalf("%s(%d) k=%d: %v asymmetric colorings exceeds %v", G.Name, n, k, asym, bound)
			}
			if _, err = AsymmetricOrbits(G, k); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestAsymmetricParallel(t *testing.T) {
	G := dihedralGroup(8)
	seq, err := Counter{}.AsymmetricColorings(context.Background(), G, 3)
	if err != nil {
		t.Fatal(err)
	}
	par, err := Counter{Workers: 4}.AsymmetricColorings(context.Background(), G, 3)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Cmp(par) != 0 {
		t.Fatalf("parallel sum %v differs from sequential sum %v", par, seq)
	}
}

func TestAsymmetricCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Counter{}.AsymmetricColorings(ctx, dihedralGroup(5), 2)
	if errors.Cause(err) != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCountTally(t *testing.T) {
	T := &gopolya.Tally{
		TallyKey: gopolya.TallyKey{Action: "necklace", DomainSize: 6, Colors: 2},
		Group:    cyclicGroup(6),
	}
	if err := DefaultCounter.CountTally(context.Background(), T); err != nil {
		t.Fatal(err)
	}
	if T.Order != 6 || T.Orbits.Int64() != 14 || T.Asymmetric.Int64() != 54 {
		t.Fatalf("got order %d, orbits %v, asymmetric %v", T.Order, T.Orbits, T.Asymmetric)
	}
	if T.AsymmetricOrbits().Int64() != 9 {
		t.Fatalf("expected 9 asymmetric orbits, got %v", T.AsymmetricOrbits())
	}
}

func checkCycleIndex(t *testing.T, G *gopolya.Group, k int, expected int64) {
	t.Helper()
	got, err := CycleIndex(G, k)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(big.NewInt(expected)) != 0 {
		t.Fatalf("%s(%d) k=%d: expected %d orbits, got %v", G.Name, G.DomainSize, k, expected, got)
	}
}

func checkAsymmetric(t *testing.T, G *gopolya.Group, k int, expected int64) {
	t.Helper()
	got, err := AsymmetricColorings(G, k)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(big.NewInt(expected)) != 0 {
		t.Fatalf("%s(%d) k=%d: expected %d asymmetric colorings, got %v", G.Name, G.DomainSize, k, expected, got)
	}
}
