package libpolya

import (
	"math/big"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
)

// BurnsideSum returns the sum over g in G of k^(number of cycles of g), i.e. the number of (g, coloring) pairs where g fixes the coloring.
//
// For a valid group this is always a multiple of |G|.
func BurnsideSum(G *gopolya.Group, k int) (*big.Int, error) {
	if err := checkColors(k); err != nil {
		return nil, err
	}
	if err := ValidateShape(G); err != nil {
		return nil, err
	}

	pow := newPowers(k, G.DomainSize)
	s := NewOrbits(G.DomainSize)
	sum := new(big.Int)
	for _, g := range G.Elements {
		blocks := s.Reset().Merge(g).NumBlocks()
		sum.Add(sum, pow[blocks])
	}
	return sum, nil
}

// CycleIndex returns the number of k-colorings of G's domain up to the action of G (Burnside's lemma).
//
// If the Burnside sum is not an exact multiple of |G|, G is not a group and ErrInexactBurnside is returned.
func CycleIndex(G *gopolya.Group, k int) (*big.Int, error) {
	sum, err := BurnsideSum(G, k)
	if err != nil {
		return nil, errors.Wrap(err, "cycle index")
	}
	return exactQuo(sum, G, "cycle index")
}

func exactQuo(x *big.Int, G *gopolya.Group, op string) (*big.Int, error) {
	order := big.NewInt(int64(G.Order()))
	q, r := new(big.Int).QuoRem(x, order, new(big.Int))
	if r.Sign() != 0 {
		return nil, errors.Wrapf(gopolya.ErrInexactBurnside, "%s of %s: %v mod %v = %v", op, describe(G), x, order, r)
	}
	return q, nil
}

func checkColors(k int) error {
	if k < 1 {
		return errors.Wrapf(gopolya.ErrBadColorCount, "k = %d", k)
	}
	return nil
}
