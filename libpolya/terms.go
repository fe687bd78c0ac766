package libpolya

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/2x3systems/gopolya/gopolya"
)

// Power is the factor x_Length^Exp of a cycle index monomial: Exp cycles of length Length.
type Power struct {
	Length int
	Exp    int
}

// Term is one monomial of a cycle index: Coeff elements share the cycle type given by Powers.
type Term struct {
	Coeff  int
	Powers []Power // ascending by Length
}

// NumCycles returns the total number of cycles of this term's cycle type.
func (term Term) NumCycles() int {
	count := 0
	for _, pi := range term.Powers {
		count += pi.Exp
	}
	return count
}

// Evaluate returns the monomial (without its coefficient) with every variable set to k.
func (term Term) Evaluate(k int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(k)), big.NewInt(int64(term.NumCycles())), nil)
}

// String renders the monomial, e.g. "x1^2 x2^3".
func (term Term) String() string {
	b := strings.Builder{}
	for i, pi := range term.Powers {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "x%d", pi.Length)
		if pi.Exp > 1 {
			fmt.Fprintf(&b, "^%d", pi.Exp)
		}
	}
	return b.String()
}

// CycleIndexTerms returns the cycle index of G as monomials grouped by cycle type.
//
// Terms are ordered by descending cycle count, so the identity's x1^n term is first.
func CycleIndexTerms(G *gopolya.Group) ([]Term, error) {
	if err := ValidateShape(G); err != nil {
		return nil, err
	}

	byType := make(map[string]int)
	var terms []Term

	s := NewOrbits(G.DomainSize)
	for _, g := range G.Elements {
		sizes := s.Reset().Merge(g).BlockSizes()

		var powers []Power
		for _, sz := range sizes {
			if n := len(powers); n > 0 && powers[n-1].Length == sz {
				powers[n-1].Exp++
			} else {
				powers = append(powers, Power{Length: sz, Exp: 1})
			}
		}

		typeKey := Term{Powers: powers}.String()
		if ti, exists := byType[typeKey]; exists {
			terms[ti].Coeff++
		} else {
			byType[typeKey] = len(terms)
			terms = append(terms, Term{Coeff: 1, Powers: powers})
		}
	}

	sort.SliceStable(terms, func(i, j int) bool {
		ci, cj := terms[i].NumCycles(), terms[j].NumCycles()
		if ci != cj {
			return ci > cj
		}
		return terms[i].String() < terms[j].String()
	})
	return terms, nil
}

// FormatCycleIndex renders terms as a cycle index polynomial, e.g. "1/4 (x1^4 + x2^2 + 2 x4)".
func FormatCycleIndex(terms []Term, order int) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "1/%d (", order)
	for i, term := range terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if term.Coeff != 1 {
			fmt.Fprintf(&b, "%d ", term.Coeff)
		}
		b.WriteString(term.String())
	}
	b.WriteByte(')')
	return b.String()
}
