package libpolya

import (
	"encoding/binary"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
)

// Decompose returns the disjoint cycles of p.
//
// Cycles are emitted in order of their smallest element, and each cycle starts at that element
// and follows x -> p[x].  p is not modified, so the result can always be recomputed from p.
func Decompose(p gopolya.Perm) (gopolya.Cycles, error) {
	if err := checkBijection(p); err != nil {
		return nil, err
	}

	n := len(p)
	visited := make([]bool, n)
	cycles := make(gopolya.Cycles, 0, n)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var cycle gopolya.Cycle
		for x := start; !visited[x]; x = p[x] {
			visited[x] = true
			cycle = append(cycle, x)
		}
		cycles = append(cycles, cycle)
	}
	return cycles, nil
}

// MustDecompose is Decompose for permutations known to be valid (e.g. built by a group action).
func MustDecompose(p gopolya.Perm) gopolya.Cycles {
	cycles, err := Decompose(p)
	if err != nil {
		panic(err)
	}
	return cycles
}

// ToPerm returns the array form of c over an n point domain.
func ToPerm(c gopolya.Cycles, n int) (gopolya.Perm, error) {
	if err := checkCycles(c, n); err != nil {
		return nil, err
	}
	p := make(gopolya.Perm, n)
	for _, ci := range c {
		last := len(ci) - 1
		for i, x := range ci {
			if i == last {
				p[x] = ci[0]
			} else {
				p[x] = ci[i+1]
			}
		}
	}
	return p, nil
}

// Compose returns the permutation "a after b", i.e. i -> a[b[i]].
func Compose(a, b gopolya.Perm) gopolya.Perm {
	ab := make(gopolya.Perm, len(b))
	for i, bi := range b {
		ab[i] = a[bi]
	}
	return ab
}

// IdentityPerm returns the identity permutation on n points.
func IdentityPerm(n int) gopolya.Perm {
	p := make(gopolya.Perm, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// AppendPermKey appends a compact binary encoding of p to []out, suitable as a map or tree key.
func AppendPermKey(out []byte, p gopolya.Perm) []byte {
	var scrap [binary.MaxVarintLen64]byte
	for _, pi := range p {
		n := binary.PutUvarint(scrap[:], uint64(pi))
		out = append(out, scrap[:n]...)
	}
	return out
}

func checkBijection(p gopolya.Perm) error {
	n := len(p)
	hit := make([]bool, n)
	for i, pi := range p {
		if pi < 0 || pi >= n || hit[pi] {
			return errors.Wrapf(gopolya.ErrNotBijection, "p[%d] = %d", i, pi)
		}
		hit[pi] = true
	}
	return nil
}

// checkCycles verifies that c partitions exactly {0..n-1}.
func checkCycles(c gopolya.Cycles, n int) error {
	seen := make([]bool, n)
	total := 0
	for _, ci := range c {
		if len(ci) == 0 {
			return errors.Wrap(gopolya.ErrBadCycles, "empty cycle")
		}
		for _, x := range ci {
			if x < 0 || x >= n {
				return errors.Wrapf(gopolya.ErrDomainMismatch, "point %d is outside of the %d point domain", x, n)
			}
			if seen[x] {
				return errors.Wrapf(gopolya.ErrBadCycles, "point %d appears more than once", x)
			}
			seen[x] = true
			total++
		}
	}
	if total != n {
		return errors.Wrapf(gopolya.ErrDomainMismatch, "cycles cover %d of %d points", total, n)
	}
	return nil
}
