package libpolya

import (
	"math/big"
	"sort"

	"github.com/2x3systems/gopolya/gopolya"
)

// Orbits is a union-find partition of {0..n-1}: Orbits[x] is the parent of x, and x is a root when Orbits[x] == x.
//
// After Merge() returns, every element points directly at the root of its block.
type Orbits []int

// NewOrbits returns the finest partition of n points (each point its own block).
func NewOrbits(n int) Orbits {
	return Orbits(make([]int, n)).Reset()
}

// Reset reassigns s to the finest partition and returns it.
func (s Orbits) Reset() Orbits {
	for x := range s {
		s[x] = x
	}
	return s
}

// Find returns the root of x's block, compressing the path walked.
func (s Orbits) Find(x int) int {
	root := x
	for s[root] != root {
		root = s[root]
	}
	for s[x] != root {
		next := s[x]
		s[x] = root
		x = next
	}
	return root
}

// Union joins the blocks of x and y and returns the root of the joined block (x's root).
func (s Orbits) Union(x, y int) int {
	x = s.Find(x)
	s[s.Find(y)] = x
	return x
}

// Merge joins every cycle of c into a single block, then points each element directly at its root.
//
// Merging several permutations in any order yields the orbits of the group they generate.
func (s Orbits) Merge(c gopolya.Cycles) Orbits {
	for _, ci := range c {
		if len(ci) < 2 {
			continue
		}
		root := ci[0]
		for _, y := range ci[1:] {
			root = s.Union(root, y)
		}
	}
	s.flatten()
	return s
}

func (s Orbits) flatten() {
	for x := range s {
		s[x] = s.Find(x)
	}
}

// NumBlocks returns the number of blocks in s.
func (s Orbits) NumBlocks() int {
	count := 0
	for x, px := range s {
		if x == px {
			count++
		}
	}
	return count
}

// Blocks returns the members of each block, each block sorted and blocks ordered by their smallest member.
func (s Orbits) Blocks() [][]int {
	s.flatten()
	index := make(map[int]int, len(s))
	var blocks [][]int
	for x, root := range s {
		bi, exists := index[root]
		if !exists {
			bi = len(blocks)
			index[root] = bi
			blocks = append(blocks, nil)
		}
		blocks[bi] = append(blocks[bi], x)
	}
	return blocks
}

// BlockSizes returns the size of each block in ascending order.
func (s Orbits) BlockSizes() []int {
	sizes := make(map[int]int, len(s))
	for x := range s {
		sizes[s.Find(x)]++
	}
	out := make([]int, 0, len(sizes))
	for _, sz := range sizes {
		out = append(out, sz)
	}
	sort.Ints(out)
	return out
}

// Score returns the cycle index monomial of s with every variable set to k, i.e. k^NumBlocks().
func Score(s Orbits, k int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(k)), big.NewInt(int64(s.NumBlocks())), nil)
}

// powers is a table of k^0 .. k^n
type powers []*big.Int

func newPowers(k, n int) powers {
	pow := make(powers, n+1)
	bigK := big.NewInt(int64(k))
	pow[0] = big.NewInt(1)
	for i := 1; i <= n; i++ {
		pow[i] = new(big.Int).Mul(pow[i-1], bigK)
	}
	return pow
}
