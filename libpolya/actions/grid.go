package actions

import (
	"github.com/2x3systems/gopolya/gopolya"
	"github.com/2x3systems/gopolya/libpolya"
)

// cells is an n x n arrangement of cell indices.
type cells struct {
	n   int
	idx []int
}

func newCells(n int) cells {
	c := cells{
		n:   n,
		idx: make([]int, n*n),
	}
	for i := range c.idx {
		c.idx[i] = i
	}
	return c
}

// rot90 returns c turned a quarter turn counterclockwise.
func (c cells) rot90() cells {
	n := c.n
	out := cells{n: n, idx: make([]int, n*n)}
	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			out.idx[r*n+col] = c.idx[col*n+n-1-r]
		}
	}
	return out
}

// transpose returns c mirrored across its main diagonal.
func (c cells) transpose() cells {
	n := c.n
	out := cells{n: n, idx: make([]int, n*n)}
	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			out.idx[r*n+col] = c.idx[col*n+r]
		}
	}
	return out
}

func dihedralGrid(n int) gopolya.Group {
	G := gopolya.Group{
		DomainSize: n * n,
		Elements:   make([]gopolya.Cycles, 0, 8),
	}

	c := newCells(n)
	for flip := 0; flip < 2; flip++ {
		if flip > 0 {
			c = c.transpose()
		}
		for turn := 0; turn < 4; turn++ {
			c = c.rot90()
			G.Elements = append(G.Elements, libpolya.MustDecompose(c.idx))
		}
	}
	return G
}
