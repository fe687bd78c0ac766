package actions

import (
	"github.com/2x3systems/gopolya/gopolya"
	"github.com/2x3systems/gopolya/libpolya"
)

// rotation i sends bead j to bead i+j
func appendRotations(G *gopolya.Group, n int) {
	for i := 0; i < n; i++ {
		p := make(gopolya.Perm, n)
		for j := range p {
			p[j] = (i + j) % n
		}
		G.Elements = append(G.Elements, libpolya.MustDecompose(p))
	}
}

// reflection i sends bead j to bead i-1-j
func appendReflections(G *gopolya.Group, n int) {
	for i := 0; i < n; i++ {
		p := make(gopolya.Perm, n)
		for j := range p {
			p[j] = (i + n - 1 - j) % n
		}
		G.Elements = append(G.Elements, libpolya.MustDecompose(p))
	}
}

func cyclicNecklace(n int) gopolya.Group {
	G := gopolya.Group{
		DomainSize: n,
		Elements:   make([]gopolya.Cycles, 0, n),
	}
	appendRotations(&G, n)
	return G
}

func dihedralBracelet(n int) gopolya.Group {
	G := gopolya.Group{
		DomainSize: n,
		Elements:   make([]gopolya.Cycles, 0, 2*n),
	}
	appendRotations(&G, n)
	appendReflections(&G, n)
	return G
}
