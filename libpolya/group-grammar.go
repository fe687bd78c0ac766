package libpolya

import (
	"strings"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// GroupExpr is a group written in cycle notation, elements separated by ';'.
//
//	e; (0 1 2 3); (0 2)(1 3); (0 3 2 1)
type GroupExpr struct {
	Elements []*ElementExpr `@@ (";" @@)*`
}

// ElementExpr is a single group element: "e" for the identity, or one or more cycles.
// Points not named by any cycle are fixed.
type ElementExpr struct {
	Identity bool         `  @"e"`
	Cycles   []*CycleExpr `| @@+`
}

type CycleExpr struct {
	Points []int `"(" (@Int ","?)* ")"`
}

var parseGroupExpr = participle.MustBuild[GroupExpr]()

// ParseGroup reads a group written in cycle notation acting on n points.
// If n is 0, the domain size is taken to be one more than the largest point named.
//
// ParseGroup only checks that each element is a valid permutation; see ValidateGroup().
func ParseGroup(expr string, n int) (*gopolya.Group, error) {
	Gexpr, err := parseGroupExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(gopolya.ErrBadExpr, "%v", err)
	}

	maxPt := -1
	for _, elem := range Gexpr.Elements {
		for _, cyc := range elem.Cycles {
			for _, x := range cyc.Points {
				if x > maxPt {
					maxPt = x
				}
			}
		}
	}
	if n == 0 {
		n = maxPt + 1
		if n == 0 {
			n = 1
		}
	} else if maxPt >= n {
		return nil, errors.Wrapf(gopolya.ErrBadExpr, "point %d is outside of the %d point domain", maxPt, n)
	}

	G := &gopolya.Group{
		Name:       "expr",
		DomainSize: n,
		Elements:   make([]gopolya.Cycles, 0, len(Gexpr.Elements)),
	}

	for ei, elem := range Gexpr.Elements {
		g, err := elem.toCycles(n)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", ei+1)
		}
		G.Elements = append(G.Elements, g)
	}
	return G, nil
}

func (elem *ElementExpr) toCycles(n int) (gopolya.Cycles, error) {
	seen := make([]bool, n)
	g := make(gopolya.Cycles, 0, n)

	for _, cyc := range elem.Cycles {
		if len(cyc.Points) == 0 {
			continue
		}
		for _, x := range cyc.Points {
			if seen[x] {
				return nil, errors.Wrapf(gopolya.ErrBadExpr, "point %d appears more than once", x)
			}
			seen[x] = true
		}
		g = append(g, append(gopolya.Cycle(nil), cyc.Points...))
	}

	// Unnamed points are fixed
	for x, named := range seen {
		if !named {
			g = append(g, gopolya.Cycle{x})
		}
	}
	return g, nil
}

// FormatGroup renders G in the notation read by ParseGroup().
func FormatGroup(G *gopolya.Group) string {
	b := strings.Builder{}
	for i, g := range G.Elements {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(g.String())
	}
	return b.String()
}
