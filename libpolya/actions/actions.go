// Package actions provides the symmetry groups of a few familiar shapes, each acting on a domain of n points.
package actions

import (
	"sort"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/2x3systems/gopolya/libpolya"
	"github.com/pkg/errors"
)

// Action builds the symmetry group of a shape of size n.
//
// Every Action is also a gopolya.TallySource.
type Action interface {
	gopolya.TallySource

	// MinSize returns the smallest n this Action accepts.
	MinSize() int
}

type action struct {
	name    string
	pyName  string
	minSize int
	build   func(n int) gopolya.Group
}

func (act *action) Name() string {
	return act.name
}

func (act *action) MinSize() int {
	return act.minSize
}

func (act *action) Group(n int) (*gopolya.Group, error) {
	if n < act.minSize {
		return nil, errors.Wrapf(gopolya.ErrBadDomainSize, "%s requires n >= %d (got %d)", act.name, act.minSize, n)
	}
	G := act.build(n)
	G.Name = act.name
	return &G, nil
}

var registry = map[string]*action{}

func register(act *action) {
	registry[act.name] = act
	libpolya.RegisterPyAction(act.pyName, act.Group)
}

func init() {
	register(&action{
		name:    "grid",
		pyName:  "dihedral_grid",
		minSize: 2,
		build:   dihedralGrid,
	})
	register(&action{
		name:    "bracelet",
		pyName:  "dihedral_bracelet",
		minSize: 3,
		build:   dihedralBracelet,
	})
	register(&action{
		name:    "necklace",
		pyName:  "cyclic_necklace",
		minSize: 1,
		build:   cyclicNecklace,
	})
}

// Lookup returns the Action with the given name.
func Lookup(name string) (Action, error) {
	act := registry[name]
	if act == nil {
		return nil, errors.Wrapf(gopolya.ErrUnknownAction, "%q (known: %v)", name, Names())
	}
	return act, nil
}

// Names returns the name of every registered Action, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DihedralGrid returns the 8 symmetries of an n x n grid acting on its n*n cells, numbered row by row.
func DihedralGrid(n int) (*gopolya.Group, error) {
	return registry["grid"].Group(n)
}

// DihedralBracelet returns the 2n rotations and reflections of a ring of n beads.
func DihedralBracelet(n int) (*gopolya.Group, error) {
	return registry["bracelet"].Group(n)
}

// CyclicNecklace returns the n rotations of a ring of n beads.
func CyclicNecklace(n int) (*gopolya.Group, error) {
	return registry["necklace"].Group(n)
}
