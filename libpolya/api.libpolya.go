// Package libpolya counts colorings of a finite domain up to the action of a finite permutation group.
//
// Groups are given as the cycle form of every element (see gopolya.Group).  CycleIndex() returns the number of
// orbits of k-colorings (Burnside's lemma), and AsymmetricColorings() returns the number of k-colorings whose
// stabilizer is trivial, via inclusion-exclusion over every subset of the non-identity elements.
// The latter is exponential in the group order and is intended for small groups.
package libpolya

import (
	"context"
	"math/big"
	"time"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

var (
	LIB_VERSION = "v1.2024.1"
)

// Counter evaluates coloring counts for groups.
//
// The zero value evaluates everything on the calling goroutine.
type Counter struct {
	Workers int // number of goroutines used for the inclusion-exclusion subset sum (<= 1 is sequential)
}

// DefaultCounter is used by the package level CycleIndex and AsymmetricColorings funcs.
var DefaultCounter = Counter{}

// AsymmetricColorings returns the number of k-colorings of G's domain fixed by no non-identity element of G.
func AsymmetricColorings(G *gopolya.Group, k int) (*big.Int, error) {
	return DefaultCounter.AsymmetricColorings(context.Background(), G, k)
}

// AsymmetricOrbits returns AsymmetricColorings(G, k) / |G|, the number of orbits made of asymmetric colorings.
func AsymmetricOrbits(G *gopolya.Group, k int) (*big.Int, error) {
	asym, err := AsymmetricColorings(G, k)
	if err != nil {
		return nil, err
	}
	return exactQuo(asym, G, "asymmetric orbits")
}

// CountTally assigns T.Order, T.Orbits, and T.Asymmetric from T.Group.
func (c Counter) CountTally(ctx context.Context, T *gopolya.Tally) error {
	G := T.Group
	if G == nil {
		return errors.Wrapf(gopolya.ErrEmptyGroup, "%s(%d)", T.Action, T.DomainSize)
	}

	startTime := time.Now()

	orbits, err := CycleIndex(G, T.Colors)
	if err != nil {
		return err
	}
	asym, err := c.AsymmetricColorings(ctx, G, T.Colors)
	if err != nil {
		return err
	}

	T.Order = G.Order()
	T.Orbits = orbits
	T.Asymmetric = asym

	klog.V(1).Infof("counted %s with k=%d in %v", describe(G), T.Colors, time.Since(startTime))
	return nil
}
