package libpolya

import (
	"context"
	"math/big"
	"math/bits"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

const (
	// Subset sums smaller than this are not worth splitting across goroutines.
	minParallelSubsets = 1 << 12

	// ctx is polled every ctxPollMask+1 subsets
	ctxPollMask = 1<<14 - 1
)

// AsymmetricColorings returns the number of k-colorings of G's domain fixed by no non-identity element of G.
//
// For every subset T of the non-identity elements (including the empty set), the elements of T are merged into a
// single partition whose k^blocks colorings are exactly those fixed by all of T; these counts are summed with sign (-1)^|T|.
func (c Counter) AsymmetricColorings(ctx context.Context, G *gopolya.Group, k int) (*big.Int, error) {
	if err := checkColors(k); err != nil {
		return nil, err
	}
	if err := ValidateShape(G); err != nil {
		return nil, errors.Wrap(err, "asymmetric colorings")
	}
	id, err := IdentityIndex(G)
	if err != nil {
		return nil, errors.Wrap(err, "asymmetric colorings")
	}

	elems := make([]gopolya.Cycles, 0, len(G.Elements)-1)
	for i, g := range G.Elements {
		if i != id {
			elems = append(elems, g)
		}
	}

	m := len(elems)
	if m > gopolya.MaxSubsetElements {
		return nil, errors.Wrapf(gopolya.ErrGroupTooLarge, "%s has %d non-identity elements (max %d)", describe(G), m, gopolya.MaxSubsetElements)
	}
	numSubsets := uint64(1) << m

	var tally []int64
	if c.Workers > 1 && numSubsets >= minParallelSubsets {
		tally, err = c.sumSubsetsParallel(ctx, elems, G.DomainSize, numSubsets)
	} else {
		tally, err = sumSubsets(ctx, elems, G.DomainSize, 0, numSubsets)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "asymmetric colorings of %s", describe(G))
	}

	pow := newPowers(k, G.DomainSize)
	total := new(big.Int)
	term := new(big.Int)
	for blocks, count := range tally {
		if count != 0 {
			term.Mul(big.NewInt(count), pow[blocks])
			total.Add(total, term)
		}
	}
	return total, nil
}

// sumSubsets visits each subset mask in [lo, hi) and returns, for each block count b, the signed number of subsets whose merged partition has b blocks.
func sumSubsets(ctx context.Context, elems []gopolya.Cycles, n int, lo, hi uint64) ([]int64, error) {
	tally := make([]int64, n+1)
	s := NewOrbits(n)

	for mask := lo; mask < hi; mask++ {
		if mask&ctxPollMask == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		s.Reset()
		sign := int64(1)
		for rest := mask; rest != 0; rest &= rest - 1 {
			s.Merge(elems[bits.TrailingZeros64(rest)])
			sign = -sign
		}
		tally[s.NumBlocks()] += sign
	}
	return tally, nil
}

// sumSubsetsParallel splits the mask range into contiguous chunks, each summed by its own goroutine with its own partition.
func (c Counter) sumSubsetsParallel(ctx context.Context, elems []gopolya.Cycles, n int, numSubsets uint64) ([]int64, error) {
	numChunks := uint64(4 * c.Workers)
	chunkSz := (numSubsets + numChunks - 1) / numChunks
	partials := make([][]int64, numChunks)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(c.Workers)

	for ci := uint64(0); ci < numChunks; ci++ {
		ci := ci
		lo := ci * chunkSz
		hi := lo + chunkSz
		if hi > numSubsets {
			hi = numSubsets
		}
		if lo >= hi {
			break
		}
		grp.Go(func() error {
			tally, err := sumSubsets(grpCtx, elems, n, lo, hi)
			if err != nil {
				return err
			}
			partials[ci] = tally
			klog.V(3).Infof("subset chunk %d/%d done: masks [%d, %d)", ci+1, numChunks, lo, hi)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	tally := make([]int64, n+1)
	for _, partial := range partials {
		for b, count := range partial {
			tally[b] += count
		}
	}
	return tally, nil
}
