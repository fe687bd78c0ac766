package libpolya

import (
	"fmt"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// ValidateShape checks that G is non-empty and that every element is a valid cycle decomposition of G's domain.
//
// This is the check every counting operation performs.  It does not check that G is actually a group.
func ValidateShape(G *gopolya.Group) error {
	if G == nil || len(G.Elements) == 0 {
		return gopolya.ErrEmptyGroup
	}
	if G.DomainSize < 1 {
		return errors.Wrapf(gopolya.ErrBadDomainSize, "%s", describe(G))
	}
	for i, g := range G.Elements {
		if err := checkCycles(g, G.DomainSize); err != nil {
			return errors.Wrapf(err, "%s: element %d", describe(G), i)
		}
	}
	return nil
}

// IdentityIndex returns the index of G's identity element.
// An error is returned if G contains no identity or more than one.
func IdentityIndex(G *gopolya.Group) (int, error) {
	idx := -1
	for i, g := range G.Elements {
		if g.IsIdentity(G.DomainSize) {
			if idx >= 0 {
				return -1, errors.Wrapf(gopolya.ErrMissingIdentity, "%s: elements %d and %d are both the identity", describe(G), idx, i)
			}
			idx = i
		}
	}
	if idx < 0 {
		return -1, errors.Wrapf(gopolya.ErrMissingIdentity, "%s", describe(G))
	}
	return idx, nil
}

// ValidateGroup checks that G is a valid finite permutation group: well formed elements, exactly one identity,
// no duplicate elements, and closure under composition.
//
// Closure is checked against every pair of elements, so this is O(|G|^2 n).
func ValidateGroup(G *gopolya.Group) error {
	if err := ValidateShape(G); err != nil {
		return err
	}
	if _, err := IdentityIndex(G); err != nil {
		return err
	}

	n := G.DomainSize
	perms := make([]gopolya.Perm, len(G.Elements))
	index := redblacktree.NewWithStringComparator()

	var keyBuf [256]byte
	for i, g := range G.Elements {
		p, err := ToPerm(g, n)
		if err != nil {
			return errors.Wrapf(err, "%s: element %d", describe(G), i)
		}
		key := string(AppendPermKey(keyBuf[:0], p))
		if j, exists := index.Get(key); exists {
			return errors.Wrapf(gopolya.ErrDuplicateElement, "%s: elements %d and %d are both %v", describe(G), j, i, g)
		}
		index.Put(key, i)
		perms[i] = p
	}

	for i, a := range perms {
		for j, b := range perms {
			ab := Compose(a, b)
			key := string(AppendPermKey(keyBuf[:0], ab))
			if _, exists := index.Get(key); !exists {
				return errors.Wrapf(gopolya.ErrNotClosed, "%s: element %d after element %d is not in the group", describe(G), i, j)
			}
		}
	}

	klog.V(2).Infof("validated %s", describe(G))
	return nil
}

func describe(G *gopolya.Group) string {
	name := G.Name
	if name == "" {
		name = "group"
	}
	return fmt.Sprintf("%s (order %d, n=%d)", name, len(G.Elements), G.DomainSize)
}
