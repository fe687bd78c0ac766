package gopolya

import (
	"math/big"
)

const (

	// DefaultColors is the color count k used when none is specified.
	DefaultColors = 2

	// MaxSubsetElements is the most non-identity group elements an inclusion-exclusion sum will enumerate.
	// The sum visits 2^m subsets, so this is far beyond anything that completes in practice.
	MaxSubsetElements = 40
)

// Perm is a permutation of {0, 1, .., n-1} in array form: Perm[i] is the image of i.
type Perm []int

// Cycle is one closed chain of a permutation: each element maps to the next and the last maps to the first.
type Cycle []int

// Cycles is the disjoint-cycle form of a permutation.
// Its cycles together contain every domain element exactly once.
type Cycles []Cycle

// Group is a finite permutation group acting on {0, 1, .., DomainSize-1}.
//
// Elements holds the cycle form of every group element, including the identity.
// A Group is expected to be complete (closed under composition); see libpolya.ValidateGroup.
type Group struct {
	Name       string   // label used in errors and reports
	DomainSize int      // n, the number of points acted on
	Elements   []Cycles // every group element in cycle form
}

// Order returns the number of elements in G.
func (G *Group) Order() int {
	return len(G.Elements)
}

// TallyKey identifies a Tally: which group action, on how many points, with how many colors.
type TallyKey struct {
	Action     string
	DomainSize int
	Colors     int
}

// Tally holds the coloring counts of a group action for a given color count.
type Tally struct {
	TallyKey
	Order      int      // group order |G|
	Orbits     *big.Int // number of colorings up to symmetry
	Asymmetric *big.Int // number of colorings fixed by no non-identity element
	Group      *Group   // group that produced this Tally (not persisted)
}

// TallySource supplies the group acting on a domain of a given size.
type TallySource interface {
	Name() string
	Group(n int) (*Group, error)
}

// TallyAdder accepts Tally instances.
type TallyAdder interface {

	// Tries to add the given Tally.
	// If true is returned, a Tally with the same TallyKey did not exist and was added.
	TryAddTally(T *Tally) bool
}

// OnTallyHit is a channel used to return each Tally meeting a selection.
// Ownership of a Tally also travels through the channel.
type OnTallyHit chan<- *Tally

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog wraps a database of previously computed Tally entries.
type Catalog interface {
	TallyAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// Lookup returns the Tally stored for the given key, if any.
	Lookup(key TallyKey) (*Tally, bool)

	// NumTallies returns the number of Tally entries in this catalog.
	NumTallies() int64

	// Select sends each Tally for the given action (or all actions if action is empty) to onHit, ordered by domain size then colors.
	Select(action string, onHit OnTallyHit)

	Close() error
}

// PrintOpts specifies what is printed for each Tally
type PrintOpts struct {
	Label      string // Prefix label
	Header     bool   // If set, a column header line is printed first
	Order      bool   // If set, the group order is printed
	Asymmetric bool   // If set, the raw asymmetric coloring count is printed (rather than only the asymmetric orbit count)
}

// DefaultPrintOpts prints "n asymmetric_orbits orbits" rows.
var DefaultPrintOpts = PrintOpts{}
