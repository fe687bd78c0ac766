package gopolya

import (
	"math/big"
	"strconv"
	"strings"
	"sync"
)

// NumPoints returns the total number of points over all cycles.
func (c Cycles) NumPoints() int {
	n := 0
	for _, ci := range c {
		n += len(ci)
	}
	return n
}

// IsIdentity returns true if c fixes every point of an n point domain, i.e. c is n singleton cycles.
func (c Cycles) IsIdentity(n int) bool {
	if len(c) != n {
		return false
	}
	for _, ci := range c {
		if len(ci) != 1 {
			return false
		}
	}
	return true
}

// String renders c in cycle notation, e.g. "(0 1 2)(3 4)".  Fixed points are omitted and the identity renders as "e".
func (c Cycles) String() string {
	b := strings.Builder{}
	for _, ci := range c {
		if len(ci) < 2 {
			continue
		}
		b.WriteByte('(')
		for i, x := range ci {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(x))
		}
		b.WriteByte(')')
	}
	if b.Len() == 0 {
		return "e"
	}
	return b.String()
}

// AsymmetricOrbits returns the number of orbits made up entirely of asymmetric colorings.
// Every such orbit has exactly Order members.
func (T *Tally) AsymmetricOrbits() *big.Int {
	if T.Asymmetric == nil || T.Order <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Quo(T.Asymmetric, big.NewInt(int64(T.Order)))
}

// SymmetricOrbits returns the number of orbits whose colorings have a non-trivial stabilizer.
func (T *Tally) SymmetricOrbits() *big.Int {
	if T.Orbits == nil {
		return new(big.Int)
	}
	return new(big.Int).Sub(T.Orbits, T.AsymmetricOrbits())
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	closeOnce    sync.Once
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)

		ctx.mu.Lock()
		open := make([]Catalog, 0, len(ctx.openCatalogs))
		for cat := range ctx.openCatalogs {
			open = append(open, cat)
		}
		ctx.mu.Unlock()

		// Catalog.Close() detaches itself, so don't hold the lock
		for _, cat := range open {
			go cat.Close()
		}
	})
}
