package catalog

import (
	"math/big"
	"runtime"
	"sync"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/dgraph-io/badger/v4"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState

	kTallyPrefix, Action, NUL, DomainSize (uint32 BE), Colors (uint32 BE)
		=> Order (varint), Orbits (bytes), Asymmetric (bytes)

Since DomainSize and Colors are big-endian, a prefix scan over a single action visits its tallies
in ascending domain size.  Counts are stored as the big-endian bytes of their (non-negative) magnitude.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kTallyPrefix = byte(0x01)

	kMajorVers = 2024
	kMinorVers = 1
)

type catalogState struct {
	MajorVers  uint64
	MinorVers  uint64
	NumTallies uint64
}

func (state *catalogState) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 16))
	for _, x := range []uint64{state.MajorVers, state.MinorVers, state.NumTallies} {
		if err := buf.EncodeVarint(x); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (state *catalogState) Unmarshal(in []byte) error {
	buf := proto.NewBuffer(in)
	for _, x := range []*uint64{&state.MajorVers, &state.MinorVers, &state.NumTallies} {
		var err error
		if *x, err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(gopolya.ErrUnmarshal, "catalog state")
		}
	}
	return nil
}

// catalog is a db wrapper for a catalog of tallies
type catalog struct {
	ctx        gopolya.CatalogContext
	readOnly   bool
	mu         sync.Mutex // guards state and stateDirty
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName, or an in-memory catalog if no path is given.
//
// The returned Catalog is attached to ctx until it is closed.
func OpenCatalog(ctx gopolya.CatalogContext, opts gopolya.CatalogOpts) (gopolya.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gopolya.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(gopolya.ErrCatalogVersion, "found v%d.%d, expected v%d.%d", cat.state.MajorVers, cat.state.MinorVers, kMajorVers, kMinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(1).Infof("opened catalog %q with %d tallies", opts.DbPathName, cat.state.NumTallies)
	return cat, nil
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
	return err
}

func (cat *catalog) flushState() {
	if cat.stateDirty {
		err := cat.db.Update(func(txn *badger.Txn) error {
			stateBuf, err := cat.state.Marshal()
			if err != nil {
				return err
			}
			return txn.Set(gCatalogStateKey, stateBuf)
		})
		if err != nil {
			panic(err)
		}
		cat.stateDirty = false
	}
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}

	cat.flushState()
	err := cat.db.Close()
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumTallies() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumTallies)
}

func formTallyKey(out []byte, key gopolya.TallyKey) []byte {
	out = append(out, kTallyPrefix)
	return key.AppendKey(out)
}

func marshalEntry(T *gopolya.Tally) ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 64))
	err := buf.EncodeVarint(uint64(T.Order))
	if err == nil {
		err = buf.EncodeRawBytes(T.Orbits.Bytes())
	}
	if err == nil {
		err = buf.EncodeRawBytes(T.Asymmetric.Bytes())
	}
	return buf.Bytes(), err
}

func unmarshalEntry(val []byte, T *gopolya.Tally) error {
	buf := proto.NewBuffer(val)
	order, err := buf.DecodeVarint()
	if err != nil {
		return errors.Wrap(gopolya.ErrUnmarshal, "tally order")
	}
	orbits, err := buf.DecodeRawBytes(false)
	if err != nil {
		return errors.Wrap(gopolya.ErrUnmarshal, "tally orbits")
	}
	asym, err := buf.DecodeRawBytes(false)
	if err != nil {
		return errors.Wrap(gopolya.ErrUnmarshal, "tally asymmetric")
	}
	T.Order = int(order)
	T.Orbits = new(big.Int).SetBytes(orbits)
	T.Asymmetric = new(big.Int).SetBytes(asym)
	return nil
}

func (cat *catalog) Lookup(key gopolya.TallyKey) (*gopolya.Tally, bool) {
	var keyBuf [128]byte
	dbKey := formTallyKey(keyBuf[:0], key)

	T := &gopolya.Tally{
		TallyKey: key,
	}
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return unmarshalEntry(val, T)
			})
		}
		return err
	})

	if err == badger.ErrKeyNotFound {
		klog.V(2).Infof("catalog miss: %s(%d) k=%d", key.Action, key.DomainSize, key.Colors)
		return nil, false
	}
	if err != nil {
		klog.Warningf("catalog lookup %s(%d) k=%d failed: %v", key.Action, key.DomainSize, key.Colors, err)
		return nil, false
	}
	klog.V(2).Infof("catalog hit: %s(%d) k=%d", key.Action, key.DomainSize, key.Colors)
	return T, true
}

// TryAddTally adds the given Tally if no Tally with the same key is present.
//
// Uncounted tallies (nil Orbits or Asymmetric) are never added.
func (cat *catalog) TryAddTally(T *gopolya.Tally) bool {
	if cat.readOnly || T.Orbits == nil || T.Asymmetric == nil {
		return false
	}

	// Alloc since we can't use the stack for commit bufs
	dbKey := formTallyKey(make([]byte, 0, len(T.Action)+gopolya.TallyKeySz+2), T.TallyKey)
	val, err := marshalEntry(T)
	if err != nil {
		panic(err)
	}

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err = txn.Get(dbKey)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		panic(err)
	}

	err = txn.Set(dbKey, val)
	if err == nil {
		err = txn.Commit()
	}
	if err != nil {
		panic(err)
	}

	cat.mu.Lock()
	cat.state.NumTallies++
	cat.stateDirty = true
	cat.mu.Unlock()

	return true
}

// Select sends each Tally for the given action (or all actions if action is empty) to onHit.
//
// Select returns once all hits have been sent; the caller is responsible for closing onHit.
func (cat *catalog) Select(action string, onHit gopolya.OnTallyHit) {
	prefix := []byte{kTallyPrefix}
	if len(action) > 0 {
		prefix = gopolya.TallyKey{Action: action}.AppendActionPrefix(prefix)
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         prefix,
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()

		T := &gopolya.Tally{}
		err := T.InitFromKey(item.Key()[1:])
		if err == nil {
			err = item.Value(func(val []byte) error {
				return unmarshalEntry(val, T)
			})
		}
		if err != nil {
			panic(err)
		}
		onHit <- T
	}
}
