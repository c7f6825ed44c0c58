package iavl

import (
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes held in memory by the iavl
// tree itself.
const cacheSize = 10000

// CommitStore manages a iavl committed state.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing via leveldb in
// the given directory.
func NewCommitStore(dir, name string) CommitStore {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		panic(errors.Wrap(err, "open database"))
	}
	return CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
	}
}

// MockCommitStore returns a db backed by memory, for testing.
func MockCommitStore() CommitStore {
	return CommitStore{
		tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize),
	}
}

// Get returns the value stored under the key in the working tree.
// Returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) []byte {
	_, value := s.tree.Get(key)
	return value
}

// Has checks for existence of the key in the working tree.
// Panics on nil key.
func (s CommitStore) Has(key []byte) bool {
	return s.tree.Has(key)
}

// Set writes to the working tree. Writes become permanent on Commit.
func (s CommitStore) Set(key, value []byte) {
	s.tree.Set(key, value)
}

// Delete removes from the working tree. Removals become permanent on
// Commit.
func (s CommitStore) Delete(key []byte) {
	s.tree.Remove(key)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator
// exists over it.
func (s CommitStore) Iterator(start, end []byte) store.Iterator {
	return s.materialize(start, end, true)
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
// CONTRACT: No writes may happen within a domain while an iterator
// exists over it.
func (s CommitStore) ReverseIterator(start, end []byte) store.Iterator {
	return s.materialize(start, end, false)
}

func (s CommitStore) materialize(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	s.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}

// NewBatch returns a batch that can write to the working tree later.
func (s CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap gives us a savepoint to perform transactions on, flushed
// to the working tree on Write and dropped on Discard.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit saves the next version to disk, and returns info on it.
func (s CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(errors.Wrap(err, "save version"))
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}
}

// LoadLatestVersion loads the latest persisted version. If there was
// a crash during the last commit, it is guaranteed to return a stable
// state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(err, "load latest version")
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}
