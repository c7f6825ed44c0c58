package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free nodes in the
	// btree.
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a
// KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

//------------------------------------------------------------
// Actual CacheWrap implementation

// BTreeCacheWrap places a btree cache over a KVStore.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
// Use ReadOnlyKVStore to emphasize that all writes must go through the
// Batch.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
// Don't change horses in mid-stream.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to our
// cachewrap.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write syncs with the underlying store and then cleans up.
func (b BTreeCacheWrap) Write() {
	b.batch.Write()
	b.Discard()
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
}

// Set writes to the BTree and to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	b.batch.Set(key, value)
}

// Delete deletes from the BTree and from the batch.
func (b BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	b.batch.Delete(key)
}

// Get reads from the btree if there, else the backing store.
func (b BTreeCacheWrap) Get(key []byte) []byte {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value
		case deletedItem:
			return nil
		default:
			panic("unknown item in btree")
		}
	}
	return b.back.Get(key)
}

// Has reads from the btree if there, else the backing store.
func (b BTreeCacheWrap) Has(key []byte) bool {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true
		case deletedItem:
			return false
		default:
			panic("unknown item in btree")
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines results from the btree and the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	parent := b.back.Iterator(start, end)
	defer parent.Close()
	return NewSliceIterator(b.merge(parent, start, end, false))
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from the btree and the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	parent := b.back.ReverseIterator(start, end)
	defer parent.Close()
	return NewSliceIterator(b.merge(parent, start, end, true))
}

// merge combines the backing store data in given range with the
// overlay of uncommitted modifications. The view is materialized
// upfront, which respects the iterator contract of not writing to a
// domain while iterating over it.
func (b BTreeCacheWrap) merge(parent Iterator, start, end []byte, reverse bool) []Model {
	var ours []Op
	insert := func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			ours = append(ours, SetOp(t.key, t.value))
		case deletedItem:
			ours = append(ours, DelOp(t.key))
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(insert)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	if reverse {
		for i, j := 0, len(ours)-1; i < j; i, j = i+1, j-1 {
			ours[i], ours[j] = ours[j], ours[i]
		}
	}

	var theirs []Model
	for ; parent.Valid(); parent.Next() {
		theirs = append(theirs, Model{Key: parent.Key(), Value: parent.Value()})
	}

	// after determines iteration order between two keys
	after := func(a, b []byte) bool {
		if reverse {
			return bytes.Compare(a, b) < 0
		}
		return bytes.Compare(a, b) > 0
	}

	res := make([]Model, 0, len(ours)+len(theirs))
	for len(ours) > 0 || len(theirs) > 0 {
		switch {
		case len(ours) == 0:
			res = append(res, theirs[0])
			theirs = theirs[1:]
		case len(theirs) == 0 || after(theirs[0].Key, ours[0].key):
			if ours[0].IsSetOp() {
				res = append(res, Model{Key: ours[0].key, Value: ours[0].value})
			}
			ours = ours[1:]
		case bytes.Equal(ours[0].key, theirs[0].Key):
			// overlay shadows the backing store
			if ours[0].IsSetOp() {
				res = append(res, Model{Key: ours[0].key, Value: ours[0].value})
			}
			ours = ours[1:]
			theirs = theirs[1:]
		default:
			res = append(res, theirs[0])
			theirs = theirs[1:]
		}
	}
	return res
}

//------------------------------------------------------------
// Items to write to the btree

// we enforce all data in our btree implements keyer so we can compare
// nicely.
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item and may be used for queries or
// embedded in data to store.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff the second argument is greater than the first.
//
// Panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
