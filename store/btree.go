package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/bazaar/errors"
)

// btreeDegree is the degree of every cache tree.
const btreeDegree = 2

// BTreeCacheable lets any KVStore be cache-wrapped. Writes land in a btree
// and reach the store only when the cache is written.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore), nil)
}

// MemStore returns a store without persistence, meant for tests.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap is a savepoint over a store: reads see the pending
// writes first, and Write pushes them down through the batch.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap caches writes meant for kv. All writes go through
// batch, kv is only ever read. free may be nil. Pass the list of a parent
// cache to share its nodes.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap nests another savepoint on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), b.free)
}

// Write applies the pending writes to the parent and clears the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending writes.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
	if nb, ok := b.batch.(*NonAtomicBatch); ok {
		nb.ops = nil
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return b.batch.Delete(key)
}

// lookup returns the cached state of key. found is false when the cache
// knows nothing about the key and the parent must be asked.
func (b BTreeCacheWrap) lookup(key []byte) (value []byte, exists, found bool, err error) {
	switch item := b.bt.Get(bkey{key}).(type) {
	case nil:
		return nil, false, false, nil
	case setItem:
		return item.value, true, true, nil
	case deletedItem:
		return nil, false, true, nil
	default:
		return nil, false, false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
	}
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	value, _, found, err := b.lookup(key)
	if err != nil || found {
		return value, err
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	_, exists, found, err := b.lookup(key)
	if err != nil || found {
		return exists, err
	}
	return b.back.Has(key)
}

// Iterator merges the cache with the parent, in ascending key order.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parentIter, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIter(pending(b.bt, start, end, true), parentIter, true), nil
}

// ReverseIterator merges the cache with the parent, in descending key order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parentIter, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIter(pending(b.bt, start, end, false), parentIter, false), nil
}

// keyer is implemented by every item stored in the cache tree.
type keyer interface {
	Key() []byte
}

// bkey orders items by key. It is used for lookups and embedded in the
// stored items.
type bkey struct {
	key []byte
}

var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

func (k bkey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) < 0
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
