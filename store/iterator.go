package store

import (
	"bytes"

	"github.com/google/btree"
)

// SliceIterator walks a pre-sorted slice of models.
type SliceIterator struct {
	data []Model
	pos  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an Iterator over data. data must already be in
// iteration order.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.data)
}

// Next advances the cursor. It panics when the iterator is exhausted.
func (s *SliceIterator) Next() {
	s.current()
	s.pos++
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data = nil
	s.pos = 0
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator is exhausted")
	}
	return s.data[s.pos]
}

// EmptyKVStore holds nothing and drops every write. It is the base layer
// for caches that are never meant to be persisted.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// pending returns the cached items within [start, end), in iteration
// order. Writes made after the call are not seen by the result.
func pending(bt *btree.BTree, start, end []byte, ascending bool) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	if !ascending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// source tells which side the current entry of a cacheIter comes from.
type source int

const (
	exhausted source = iota
	fromCache
	fromParent
	fromBoth
)

// cacheIter merges the pending writes of a cache with the iterator of
// its parent. A cached item shadows the parent entry with the same key,
// deleted items hide it.
type cacheIter struct {
	items     []keyer
	parent    Iterator
	ascending bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(items []keyer, parent Iterator, ascending bool) *cacheIter {
	it := &cacheIter{items: items, parent: parent, ascending: ascending}
	it.skipDeleted()
	return it
}

func (i *cacheIter) Valid() bool {
	return i.source() != exhausted
}

// Next advances the cursor. It panics when the iterator is exhausted.
func (i *cacheIter) Next() {
	i.advance(i.source())
	i.skipDeleted()
}

func (i *cacheIter) Key() []byte {
	switch i.source() {
	case fromCache, fromBoth:
		return i.items[0].Key()
	case fromParent:
		return i.parent.Key()
	default:
		panic("iterator is exhausted")
	}
}

func (i *cacheIter) Value() []byte {
	switch i.source() {
	case fromCache, fromBoth:
		return i.items[0].(setItem).value
	case fromParent:
		return i.parent.Value()
	default:
		panic("iterator is exhausted")
	}
}

func (i *cacheIter) Close() {
	i.parent.Close()
	i.items = nil
}

func (i *cacheIter) source() source {
	cached := len(i.items) > 0
	inParent := i.parent.Valid()
	switch {
	case !cached && !inParent:
		return exhausted
	case !inParent:
		return fromCache
	case !cached:
		return fromParent
	}

	cmp := bytes.Compare(i.items[0].Key(), i.parent.Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return fromCache
	case cmp > 0:
		return fromParent
	default:
		return fromBoth
	}
}

func (i *cacheIter) advance(src source) {
	switch src {
	case fromCache:
		i.items = i.items[1:]
	case fromParent:
		i.parent.Next()
	case fromBoth:
		i.items = i.items[1:]
		i.parent.Next()
	default:
		panic("iterator is exhausted")
	}
}

// skipDeleted moves past every deleted item at the cursor, together with
// the parent entries they hide.
func (i *cacheIter) skipDeleted() {
	for {
		src := i.source()
		if src != fromCache && src != fromBoth {
			return
		}
		if _, ok := i.items[0].(deletedItem); !ok {
			return
		}
		i.advance(src)
	}
}
