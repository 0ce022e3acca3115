package bazaar

// ReadOnlyKVStore reads ordered binary keys. A missing key reads as a nil
// value.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending order. A nil bound is
	// open. The domain must not be written while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write half of a KVStore.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is what every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator is a cursor over a key range.
//
//   it, err := db.Iterator(start, end)
//   if err != nil { ... }
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     use(it.Key(), it.Value())
//   }
//
// Next, Key and Value panic once Valid reports false. The returned slices
// must not be modified.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can open a scratch pad on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of a parent store. Reads see the
// buffered writes. Write flushes them to the parent, Discard drops them.
// A cache wrap can itself be wrapped, which gives nested savepoints.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is a versioned store persisting one version per block.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)

	// CacheWrap opens a scratch pad on the working state. Writing it
	// makes the changes part of the next Commit.
	CacheWrap() KVCacheWrap

	// Commit saves the working state as the next version.
	Commit() (CommitID, error)

	// LoadLatestVersion resets the working state to the newest version
	// on disk.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and state hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
