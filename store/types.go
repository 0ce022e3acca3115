package store

import "github.com/iov-one/bazaar"

// Aliases so store implementations do not import the root package for
// every signature.
type (
	ReadOnlyKVStore  = bazaar.ReadOnlyKVStore
	SetDeleter       = bazaar.SetDeleter
	KVStore          = bazaar.KVStore
	Iterator         = bazaar.Iterator
	CacheableKVStore = bazaar.CacheableKVStore
	KVCacheWrap      = bazaar.KVCacheWrap
	CommitKVStore    = bazaar.CommitKVStore
	CommitID         = bazaar.CommitID
)

// Batch collects writes that are applied to the underlying store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Model is a key/value pair, as returned by iterators.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
