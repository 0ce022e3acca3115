package app

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// CommitStore owns the versioned store of a Market. Delivered
// transactions accumulate in one cache that Commit flushes.
type CommitStore struct {
	committed bazaar.CommitKVStore
	deliver   bazaar.KVCacheWrap
}

// NewCommitStore loads the latest version of store.
func NewCommitStore(store bazaar.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}, nil
}

// CommitInfo returns the latest committed version.
func (cs *CommitStore) CommitInfo() (bazaar.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes the deliver cache, persists a new version and opens the
// cache for the next block.
func (cs *CommitStore) Commit() (bazaar.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return bazaar.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a fresh cache on top of the committed state. Changes
// made to it are never written.
func (cs *CommitStore) CheckStore() bazaar.KVCacheWrap {
	return cs.committed.CacheWrap()
}

// DeliverStore returns the cache collecting the current block.
func (cs *CommitStore) DeliverStore() bazaar.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives outside every extension bucket.
var chainIDKey = []byte("_bz:chainID")

// loadChainID returns the stored chain id, or "" before genesis.
func loadChainID(kv bazaar.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(raw), nil
}

// saveChainID records the chain id once. A second call fails with
// ErrUnauthorized.
func saveChainID(kv bazaar.KVStore, chainID string) error {
	if !bazaar.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch current, err := loadChainID(kv); {
	case err != nil:
		return err
	case current != "":
		return errors.Wrapf(errors.ErrUnauthorized, "chain id already set to %q", current)
	}
	if err := kv.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
