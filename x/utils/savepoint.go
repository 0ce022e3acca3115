package utils

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache
// is written back only when the handler succeeds, so a failed transaction
// leaves no partial state. Each phase must be enabled explicitly.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ bazaar.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that is enabled for no phase.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	var res *bazaar.CheckResult
	err := isolate(s.onCheck, db, func(kv bazaar.KVStore) error {
		var err error
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	var res *bazaar.DeliverResult
	err := isolate(s.onDeliver, db, func(kv bazaar.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn on a cache wrap of db and writes the cache only if fn
// succeeds. Stores that cannot be cached are passed through untouched.
func isolate(enabled bool, db bazaar.KVStore, fn func(bazaar.KVStore) error) error {
	cacheable, ok := db.(bazaar.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}
