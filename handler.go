package bazaar

import (
	"encoding/json"

	"github.com/iov-one/bazaar/errors"
)

// Handler processes the messages routed to it. Check must not rely on
// being able to persist anything; Deliver applies the state transition.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the current state.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps the rest of a handler stack. It may change the context
// or the store it passes on, or refuse to call next at all.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is the outcome of a successful Check.
type CheckResult struct {
	// Data is a machine readable value, such as the key of a new entity.
	Data []byte
	// Log is a human readable note.
	Log string
}

// DeliverResult is the outcome of a successful Deliver.
type DeliverResult struct {
	Data []byte
	Log  string
}

// Options holds the raw genesis app state, one JSON document per
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the document stored under key into obj. A missing
// key leaves obj untouched and is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of one extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
