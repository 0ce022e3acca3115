package store

import (
	"github.com/iov-one/bazaar/errors"
)

// Op is a single pending write, either a set or a delete.
type Op struct {
	del   bool
	key   []byte
	value []byte
}

// SetOp returns an operation writing value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp returns an operation removing key.
func DelOp(key []byte) Op {
	return Op{del: true, key: key}
}

// IsSetOp returns true if the operation writes a value.
func (o Op) IsSetOp() bool {
	return !o.del
}

// Key returns the key the operation touches.
func (o Op) Key() []byte {
	return o.key
}

// Apply performs the operation on out.
func (o Op) Apply(out SetDeleter) error {
	var err error
	if o.del {
		err = out.Delete(o.key)
	} else {
		err = out.Set(o.key, o.value)
	}
	if err != nil {
		return errors.Wrapf(err, "apply op %X", o.key)
	}
	return nil
}

// NonAtomicBatch queues operations and replays them in order on Write.
// A failure half way leaves the earlier operations applied, so use it
// only on top of in-memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies all queued operations and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the queued operations in order.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
