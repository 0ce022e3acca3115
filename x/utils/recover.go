package utils

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Recovery turns a panic raised further down the stack into an ErrPanic
// error and logs it.
type Recovery struct{}

var _ bazaar.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (_ *bazaar.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (_ *bazaar.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverTx must be deferred directly.
func recoverTx(ctx bazaar.Context, tx bazaar.Tx, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		bazaar.GetLogger(ctx).Error("panic", "path", bazaar.GetPath(tx), "reason", r)
	}
}
