package weavetest

import "github.com/iov-one/bazaar"

// Decorator is a counting bazaar.Decorator mock. CheckErr and DeliverErr,
// when set, are returned instead of calling the next handler. Calls are
// counted either way.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks     int
	deliveries int
}

var _ bazaar.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	d.deliveries++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CheckCallCount returns how many times Check was called.
func (d *Decorator) CheckCallCount() int {
	return d.checks
}

// DeliverCallCount returns how many times Deliver was called.
func (d *Decorator) DeliverCallCount() int {
	return d.deliveries
}

// Decorate returns a handler that passes every call through d before
// reaching h.
func Decorate(h bazaar.Handler, d bazaar.Decorator) bazaar.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   bazaar.Handler
	decorator bazaar.Decorator
}

func (d decorated) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
