package app

import (
	"reflect"

	"github.com/iov-one/bazaar"
)

// Decorators is an ordered stack of decorators waiting for the Handler
// they wrap. The first decorator runs first.
type Decorators struct {
	chain []bazaar.Decorator
}

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are skipped so optional layers can be passed unconditionally.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
func ChainDecorators(chain ...bazaar.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with the given decorators appended. The
// receiver is never modified.
func (d Decorators) Chain(chain ...bazaar.Decorator) Decorators {
	out := make([]bazaar.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(out, d.chain)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return Decorators{chain: out}
}

func isNilDecorator(d bazaar.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack into a single Handler.
func (d Decorators) WithHandler(h bazaar.Handler) bazaar.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{dec: d.chain[i], next: h}
	}
	return h
}

// layer runs one decorator around the rest of the stack.
type layer struct {
	dec  bazaar.Decorator
	next bazaar.Handler
}

var _ bazaar.Handler = layer{}

func (l layer) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
