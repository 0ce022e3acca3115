package sigs

import (
	"context"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

type contextKey int

const signersKey contextKey = 0

// Decorator rejects transactions that carry no valid signature and records
// the signers of the others. Nonces are written to the store it receives,
// so place it outside any savepoint to make them stick when the handler
// fails.
type Decorator struct{}

var _ bazaar.Decorator = Decorator{}

// NewDecorator returns a decorator signing over the context chain id.
func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (Decorator) authenticate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (bazaar.Context, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%T cannot carry signatures", tx)
	}
	signers, err := VerifyTxSignatures(db, signed, bazaar.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "verify signatures")
	}
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey, signers), nil
}

// Authenticate is the x.Authenticator backed by the conditions the
// Decorator verified.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the signers of the current transaction, in the
// order the signatures appear. It is empty outside the Decorator.
func (Authenticate) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	signers, _ := ctx.Value(signersKey).([]bazaar.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
