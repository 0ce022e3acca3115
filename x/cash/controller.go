package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that want to move value.
type Controller interface {
	CoinMover
	Balance(bazaar.ReadOnlyKVStore, bazaar.Address) (uint64, error)
	IssueCoins(bazaar.KVStore, bazaar.Address, uint64) error
}

// CoinMover is an interface for moving value between accounts.
type CoinMover interface {
	// MoveCoins moves amount from src to dest. The authenticator must
	// control src.
	MoveCoins(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, src, dest bazaar.Address, amount uint64) error
}

// BaseController is a simple implementation of controller
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given account. It returns
// ErrNotFound when the account does not exist.
func (c BaseController) Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, src, dest bazaar.Address, amount uint64) error {
	if !auth.HasAddress(ctx, src) {
		return errors.Wrapf(errors.ErrUnauthorized, "cannot spend from %s", src)
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}

	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}
