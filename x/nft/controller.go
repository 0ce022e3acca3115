package nft

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// Controller manages asset custody.
type Controller interface {
	AssetMover
	Owner(db bazaar.ReadOnlyKVStore, id []byte) (bazaar.Address, error)
	Mint(db bazaar.KVStore, id []byte, owner bazaar.Address) error
}

// AssetMover is the transfer primitive other extensions use.
type AssetMover interface {
	// Transfer moves count units of asset id from one holder to
	// another. Assets are non-fungible, so count must be one.
	Transfer(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, id []byte, from, to bazaar.Address, count uint32) error
}

// BaseController is the bucket backed Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller storing tokens in given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Owner returns the current holder of the asset.
func (c BaseController) Owner(db bazaar.ReadOnlyKVStore, id []byte) (bazaar.Address, error) {
	t, err := c.bucket.Get(db, id)
	if err != nil {
		return nil, err
	}
	return t.Owner, nil
}

// Transfer implements AssetMover.
func (c BaseController) Transfer(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, id []byte, from, to bazaar.Address, count uint32) error {
	if count != 1 {
		return errors.Wrapf(errors.ErrAmount, "cannot transfer %d units of a non-fungible asset", count)
	}
	t, err := c.bucket.Get(db, id)
	if err != nil {
		return err
	}
	if !t.Owner.Equals(from) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s does not hold the asset", from)
	}
	if !auth.HasAddress(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "cannot move assets of %s", from)
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	t.Owner = to
	return c.bucket.Put(db, id, t)
}

// Mint creates a new asset held by owner. It fails with ErrDuplicate if
// the id is taken.
func (c BaseController) Mint(db bazaar.KVStore, id []byte, owner bazaar.Address) error {
	if !IsValidTokenID(id) {
		return errors.Wrapf(errors.ErrInput, "invalid asset id %X", id)
	}
	return c.bucket.Create(db, id, &Token{Owner: owner})
}
