package nft

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName is where the tokens are stored
const BucketName = "nft"

const (
	minIDLength = 3
	maxIDLength = 256
)

// IsValidTokenID returns true if id can identify an asset.
func IsValidTokenID(id []byte) bool {
	return len(id) >= minIDLength && len(id) <= maxIDLength
}

var _ orm.Model = (*Token)(nil)

// Validate requires an owner to be present.
func (t *Token) Validate() error {
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Bucket stores tokens keyed by the asset id.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing tokens.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Token{}),
	}
}

// Get loads the token with given id. It returns ErrNotFound if there is
// no such asset.
func (b Bucket) Get(db bazaar.ReadOnlyKVStore, id []byte) (*Token, error) {
	var t Token
	if err := b.One(db, id, &t); err != nil {
		return nil, errors.Wrapf(err, "asset %X", id)
	}
	return &t, nil
}
