package cash

import (
	"math"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate is a noop, every uint64 is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

// Add increases the balance, failing on overflow.
func (w *Wallet) Add(amount uint64) error {
	if amount > math.MaxUint64-w.Amount {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", w.Amount, amount)
	}
	w.Amount += amount
	return nil
}

// Subtract decreases the balance. It fails when the wallet holds less
// than amount.
func (w *Wallet) Subtract(amount uint64) error {
	if amount > w.Amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "has %d, needs %d", w.Amount, amount)
	}
	w.Amount -= amount
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket, storing
// wallets keyed by address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// Get loads the wallet of given address. It returns ErrNotFound when
// the account does not exist.
func (b Bucket) Get(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, addr, &w); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &w, nil
}

// GetOrCreate loads the wallet of given address or returns an empty
// one if the account does not exist yet.
func (b Bucket) GetOrCreate(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if errors.ErrNotFound.Is(err) {
		return &Wallet{}, nil
	}
	return w, err
}
