package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce a client can represent
// (Number.MAX_SAFE_INTEGER).
const maxSequenceValue = (1 << 53) - 1

var _ orm.Model = (*UserData)(nil)

// Validate ensures the account state is consistent.
func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	if u.Pubkey != nil {
		if _, err := crypto.PublicKeyFromBytes(u.Pubkey); err != nil {
			return errors.Wrap(errors.ErrModel, "invalid pubkey")
		}
	}
	return nil
}

// Validate rejects signatures missing a key or signature bytes.
func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case len(s.Pubkey) == 0:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case len(s.Signature) == 0:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// PublicKey decodes the stored key.
func (u *UserData) PublicKey() (*crypto.PublicKey, error) {
	return crypto.PublicKeyFromBytes(u.Pubkey)
}

// Bucket stores the signer accounts, keyed by the signer address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &UserData{}),
	}
}

// GetOrCreate loads the account of given key or returns a fresh one
// with sequence zero if none was stored yet.
func (b Bucket) GetOrCreate(db bazaar.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey.Bytes()}, nil
	default:
		return nil, err
	}
}

// Sequence returns the next expected nonce for given address.
func (b Bucket) Sequence(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (int64, error) {
	var user UserData
	switch err := b.One(db, addr, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
