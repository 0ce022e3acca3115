package vault

import (
	"context"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x"
)

const (
	bucketName = "vault"
	// maxSalt is the first salt tried by Initialize.
	maxSalt = 255
)

var singletonKey = []byte("main")

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Validate() error {
	if !isLabel(v.Label) {
		return errors.Wrapf(errors.ErrModel, "invalid label %q", v.Label)
	}
	if v.Salt > maxSalt {
		return errors.Wrapf(errors.ErrModel, "salt %d out of range", v.Salt)
	}
	return nil
}

// Condition returns the condition the vault authority fulfils.
func (v *Vault) Condition() bazaar.Condition {
	return Condition(v.Label, v.Salt)
}

// Address of the vault account.
func (v *Vault) Address() bazaar.Address {
	return v.Condition().Address()
}

// Authority returns the capability that allows the transfer primitives to
// move assets and value held by the vault.
func (v *Vault) Authority() x.Authenticator {
	return authority{cond: v.Condition()}
}

// Condition derives the vault condition from label and salt.
func Condition(label string, salt uint32) bazaar.Condition {
	seed := make([]byte, len(label)+1)
	copy(seed, label)
	seed[len(label)] = byte(salt)
	return bazaar.NewCondition("vault", "seed", seed)
}

type authority struct {
	cond bazaar.Condition
}

var _ x.Authenticator = authority{}

func (a authority) GetConditions(context.Context) []bazaar.Condition {
	return []bazaar.Condition{a.cond}
}

func (a authority) HasAddress(_ context.Context, addr bazaar.Address) bool {
	return a.cond.Address().Equals(addr)
}

// Bucket holds the vault singleton.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns the vault bucket.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(bucketName, &Vault{}),
	}
}

// Load returns the vault. ErrNotFound is returned before it is
// initialized.
func Load(db bazaar.ReadOnlyKVStore) (*Vault, error) {
	var v Vault
	if err := NewBucket().One(db, singletonKey, &v); err != nil {
		return nil, errors.Wrap(err, "vault not initialized")
	}
	return &v, nil
}
