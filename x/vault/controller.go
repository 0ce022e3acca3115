package vault

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Ledger is the part of the value ledger the vault needs to find an
// address that has no account yet.
type Ledger interface {
	Balance(bazaar.ReadOnlyKVStore, bazaar.Address) (uint64, error)
}

// Initialize creates the vault singleton using the label from the
// configuration. The highest salt whose address has no ledger account is
// used. It fails with ErrDuplicate if the vault already exists.
func Initialize(db bazaar.KVStore, ledger Ledger) (*Vault, error) {
	bucket := NewBucket()
	switch err := bucket.Has(db, singletonKey); {
	case err == nil:
		return nil, errors.Wrap(errors.ErrDuplicate, "vault already initialized")
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	for salt := int(maxSalt); salt >= 0; salt-- {
		v := &Vault{Label: conf.Label, Salt: uint32(salt)}
		_, err := ledger.Balance(db, v.Address())
		switch {
		case err == nil:
			continue
		case !errors.ErrNotFound.Is(err):
			return nil, errors.Wrap(err, "ledger")
		}
		if err := bucket.Create(db, singletonKey, v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, errors.Wrapf(errors.ErrState, "no free salt for label %q", conf.Label)
}
