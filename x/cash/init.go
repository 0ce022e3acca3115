package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const optKey = "cash"

// GenesisAccount is an initial balance. The address is decoded by
// bazaar.ParseAddress, so hex, bech32: and cond: forms are accepted.
type GenesisAccount struct {
	Address bazaar.Address `json:"address"`
	Amount  uint64         `json:"amount"`
}

// Initializer issues the genesis balances.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis credits every account listed under the "cash" key.
func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(err, "cash genesis")
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
