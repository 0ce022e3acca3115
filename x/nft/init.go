package nft

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const optKey = "nft"

// GenesisToken is an asset created at chain start.
type GenesisToken struct {
	ID    string         `json:"id"`
	Owner bazaar.Address `json:"owner"`
}

// Initializer mints the genesis tokens.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis mints all tokens listed under the "nft" key.
func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions(optKey, &tokens); err != nil {
		return errors.Wrap(err, "nft genesis")
	}
	ctrl := NewController(NewBucket())
	for _, t := range tokens {
		if err := ctrl.Mint(kv, []byte(t.ID), t.Owner); err != nil {
			return errors.Wrapf(err, "token %q", t.ID)
		}
	}
	return nil
}
