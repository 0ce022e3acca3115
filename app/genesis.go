package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Genesis is the content of a genesis file.
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState bazaar.Options `json:"app_state"`
}

// LoadGenesis reads and parses the genesis file found under given path.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis file: %s", err)
	}
	if !bazaar.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...bazaar.Initializer) bazaar.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []bazaar.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
