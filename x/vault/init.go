package vault

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/gconf"
)

// Initializer stores the vault configuration found in genesis under
// conf.vault.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(kv, opts, gconfPackage, &conf)
}
