package vault

import (
	"regexp"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const gconfPackage = "vault"

var isLabel = regexp.MustCompile(`^[a-zA-Z0-9 _\-]{3,64}$`).MatchString

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner returns the address allowed to update the configuration.
func (c *Configuration) GetOwner() bazaar.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if c.Owner != nil {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if !isLabel(c.Label) {
		return errors.Wrapf(errors.ErrInput, "invalid label %q", c.Label)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, gconfPackage, &conf); err != nil {
		return nil, errors.Wrap(err, "vault configuration")
	}
	return &conf, nil
}
