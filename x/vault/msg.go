package vault

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathInitialize          = "vault/initialize"
	pathUpdateConfiguration = "vault/update_configuration"
)

var _ bazaar.Msg = (*InitializeMsg)(nil)
var _ bazaar.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message
func (*InitializeMsg) Path() string {
	return pathInitialize
}

func (*InitializeMsg) Validate() error {
	return nil
}

// Path returns the routing path for this message
func (*UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.Owner != nil {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if m.Patch.Label != "" && !isLabel(m.Patch.Label) {
		return errors.Wrapf(errors.ErrInput, "invalid label %q", m.Patch.Label)
	}
	return nil
}
