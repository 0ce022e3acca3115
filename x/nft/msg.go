package nft

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const pathTransfer = "nft/transfer"

var _ bazaar.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message
func (*TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	if !IsValidTokenID(m.ID) {
		return errors.Wrap(errors.ErrInput, "id must be valid")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}
