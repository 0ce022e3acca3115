package nft

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathTransfer, TransferHandler{auth: auth, control: control})
}

// TransferHandler moves an asset on behalf of its holder.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ bazaar.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, h.auth, msg.ID, msg.Source, msg.Destination, 1); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: msg.ID}, nil
}

func (h TransferHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "holder signature missing")
	}
	return &msg, nil
}
