package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSend, NewSendHandler(auth, control))
}

// SendHandler moves value between two accounts.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ bazaar.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check rejects transfers that are not signed by the source or that the
// source cannot cover.
func (h SendHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.control.Balance(db, msg.Source)
	if err != nil {
		return nil, errors.Wrap(err, "source account")
	}
	if balance < msg.Amount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "balance %d", balance)
	}
	return &bazaar.CheckResult{}, nil
}

func (h SendHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(ctx, db, h.auth, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("coins sent",
		"source", msg.Source, "destination", msg.Destination, "amount", msg.Amount)
	return &bazaar.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
