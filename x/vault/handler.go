package vault

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ledger Ledger) {
	r.Handle(pathInitialize, InitializeHandler{ledger: ledger})
	r.Handle(pathUpdateConfiguration, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler that lets the configuration owner
// patch the vault configuration. Changes apply to a vault that is not
// initialized yet.
func NewConfigHandler(auth x.Authenticator) bazaar.Handler {
	return gconf.NewUpdateConfigurationHandler(gconfPackage, &Configuration{}, auth)
}

// InitializeHandler creates the vault. Anyone may call it.
type InitializeHandler struct {
	ledger Ledger
}

var _ bazaar.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	var msg InitializeMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := NewBucket().Has(db, singletonKey); err == nil {
		return nil, errors.Wrap(errors.ErrDuplicate, "vault already initialized")
	}
	return &bazaar.CheckResult{}, nil
}

func (h InitializeHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	var msg InitializeMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	v, err := Initialize(db, h.ledger)
	if err != nil {
		return nil, err
	}
	addr := v.Address()
	bazaar.GetLogger(ctx).Info("vault initialized", "label", v.Label, "salt", v.Salt, "address", addr.String())
	return &bazaar.DeliverResult{Data: addr}, nil
}
