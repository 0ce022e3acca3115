package gconf

import (
	"reflect"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// OwnedConfig is a configuration that names the address allowed to
// change it.
type OwnedConfig interface {
	Configuration
	GetOwner() bazaar.Address
}

// UpdateConfigurationHandler merges the "Patch" field of a message into the
// stored configuration of one package. Only the current owner may do so.
type UpdateConfigurationHandler struct {
	pkg   string
	proto OwnedConfig
	auth  x.Authenticator
}

var _ bazaar.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler for the configuration of
// pkg. proto must be a pointer to the configuration type and is only used
// to allocate fresh values. The configuration must already exist; it is
// created from genesis only.
func NewUpdateConfigurationHandler(pkg string, proto OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{pkg: pkg, proto: proto, auth: auth}
}

func (h UpdateConfigurationHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.patched(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	conf, err := h.patched(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	bazaar.GetLogger(ctx).Info("configuration updated", "package", h.pkg)
	return &bazaar.DeliverResult{}, nil
}

// patched loads the current configuration, authorizes the signer and
// returns the validated result of applying the message patch.
func (h UpdateConfigurationHandler) patched(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (OwnedConfig, error) {
	current := reflect.New(reflect.TypeOf(h.proto).Elem()).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, current); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	switch owner := current.GetOwner(); {
	case len(owner) == 0:
		return nil, errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	case !h.auth.HasAddress(ctx, owner):
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}

	change, err := patchOf(tx)
	if err != nil {
		return nil, err
	}
	if err := merge(current, change); err != nil {
		return nil, err
	}
	if err := current.Validate(); err != nil {
		return nil, errors.Wrap(err, "patched configuration")
	}
	return current, nil
}

// merge copies every non zero field of src into dst. Both must be pointers
// to the same struct type.
func merge(dst, src OwnedConfig) error {
	if reflect.TypeOf(dst) != reflect.TypeOf(src) {
		return errors.Wrapf(errors.ErrMsg, "patch %T does not match %T", src, dst)
	}
	d := reflect.ValueOf(dst).Elem()
	s := reflect.ValueOf(src).Elem()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		d.Field(i).Set(f)
	}
	return nil
}

// patchOf extracts the non nil "Patch" field of the transaction message.
func patchOf(tx bazaar.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return nil, errors.Wrap(err, "get message")
	case msg == nil:
		return nil, errors.Wrap(errors.ErrState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}

	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "message %T is not a struct pointer", msg)
	}
	field := v.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, "patch is required")
	}
	change, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "patch of type %s", field.Type())
	}
	return change, nil
}
