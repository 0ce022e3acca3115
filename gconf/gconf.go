package gconf

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// ReadStore is the part of a store Load needs.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of a store Save needs.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a value that can check and serialize itself.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler loads a value from its serialized form.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is implemented by every configuration singleton.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func dbKey(pkg string) []byte {
	return append([]byte("_c:"), pkg...)
}

// Save validates src and stores it as the configuration of pkg.
func Save(db Store, pkg string, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	if err := db.Set(dbKey(pkg), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Load reads the configuration of pkg into dst. It returns ErrNotFound if
// none was ever saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(dbKey(pkg))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig reads the genesis document at conf.<pkg> into conf and saves
// it. A package without a genesis entry yields ErrNotFound.
func InitConfig(db Store, opts bazaar.Options, pkg string, conf Configuration) error {
	var all bazaar.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no genesis configuration for %q", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis configuration for %q", pkg)
	}
	return Save(db, pkg, conf)
}
