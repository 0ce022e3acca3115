package orm

import (
	"reflect"

	"github.com/iov-one/bazaar/errors"
)

// record pairs a primary key with the model stored under it.
type record struct {
	key   []byte
	value Model
}

func (r record) validate() error {
	if len(r.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if r.value == nil {
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return r.value.Validate()
}

// blank allocates a zero value of the same concrete type as proto.
func blank(proto Model) Model {
	return reflect.New(reflect.TypeOf(proto).Elem()).Interface().(Model)
}
