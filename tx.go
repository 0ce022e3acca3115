package bazaar

import (
	"reflect"

	"github.com/iov-one/bazaar/errors"
)

// Marshaller serializes a value. Implementations may validate first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a value that can be stored and loaded back. Unmarshal
// needs a pointer receiver, which is why it is kept apart from Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for one state transition. It carries no
// authentication; signatures live on the enclosing Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It must match
	// [a-zA-Z0-9_/]+ and be unique per message type.
	Path() string

	// Validate checks the message on its own, without looking at the
	// store.
	Validate() error
}

// Tx is what a client submits: one message plus whatever the decorators
// need to authenticate it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message carried by tx, or "(missing)"
// when there is none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into destination, which must be a
// pointer to the concrete message type, and validates it.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrState, "nil message")
	}

	src := reflect.ValueOf(msg)
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || !src.Type().AssignableTo(dst.Type()) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", msg, destination)
	}
	dst.Elem().Set(src.Elem())

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
