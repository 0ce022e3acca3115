package weavetest

import "github.com/iov-one/bazaar"

// Tx represents a bazaar transaction.
//
// Set Err to force GetMsg to fail.
type Tx struct {
	Msg bazaar.Msg
	Err error
}

var _ bazaar.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

// Msg is a message mock that only carries a path and an optional
// validation error.
type Msg struct {
	RoutePath   string
	Serialized  []byte
	ValidateErr error
}

var _ bazaar.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.ValidateErr
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, nil
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return nil
}
