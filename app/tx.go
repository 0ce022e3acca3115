package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/sigs"
)

// Tx carries a single message, addressed by its path, together with the
// signatures of everyone authorizing it.
type Tx struct {
	Path       string               `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Msg        []byte               `protobuf:"bytes,2,opt,name=msg,proto3" json:"msg,omitempty"`
	Signatures []*sigs.StdSignature `protobuf:"bytes,3,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

var _ bazaar.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}

func (m *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(m))
}

func (m *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(m))
}

// NewTx returns an unsigned transaction carrying msg.
func NewTx(msg bazaar.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return &Tx{Path: msg.Path(), Msg: raw}, nil
}

// GetMsg decodes the message using the type registered for the tx path.
func (m *Tx) GetMsg() (bazaar.Msg, error) {
	newMsg, ok := messages[m.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "message path %q", m.Path)
	}
	msg := newMsg()
	if err := msg.Unmarshal(m.Msg); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "decode %s: %s", m.Path, err)
	}
	return msg, nil
}

// GetSignBytes returns path || 0x00 || msg.
func (m *Tx) GetSignBytes() ([]byte, error) {
	if m.Path == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "path")
	}
	bz := make([]byte, 0, len(m.Path)+1+len(m.Msg))
	bz = append(bz, m.Path...)
	bz = append(bz, 0)
	bz = append(bz, m.Msg...)
	return bz, nil
}

func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// Sign adds a signature made by signer with the given nonce.
func (m *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, m, chainID, seq)
	if err != nil {
		return err
	}
	m.Signatures = append(m.Signatures, sig)
	return nil
}

// DecodeTx parses a serialized transaction.
func DecodeTx(raw []byte) (*Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode tx: %s", err)
	}
	return &tx, nil
}
