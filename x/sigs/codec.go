package sigs

import (
	"github.com/gogo/protobuf/proto"
)

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    []byte `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

// UserData just stores the data and is used for serialization.
// Key is the Address (PubKey.Permission().Address())
type UserData struct {
	Pubkey   []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// Wire types without methods of their own, so that the reflection based
// protobuf marshaler encodes their fields.
type stdSignaturePB StdSignature
type userDataPB UserData

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(m))
}

func (m *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignaturePB)(m))
}

func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataPB)(m))
}

func (m *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userDataPB)(m))
}
