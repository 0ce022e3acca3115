package nft

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
)

// Token records the current holder of an asset. It is stored under the
// asset id.
type Token struct {
	Owner bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

// TransferMsg moves the asset ID from Source to Destination.
type TransferMsg struct {
	ID          []byte         `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Source      bazaar.Address `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Destination bazaar.Address `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
}

type tokenPB Token
type transferMsgPB TransferMsg

func (m *tokenPB) Reset()         { *m = tokenPB{} }
func (m *tokenPB) String() string { return proto.CompactTextString(m) }
func (*tokenPB) ProtoMessage()    {}

func (m *transferMsgPB) Reset()         { *m = transferMsgPB{} }
func (m *transferMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferMsgPB) ProtoMessage()    {}

func (m *Token) Marshal() ([]byte, error) {
	return proto.Marshal((*tokenPB)(m))
}

func (m *Token) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*tokenPB)(m))
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgPB)(m))
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferMsgPB)(m))
}
