package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
)

// Wallet holds the balance of a single account. It is stored under the
// account address.
type Wallet struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

// SendMsg moves Amount from Source to Destination. Source must sign.
type SendMsg struct {
	Source      bazaar.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination bazaar.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type walletPB Wallet
type sendMsgPB SendMsg

func (m *walletPB) Reset()         { *m = walletPB{} }
func (m *walletPB) String() string { return proto.CompactTextString(m) }
func (*walletPB) ProtoMessage()    {}

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

func (m *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletPB)(m))
}

func (m *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletPB)(m))
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgPB)(m))
}
