package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
)

// Vault is the singleton escrow account. Its address is derived from
// Label and Salt.
type Vault struct {
	Label string `protobuf:"bytes,1,opt,name=label,proto3" json:"label,omitempty"`
	Salt  uint32 `protobuf:"varint,2,opt,name=salt,proto3" json:"salt,omitempty"`
}

// Configuration of the vault extension, stored with gconf.
type Configuration struct {
	// Owner may update this configuration.
	Owner bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Label seeds the vault address.
	Label string `protobuf:"bytes,2,opt,name=label,proto3" json:"label,omitempty"`
}

// InitializeMsg creates the vault singleton.
type InitializeMsg struct{}

// UpdateConfigurationMsg patches the vault configuration. Zero fields
// are left unchanged.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

type vaultPB Vault
type configurationPB Configuration
type initializeMsgPB InitializeMsg
type updateConfigurationMsgPB UpdateConfigurationMsg

func (m *vaultPB) Reset()         { *m = vaultPB{} }
func (m *vaultPB) String() string { return proto.CompactTextString(m) }
func (*vaultPB) ProtoMessage()    {}

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (m *initializeMsgPB) Reset()         { *m = initializeMsgPB{} }
func (m *initializeMsgPB) String() string { return proto.CompactTextString(m) }
func (*initializeMsgPB) ProtoMessage()    {}

func (m *updateConfigurationMsgPB) Reset()         { *m = updateConfigurationMsgPB{} }
func (m *updateConfigurationMsgPB) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgPB) ProtoMessage()    {}

func (m *Vault) Marshal() ([]byte, error) {
	return proto.Marshal((*vaultPB)(m))
}

func (m *Vault) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*vaultPB)(m))
}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(m))
}

func (m *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(m))
}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializeMsgPB)(m))
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializeMsgPB)(m))
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgPB)(m))
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateConfigurationMsgPB)(m))
}
