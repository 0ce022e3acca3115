package crypto

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the condition extension of signature based
// permissions.
const ExtensionName = "sigs"

// Signer is anything that can produce signatures for a public key.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKey returns a random new private key
func GenPrivKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivKeyFromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(p.key, message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return &PublicKey{key: pub}
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	key ed25519.PublicKey
}

// PublicKeyFromBytes validates the raw key and wraps it.
func PublicKeyFromBytes(raw []byte) (*PublicKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	key := make([]byte, len(raw))
	copy(key, raw)
	return &PublicKey{key: key}, nil
}

// Bytes returns the raw key.
func (p *PublicKey) Bytes() []byte {
	return []byte(p.key)
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(p.key, message, sig)
}

// Condition encodes the public key into a permission
func (p *PublicKey) Condition() bazaar.Condition {
	return bazaar.NewCondition(ExtensionName, "ed25519", p.key)
}

// Address is the account address controlled by this key.
func (p *PublicKey) Address() bazaar.Address {
	return p.Condition().Address()
}
