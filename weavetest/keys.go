package weavetest

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
)

// NewKey returns a fresh random signing key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKey()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() bazaar.Condition {
	return NewKey().PublicKey().Condition()
}

// ParseAddress decodes any form accepted by bazaar.ParseAddress and fails
// the test on error.
func ParseAddress(t testing.TB, enc string) bazaar.Address {
	t.Helper()
	addr, err := bazaar.ParseAddress(enc)
	if err != nil {
		t.Fatalf("parse address %q: %s", enc, err)
	}
	return addr
}
