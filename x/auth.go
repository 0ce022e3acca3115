package x

import (
	"github.com/iov-one/bazaar"
)

// Authenticator tells handlers which conditions authorized the current
// transaction. Handlers receive it in their constructor, so the signature
// check can be swapped for a derived authority such as the vault.
type Authenticator interface {
	// GetConditions returns every condition fulfilled in this context.
	// The first one belongs to the main signer.
	GetConditions(bazaar.Context) []bazaar.Condition
	// HasAddress reports whether one of the conditions hashes to addr.
	HasAddress(bazaar.Context, bazaar.Address) bool
}

// MainSigner returns the first condition, or nil when nobody signed.
func MainSigner(ctx bazaar.Context, auth Authenticator) bazaar.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
