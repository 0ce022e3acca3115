package sigs

import (
	"github.com/iov-one/bazaar/errors"
)

// ErrInvalidSequence is returned when a signature carries a nonce that does
// not match the account state.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
