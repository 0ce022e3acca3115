package marketplace

import "github.com/iov-one/bazaar/errors"

// marketplace reserves 1200~1299
var (
	ErrInvalidOwner      = errors.Register(1200, "invalid owner")
	ErrInvalidAsset      = errors.Register(1201, "invalid asset")
	ErrInvalidState      = errors.Register(1202, "invalid state")
	ErrInvalidUser       = errors.Register(1203, "invalid user")
	ErrUnacceptablePrice = errors.Register(1204, "unacceptable price")
)
