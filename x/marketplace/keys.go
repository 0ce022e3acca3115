package marketplace

import (
	"encoding/binary"

	"github.com/iov-one/bazaar"
)

// KeyDeriver computes the deterministic record keys of listings and bids.
type KeyDeriver interface {
	// ListingKey returns the key of the single listing slot of an asset.
	ListingKey(assetID []byte) []byte
	// BidKey returns the key of the bid with given sequence number on a
	// listing.
	BidKey(listingID []byte, seq uint32) []byte
}

// DerivedKeys derives keys as addresses of marketplace conditions.
type DerivedKeys struct{}

var _ KeyDeriver = DerivedKeys{}

func (DerivedKeys) ListingKey(assetID []byte) []byte {
	return bazaar.NewCondition("market", "listing", assetID).Address()
}

func (DerivedKeys) BidKey(listingID []byte, seq uint32) []byte {
	data := make([]byte, len(listingID)+4)
	copy(data, listingID)
	binary.BigEndian.PutUint32(data[len(listingID):], seq)
	return bazaar.NewCondition("market", "bid", data).Address()
}
