package marketplace

import (
	"fmt"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

const (
	listingBucketName = "listing"
	bidBucketName     = "bid"
)

func (s ListingState) String() string {
	switch s {
	case Unlisted:
		return "unlisted"
	case BidListing:
		return "bid"
	case OfferListing:
		return "offer"
	}
	return fmt.Sprintf("ListingState(%d)", int32(s))
}

// Listed returns true if the asset of a listing in this state is held by
// the vault.
func (s ListingState) Listed() bool {
	return s == BidListing || s == OfferListing
}

func (s BidState) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	}
	return fmt.Sprintf("BidState(%d)", int32(s))
}

var _ orm.Model = (*Listing)(nil)

func (l *Listing) Validate() error {
	if err := l.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(l.AssetID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "asset id")
	}
	if l.State != Unlisted && !l.State.Listed() {
		return errors.Wrapf(errors.ErrModel, "state %s", l.State)
	}
	if l.RealBidCount > l.HistoricalBidCount {
		return errors.Wrap(errors.ErrModel, "more live bids than bids ever placed")
	}
	return nil
}

var _ orm.Model = (*Bid)(nil)

func (b *Bid) Validate() error {
	if err := b.User.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	if len(b.AssetID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "asset id")
	}
	if len(b.ListingID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "listing id")
	}
	switch b.State {
	case Inactive, Pending, Accepted:
	default:
		return errors.Wrapf(errors.ErrModel, "state %s", b.State)
	}
	return nil
}

// ListingBucket stores listings under their derived key.
type ListingBucket struct {
	orm.ModelBucket
}

// NewListingBucket returns the listing bucket.
func NewListingBucket() ListingBucket {
	return ListingBucket{
		ModelBucket: orm.NewModelBucket(listingBucketName, &Listing{}),
	}
}

// Get loads a listing. ErrNotFound is returned if there is no listing
// under given key.
func (b ListingBucket) Get(db bazaar.ReadOnlyKVStore, key []byte) (*Listing, error) {
	var l Listing
	if err := b.One(db, key, &l); err != nil {
		return nil, errors.Wrapf(err, "listing %X", key)
	}
	return &l, nil
}

// BidBucket stores bids under their derived key.
type BidBucket struct {
	orm.ModelBucket
}

// NewBidBucket returns the bid bucket.
func NewBidBucket() BidBucket {
	return BidBucket{
		ModelBucket: orm.NewModelBucket(bidBucketName, &Bid{}),
	}
}

// Get loads a bid. ErrNotFound is returned if there is no bid under given
// key.
func (b BidBucket) Get(db bazaar.ReadOnlyKVStore, key []byte) (*Bid, error) {
	var bid Bid
	if err := b.One(db, key, &bid); err != nil {
		return nil, errors.Wrapf(err, "bid %X", key)
	}
	return &bid, nil
}
