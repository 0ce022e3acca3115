package marketplace

import (
	"math"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/vault"
)

// AssetLedger is the asset custody primitive.
type AssetLedger interface {
	Owner(db bazaar.ReadOnlyKVStore, id []byte) (bazaar.Address, error)
	Transfer(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, id []byte, from, to bazaar.Address, count uint32) error
}

// ValueMover is the value transfer primitive.
type ValueMover interface {
	MoveCoins(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, src, dest bazaar.Address, amount uint64) error
}

// Engine applies listing and bid transitions. Every operation validates
// its input against the current records before the first write, and
// expects to run inside a savepoint so that a failing transfer discards
// all previous writes.
type Engine struct {
	listings ListingBucket
	bids     BidBucket
	keys     KeyDeriver
	assets   AssetLedger
	value    ValueMover
}

// NewEngine returns an engine moving assets and value with given
// primitives.
func NewEngine(keys KeyDeriver, assets AssetLedger, value ValueMover) *Engine {
	return &Engine{
		listings: NewListingBucket(),
		bids:     NewBidBucket(),
		keys:     keys,
		assets:   assets,
		value:    value,
	}
}

// Listing loads the listing stored under given key.
func (e *Engine) Listing(db bazaar.ReadOnlyKVStore, listingID []byte) (*Listing, error) {
	return e.listings.Get(db, listingID)
}

// Bid loads the bid stored under given key.
func (e *Engine) Bid(db bazaar.ReadOnlyKVStore, bidID []byte) (*Bid, error) {
	return e.bids.Get(db, bidID)
}

// CreateListingSlot allocates the listing slot of an asset. The owner must
// currently hold the asset. ErrDuplicate is returned if the slot exists.
func (e *Engine) CreateListingSlot(db bazaar.KVStore, owner bazaar.Address, assetID []byte) ([]byte, *Listing, error) {
	if err := e.checkHolder(db, owner, assetID); err != nil {
		return nil, nil, err
	}
	key := e.keys.ListingKey(assetID)
	l := &Listing{
		Owner:   owner,
		AssetID: assetID,
		State:   Unlisted,
	}
	if err := e.listings.Create(db, key, l); err != nil {
		return nil, nil, errors.Wrap(err, "cannot allocate listing")
	}
	return key, l, nil
}

func (e *Engine) checkHolder(db bazaar.ReadOnlyKVStore, owner bazaar.Address, assetID []byte) error {
	holder, err := e.assets.Owner(db, assetID)
	if err != nil {
		return err
	}
	if !holder.Equals(owner) {
		return errors.Wrapf(ErrInvalidOwner, "%s does not hold the asset", owner)
	}
	return nil
}

// Publish moves the asset from the owner into the vault and opens the
// listing with given kind and price. auth must control the owner.
func (e *Engine) Publish(ctx bazaar.Context, db bazaar.KVStore, v *vault.Vault, auth x.Authenticator, listingID []byte, l *Listing, caller bazaar.Address, assetID []byte, kind ListingState, price uint64) error {
	if err := validatePublish(l, caller, assetID, kind); err != nil {
		return err
	}
	if err := e.assets.Transfer(ctx, db, auth, l.AssetID, l.Owner, v.Address(), 1); err != nil {
		return errors.Wrap(err, "cannot escrow asset")
	}
	l.Price = price
	l.State = kind
	return e.listings.Put(db, listingID, l)
}

// Reprice changes the price of a listed asset.
func (e *Engine) Reprice(db bazaar.KVStore, listingID []byte, l *Listing, caller bazaar.Address, assetID []byte, price uint64) error {
	if err := validateOwnerAction(l, caller, assetID); err != nil {
		return err
	}
	l.Price = price
	return e.listings.Put(db, listingID, l)
}

// Withdraw retires all pending bids, refunding escrowed value on a bid
// listing, and returns the asset to the owner.
func (e *Engine) Withdraw(ctx bazaar.Context, db bazaar.KVStore, v *vault.Vault, listingID []byte, l *Listing, caller bazaar.Address, assetID []byte) error {
	if err := validateOwnerAction(l, caller, assetID); err != nil {
		return err
	}
	if err := e.retirePending(ctx, db, v, listingID, l, nil); err != nil {
		return err
	}
	if err := e.assets.Transfer(ctx, db, v.Authority(), l.AssetID, v.Address(), l.Owner, 1); err != nil {
		return errors.Wrap(err, "cannot release asset")
	}
	l.State = Unlisted
	l.RealBidCount = 0
	return e.listings.Put(db, listingID, l)
}

// PlaceBid creates a pending bid at the next sequence of the listing. On a
// bid listing the bid price is moved from the bidder into the vault. auth
// must control the bidder.
func (e *Engine) PlaceBid(ctx bazaar.Context, db bazaar.KVStore, v *vault.Vault, auth x.Authenticator, listingID []byte, l *Listing, bidder bazaar.Address, assetID []byte, price uint64) ([]byte, *Bid, error) {
	if err := validatePlaceBid(l, assetID, price); err != nil {
		return nil, nil, err
	}
	if l.HistoricalBidCount == math.MaxUint32 {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "bid sequence exhausted")
	}

	seq := l.HistoricalBidCount
	key := e.keys.BidKey(listingID, seq)
	b := &Bid{
		User:      bidder,
		AssetID:   assetID,
		BidPrice:  price,
		State:     Pending,
		ListingID: listingID,
		Sequence:  seq,
	}
	if err := e.bids.Create(db, key, b); err != nil {
		return nil, nil, errors.Wrap(err, "cannot allocate bid")
	}

	l.RealBidCount++
	l.HistoricalBidCount++
	if err := e.listings.Put(db, listingID, l); err != nil {
		return nil, nil, err
	}

	if l.State == BidListing {
		if err := e.moveValue(ctx, db, auth, bidder, v.Address(), price); err != nil {
			return nil, nil, errors.Wrap(err, "cannot escrow bid")
		}
	}
	return key, b, nil
}

// AcceptBid sells the asset to the bidder. On a bid listing the escrowed
// bid price is paid to the owner first. All other pending bids of the
// listing are retired and the listing is closed.
func (e *Engine) AcceptBid(ctx bazaar.Context, db bazaar.KVStore, v *vault.Vault, listingID []byte, l *Listing, bidID []byte, b *Bid, caller, bidder bazaar.Address, assetID []byte) error {
	if err := validateAcceptBid(listingID, l, b, caller, bidder, assetID); err != nil {
		return err
	}

	if l.State == BidListing {
		if err := e.moveValue(ctx, db, v.Authority(), v.Address(), l.Owner, b.BidPrice); err != nil {
			return errors.Wrap(err, "cannot pay owner")
		}
	}
	if err := e.assets.Transfer(ctx, db, v.Authority(), l.AssetID, v.Address(), b.User, 1); err != nil {
		return errors.Wrap(err, "cannot deliver asset")
	}

	b.State = Accepted
	if err := e.bids.Put(db, bidID, b); err != nil {
		return err
	}
	if err := e.retirePending(ctx, db, v, listingID, l, bidID); err != nil {
		return err
	}
	l.State = Unlisted
	l.RealBidCount = 0
	return e.listings.Put(db, listingID, l)
}

// CancelBid retires a pending bid of the caller. On a bid listing its
// escrowed price is refunded.
func (e *Engine) CancelBid(ctx bazaar.Context, db bazaar.KVStore, v *vault.Vault, listingID []byte, l *Listing, bidID []byte, b *Bid, caller bazaar.Address, assetID []byte) error {
	if err := validateCancelBid(listingID, l, b, caller, assetID); err != nil {
		return err
	}
	if l.State == BidListing {
		if err := e.moveValue(ctx, db, v.Authority(), v.Address(), caller, b.BidPrice); err != nil {
			return errors.Wrap(err, "cannot refund bid")
		}
	}
	if l.RealBidCount > 0 {
		l.RealBidCount--
	}
	b.State = Inactive
	if err := e.bids.Put(db, bidID, b); err != nil {
		return err
	}
	return e.listings.Put(db, listingID, l)
}

// retirePending marks every pending bid of the listing, except skip, as
// inactive. On a bid listing the escrowed value goes back to the bidder.
func (e *Engine) retirePending(ctx bazaar.Context, db bazaar.KVStore, v *vault.Vault, listingID []byte, l *Listing, skip []byte) error {
	for seq := uint32(0); seq < l.HistoricalBidCount; seq++ {
		key := e.keys.BidKey(listingID, seq)
		if skip != nil && bazaar.Address(key).Equals(skip) {
			continue
		}
		b, err := e.bids.Get(db, key)
		if err != nil {
			return err
		}
		if b.State != Pending {
			continue
		}
		if l.State == BidListing {
			if err := e.moveValue(ctx, db, v.Authority(), v.Address(), b.User, b.BidPrice); err != nil {
				return errors.Wrapf(err, "cannot refund bid %d", seq)
			}
		}
		b.State = Inactive
		if err := e.bids.Put(db, key, b); err != nil {
			return err
		}
	}
	return nil
}

// moveValue transfers amount, a zero amount is a noop.
func (e *Engine) moveValue(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, src, dest bazaar.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	return e.value.MoveCoins(ctx, db, auth, src, dest, amount)
}
