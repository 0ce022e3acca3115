package marketplace

import (
	"bytes"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

func checkOwner(l *Listing, caller bazaar.Address) error {
	if !l.Owner.Equals(caller) {
		return errors.Wrapf(ErrInvalidOwner, "%s is not the listing owner", caller)
	}
	return nil
}

// checkAsset compares the asset a record refers to with the asset of the request.
func checkAsset(recorded, requested []byte) error {
	if !bytes.Equal(recorded, requested) {
		return errors.Wrapf(ErrInvalidAsset, "want %X, got %X", recorded, requested)
	}
	return nil
}

func checkListed(l *Listing) error {
	if !l.State.Listed() {
		return errors.Wrapf(ErrInvalidState, "listing is %s", l.State)
	}
	return nil
}

func checkUnlisted(l *Listing) error {
	if l.State != Unlisted {
		return errors.Wrapf(ErrInvalidState, "listing is already %s", l.State)
	}
	return nil
}

func checkKind(kind ListingState) error {
	if !kind.Listed() {
		return errors.Wrapf(ErrInvalidState, "cannot publish as %s", kind)
	}
	return nil
}

func checkUser(b *Bid, user bazaar.Address) error {
	if !b.User.Equals(user) {
		return errors.Wrapf(ErrInvalidUser, "bid was placed by %s", b.User)
	}
	return nil
}

func checkPending(b *Bid) error {
	if b.State != Pending {
		return errors.Wrapf(ErrInvalidState, "bid is %s", b.State)
	}
	return nil
}

func checkPrice(l *Listing, price uint64) error {
	if price < l.Price {
		return errors.Wrapf(ErrUnacceptablePrice, "%s is below %s", FormatPrice(price), FormatPrice(l.Price))
	}
	return nil
}

func validatePublish(l *Listing, caller bazaar.Address, assetID []byte, kind ListingState) error {
	if err := checkOwner(l, caller); err != nil {
		return err
	}
	if err := checkAsset(l.AssetID, assetID); err != nil {
		return err
	}
	if err := checkKind(kind); err != nil {
		return err
	}
	return checkUnlisted(l)
}

// validateOwnerAction covers Reprice and Withdraw.
func validateOwnerAction(l *Listing, caller bazaar.Address, assetID []byte) error {
	if err := checkOwner(l, caller); err != nil {
		return err
	}
	if err := checkAsset(l.AssetID, assetID); err != nil {
		return err
	}
	return checkListed(l)
}

func validatePlaceBid(l *Listing, assetID []byte, price uint64) error {
	if err := checkAsset(l.AssetID, assetID); err != nil {
		return err
	}
	if err := checkListed(l); err != nil {
		return err
	}
	return checkPrice(l, price)
}

// checkBidListing makes sure the bid was placed on the listing at listingID.
func checkBidListing(b *Bid, listingID []byte) error {
	if !bytes.Equal(b.ListingID, listingID) {
		return errors.Wrapf(ErrInvalidState, "bid belongs to listing %X", b.ListingID)
	}
	return nil
}

func validateAcceptBid(listingID []byte, l *Listing, b *Bid, caller, bidder bazaar.Address, assetID []byte) error {
	if err := checkBidListing(b, listingID); err != nil {
		return err
	}
	if err := checkOwner(l, caller); err != nil {
		return err
	}
	if err := checkAsset(l.AssetID, assetID); err != nil {
		return err
	}
	if err := checkListed(l); err != nil {
		return err
	}
	if err := checkUser(b, bidder); err != nil {
		return err
	}
	if err := checkAsset(b.AssetID, assetID); err != nil {
		return err
	}
	return checkPending(b)
}

func validateCancelBid(listingID []byte, l *Listing, b *Bid, caller bazaar.Address, assetID []byte) error {
	if err := checkBidListing(b, listingID); err != nil {
		return err
	}
	if err := checkAsset(l.AssetID, assetID); err != nil {
		return err
	}
	if err := checkUser(b, caller); err != nil {
		return err
	}
	if err := checkAsset(b.AssetID, assetID); err != nil {
		return err
	}
	return checkPending(b)
}
