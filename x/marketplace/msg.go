package marketplace

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathCreateListingSlot = "marketplace/create_listing_slot"
	pathPublish           = "marketplace/publish"
	pathReprice           = "marketplace/reprice"
	pathWithdraw          = "marketplace/withdraw"
	pathPlaceBid          = "marketplace/place_bid"
	pathAcceptBid         = "marketplace/accept_bid"
	pathCancelBid         = "marketplace/cancel_bid"
)

var (
	_ bazaar.Msg = (*CreateListingSlotMsg)(nil)
	_ bazaar.Msg = (*PublishMsg)(nil)
	_ bazaar.Msg = (*RepriceMsg)(nil)
	_ bazaar.Msg = (*WithdrawMsg)(nil)
	_ bazaar.Msg = (*PlaceBidMsg)(nil)
	_ bazaar.Msg = (*AcceptBidMsg)(nil)
	_ bazaar.Msg = (*CancelBidMsg)(nil)
)

func (*CreateListingSlotMsg) Path() string { return pathCreateListingSlot }
func (*PublishMsg) Path() string           { return pathPublish }
func (*RepriceMsg) Path() string           { return pathReprice }
func (*WithdrawMsg) Path() string          { return pathWithdraw }
func (*PlaceBidMsg) Path() string          { return pathPlaceBid }
func (*AcceptBidMsg) Path() string         { return pathAcceptBid }
func (*CancelBidMsg) Path() string         { return pathCancelBid }

func (m *CreateListingSlotMsg) Validate() error {
	return validateID("asset id", m.AssetID)
}

func (m *PublishMsg) Validate() error {
	if err := validateID("listing id", m.ListingID); err != nil {
		return err
	}
	if err := validateID("asset id", m.AssetID); err != nil {
		return err
	}
	return validatePriceLow(m.PriceLow)
}

// Price returns the composed listing price.
func (m *PublishMsg) Price() uint64 {
	return ComposePrice(m.PriceHigh, m.PriceLow)
}

func (m *RepriceMsg) Validate() error {
	if err := validateID("listing id", m.ListingID); err != nil {
		return err
	}
	if err := validateID("asset id", m.AssetID); err != nil {
		return err
	}
	return validatePriceLow(m.PriceLow)
}

// Price returns the composed listing price.
func (m *RepriceMsg) Price() uint64 {
	return ComposePrice(m.PriceHigh, m.PriceLow)
}

func (m *WithdrawMsg) Validate() error {
	if err := validateID("listing id", m.ListingID); err != nil {
		return err
	}
	return validateID("asset id", m.AssetID)
}

func (m *PlaceBidMsg) Validate() error {
	if err := validateID("listing id", m.ListingID); err != nil {
		return err
	}
	if err := validateID("asset id", m.AssetID); err != nil {
		return err
	}
	return validatePriceLow(m.PriceLow)
}

// Price returns the composed bid price.
func (m *PlaceBidMsg) Price() uint64 {
	return ComposePrice(m.PriceHigh, m.PriceLow)
}

func (m *AcceptBidMsg) Validate() error {
	if err := validateID("listing id", m.ListingID); err != nil {
		return err
	}
	if err := validateID("bid id", m.BidID); err != nil {
		return err
	}
	if err := validateID("asset id", m.AssetID); err != nil {
		return err
	}
	if err := m.Bidder.Validate(); err != nil {
		return errors.Wrap(err, "bidder")
	}
	return nil
}

func (m *CancelBidMsg) Validate() error {
	if err := validateID("listing id", m.ListingID); err != nil {
		return err
	}
	if err := validateID("bid id", m.BidID); err != nil {
		return err
	}
	return validateID("asset id", m.AssetID)
}

func validateID(name string, id []byte) error {
	if len(id) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s is required", name)
	}
	return nil
}

// validatePriceLow ensures each price has a single encoding.
func validatePriceLow(low uint32) error {
	if low >= PriceUnit {
		return errors.Wrapf(errors.ErrInput, "price low %d must be below %d", low, PriceUnit)
	}
	return nil
}
