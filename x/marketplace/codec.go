package marketplace

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
)

// ListingState describes whether a listing holds its asset in the vault,
// and under which sale rule.
type ListingState int32

const (
	Unlisted     ListingState = 0
	BidListing   ListingState = 1
	OfferListing ListingState = 2
)

// BidState is the lifecycle state of a single bid.
type BidState int32

const (
	Inactive BidState = 0
	Pending  BidState = 1
	Accepted BidState = 2
)

// Listing is the sale slot of a single asset. The slot is reused across
// listing cycles.
type Listing struct {
	Owner   bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	AssetID []byte         `protobuf:"bytes,2,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Price   uint64         `protobuf:"varint,3,opt,name=price,proto3" json:"price,omitempty"`
	State   ListingState   `protobuf:"varint,4,opt,name=state,proto3" json:"state,omitempty"`
	// RealBidCount is the number of Pending bids.
	RealBidCount uint32 `protobuf:"varint,5,opt,name=real_bid_count,json=realBidCount,proto3" json:"real_bid_count,omitempty"`
	// HistoricalBidCount is the number of bids ever placed. It is
	// the sequence of the next bid.
	HistoricalBidCount uint32 `protobuf:"varint,6,opt,name=historical_bid_count,json=historicalBidCount,proto3" json:"historical_bid_count,omitempty"`
}

// Bid is a purchase offer for the asset of a listing.
type Bid struct {
	User      bazaar.Address `protobuf:"bytes,1,opt,name=user,proto3" json:"user,omitempty"`
	AssetID   []byte         `protobuf:"bytes,2,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	BidPrice  uint64         `protobuf:"varint,3,opt,name=bid_price,json=bidPrice,proto3" json:"bid_price,omitempty"`
	State     BidState       `protobuf:"varint,4,opt,name=state,proto3" json:"state,omitempty"`
	ListingID []byte         `protobuf:"bytes,5,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	Sequence  uint32         `protobuf:"varint,6,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// CreateListingSlotMsg allocates the listing slot of an asset held by
// the signer.
type CreateListingSlotMsg struct {
	AssetID []byte `protobuf:"bytes,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
}

// PublishMsg moves the asset into the vault and opens the listing.
type PublishMsg struct {
	ListingID []byte       `protobuf:"bytes,1,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	AssetID   []byte       `protobuf:"bytes,2,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Kind      ListingState `protobuf:"varint,3,opt,name=kind,proto3" json:"kind,omitempty"`
	PriceHigh uint32       `protobuf:"varint,4,opt,name=price_high,json=priceHigh,proto3" json:"price_high,omitempty"`
	PriceLow  uint32       `protobuf:"varint,5,opt,name=price_low,json=priceLow,proto3" json:"price_low,omitempty"`
}

// RepriceMsg changes the price of a listed asset.
type RepriceMsg struct {
	ListingID []byte `protobuf:"bytes,1,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	AssetID   []byte `protobuf:"bytes,2,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	PriceHigh uint32 `protobuf:"varint,3,opt,name=price_high,json=priceHigh,proto3" json:"price_high,omitempty"`
	PriceLow  uint32 `protobuf:"varint,4,opt,name=price_low,json=priceLow,proto3" json:"price_low,omitempty"`
}

// WithdrawMsg returns the asset to the owner and closes the listing.
type WithdrawMsg struct {
	ListingID []byte `protobuf:"bytes,1,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	AssetID   []byte `protobuf:"bytes,2,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
}

// PlaceBidMsg offers to buy a listed asset.
type PlaceBidMsg struct {
	ListingID []byte `protobuf:"bytes,1,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	AssetID   []byte `protobuf:"bytes,2,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	PriceHigh uint32 `protobuf:"varint,3,opt,name=price_high,json=priceHigh,proto3" json:"price_high,omitempty"`
	PriceLow  uint32 `protobuf:"varint,4,opt,name=price_low,json=priceLow,proto3" json:"price_low,omitempty"`
}

// AcceptBidMsg sells the asset to the author of a bid.
type AcceptBidMsg struct {
	ListingID []byte         `protobuf:"bytes,1,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	BidID     []byte         `protobuf:"bytes,2,opt,name=bid_id,json=bidId,proto3" json:"bid_id,omitempty"`
	AssetID   []byte         `protobuf:"bytes,3,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Bidder    bazaar.Address `protobuf:"bytes,4,opt,name=bidder,proto3" json:"bidder,omitempty"`
}

// CancelBidMsg retires a pending bid of the signer.
type CancelBidMsg struct {
	ListingID []byte `protobuf:"bytes,1,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	BidID     []byte `protobuf:"bytes,2,opt,name=bid_id,json=bidId,proto3" json:"bid_id,omitempty"`
	AssetID   []byte `protobuf:"bytes,3,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
}

type listingPB Listing
type bidPB Bid
type createListingSlotMsgPB CreateListingSlotMsg
type publishMsgPB PublishMsg
type repriceMsgPB RepriceMsg
type withdrawMsgPB WithdrawMsg
type placeBidMsgPB PlaceBidMsg
type acceptBidMsgPB AcceptBidMsg
type cancelBidMsgPB CancelBidMsg

func (m *listingPB) Reset()         { *m = listingPB{} }
func (m *listingPB) String() string { return proto.CompactTextString(m) }
func (*listingPB) ProtoMessage()    {}

func (m *bidPB) Reset()         { *m = bidPB{} }
func (m *bidPB) String() string { return proto.CompactTextString(m) }
func (*bidPB) ProtoMessage()    {}

func (m *createListingSlotMsgPB) Reset()         { *m = createListingSlotMsgPB{} }
func (m *createListingSlotMsgPB) String() string { return proto.CompactTextString(m) }
func (*createListingSlotMsgPB) ProtoMessage()    {}

func (m *publishMsgPB) Reset()         { *m = publishMsgPB{} }
func (m *publishMsgPB) String() string { return proto.CompactTextString(m) }
func (*publishMsgPB) ProtoMessage()    {}

func (m *repriceMsgPB) Reset()         { *m = repriceMsgPB{} }
func (m *repriceMsgPB) String() string { return proto.CompactTextString(m) }
func (*repriceMsgPB) ProtoMessage()    {}

func (m *withdrawMsgPB) Reset()         { *m = withdrawMsgPB{} }
func (m *withdrawMsgPB) String() string { return proto.CompactTextString(m) }
func (*withdrawMsgPB) ProtoMessage()    {}

func (m *placeBidMsgPB) Reset()         { *m = placeBidMsgPB{} }
func (m *placeBidMsgPB) String() string { return proto.CompactTextString(m) }
func (*placeBidMsgPB) ProtoMessage()    {}

func (m *acceptBidMsgPB) Reset()         { *m = acceptBidMsgPB{} }
func (m *acceptBidMsgPB) String() string { return proto.CompactTextString(m) }
func (*acceptBidMsgPB) ProtoMessage()    {}

func (m *cancelBidMsgPB) Reset()         { *m = cancelBidMsgPB{} }
func (m *cancelBidMsgPB) String() string { return proto.CompactTextString(m) }
func (*cancelBidMsgPB) ProtoMessage()    {}

func (m *Listing) Marshal() ([]byte, error)   { return proto.Marshal((*listingPB)(m)) }
func (m *Listing) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*listingPB)(m)) }

func (m *Bid) Marshal() ([]byte, error)   { return proto.Marshal((*bidPB)(m)) }
func (m *Bid) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*bidPB)(m)) }

func (m *CreateListingSlotMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createListingSlotMsgPB)(m))
}
func (m *CreateListingSlotMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createListingSlotMsgPB)(m))
}

func (m *PublishMsg) Marshal() ([]byte, error)   { return proto.Marshal((*publishMsgPB)(m)) }
func (m *PublishMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*publishMsgPB)(m)) }

func (m *RepriceMsg) Marshal() ([]byte, error)   { return proto.Marshal((*repriceMsgPB)(m)) }
func (m *RepriceMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*repriceMsgPB)(m)) }

func (m *WithdrawMsg) Marshal() ([]byte, error)   { return proto.Marshal((*withdrawMsgPB)(m)) }
func (m *WithdrawMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*withdrawMsgPB)(m)) }

func (m *PlaceBidMsg) Marshal() ([]byte, error)   { return proto.Marshal((*placeBidMsgPB)(m)) }
func (m *PlaceBidMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*placeBidMsgPB)(m)) }

func (m *AcceptBidMsg) Marshal() ([]byte, error)   { return proto.Marshal((*acceptBidMsgPB)(m)) }
func (m *AcceptBidMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*acceptBidMsgPB)(m)) }

func (m *CancelBidMsg) Marshal() ([]byte, error)   { return proto.Marshal((*cancelBidMsgPB)(m)) }
func (m *CancelBidMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*cancelBidMsgPB)(m)) }
