package marketplace

import (
	"encoding/hex"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/vault"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, engine *Engine) {
	r.Handle(pathCreateListingSlot, CreateListingSlotHandler{auth, engine})
	r.Handle(pathPublish, PublishHandler{auth, engine})
	r.Handle(pathReprice, RepriceHandler{auth, engine})
	r.Handle(pathWithdraw, WithdrawHandler{auth, engine})
	r.Handle(pathPlaceBid, PlaceBidHandler{auth, engine})
	r.Handle(pathAcceptBid, AcceptBidHandler{auth, engine})
	r.Handle(pathCancelBid, CancelBidHandler{auth, engine})
}

// caller returns the address of the main signer.
func caller(ctx bazaar.Context, auth x.Authenticator) (bazaar.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer.Address(), nil
}

func hexID(id []byte) string {
	return hex.EncodeToString(id)
}

// CreateListingSlotHandler allocates a listing for an asset held by the
// signer.
type CreateListingSlotHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = CreateListingSlotHandler{}

func (h CreateListingSlotHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := h.engine.keys.ListingKey(msg.AssetID)
	if err := h.engine.listings.Has(db, key); err == nil {
		return nil, errors.Wrap(errors.ErrDuplicate, "listing slot exists")
	}
	if err := h.engine.checkHolder(db, owner, msg.AssetID); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h CreateListingSlotHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, _, err := h.engine.CreateListingSlot(db, owner, msg.AssetID)
	if err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("listing slot created", "asset", hexID(msg.AssetID), "listing", hexID(key))
	return &bazaar.DeliverResult{Data: key}, nil
}

func (h CreateListingSlotHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*CreateListingSlotMsg, bazaar.Address, error) {
	var msg CreateListingSlotMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

// PublishHandler moves an asset into the vault and opens its listing.
type PublishHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = PublishHandler{}

func (h PublishHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h PublishHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, l, v, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.Publish(ctx, db, v, h.auth, msg.ListingID, l, signer, msg.AssetID, msg.Kind, msg.Price()); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("listing published",
		"asset", hexID(msg.AssetID),
		"listing", hexID(msg.ListingID),
		"kind", msg.Kind.String(),
		"price", FormatPrice(msg.Price()))
	return &bazaar.DeliverResult{Data: msg.ListingID}, nil
}

func (h PublishHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*PublishMsg, *Listing, *vault.Vault, bazaar.Address, error) {
	var msg PublishMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	v, err := vault.Load(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	l, err := h.engine.Listing(db, msg.ListingID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := validatePublish(l, signer, msg.AssetID, msg.Kind); err != nil {
		return nil, nil, nil, nil, err
	}
	return &msg, l, v, signer, nil
}

// RepriceHandler changes the price of a listing.
type RepriceHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = RepriceHandler{}

func (h RepriceHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h RepriceHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, l, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.Reprice(db, msg.ListingID, l, signer, msg.AssetID, msg.Price()); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("listing repriced",
		"asset", hexID(msg.AssetID),
		"listing", hexID(msg.ListingID),
		"price", FormatPrice(msg.Price()))
	return &bazaar.DeliverResult{Data: msg.ListingID}, nil
}

func (h RepriceHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*RepriceMsg, *Listing, bazaar.Address, error) {
	var msg RepriceMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := h.engine.Listing(db, msg.ListingID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := validateOwnerAction(l, signer, msg.AssetID); err != nil {
		return nil, nil, nil, err
	}
	return &msg, l, signer, nil
}

// WithdrawHandler closes a listing and returns the asset to its owner.
type WithdrawHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h WithdrawHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, l, v, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	retired := l.RealBidCount
	if err := h.engine.Withdraw(ctx, db, v, msg.ListingID, l, signer, msg.AssetID); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("listing withdrawn",
		"asset", hexID(msg.AssetID),
		"listing", hexID(msg.ListingID),
		"retired", retired)
	return &bazaar.DeliverResult{Data: msg.ListingID}, nil
}

func (h WithdrawHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*WithdrawMsg, *Listing, *vault.Vault, bazaar.Address, error) {
	var msg WithdrawMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	v, err := vault.Load(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	l, err := h.engine.Listing(db, msg.ListingID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := validateOwnerAction(l, signer, msg.AssetID); err != nil {
		return nil, nil, nil, nil, err
	}
	return &msg, l, v, signer, nil
}

// PlaceBidHandler creates a bid of the signer.
type PlaceBidHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = PlaceBidHandler{}

func (h PlaceBidHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h PlaceBidHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, l, v, bidder, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, _, err := h.engine.PlaceBid(ctx, db, v, h.auth, msg.ListingID, l, bidder, msg.AssetID, msg.Price())
	if err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("bid placed",
		"asset", hexID(msg.AssetID),
		"listing", hexID(msg.ListingID),
		"bid", hexID(key),
		"price", FormatPrice(msg.Price()))
	return &bazaar.DeliverResult{Data: key}, nil
}

func (h PlaceBidHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*PlaceBidMsg, *Listing, *vault.Vault, bazaar.Address, error) {
	var msg PlaceBidMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "load msg")
	}
	bidder, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	v, err := vault.Load(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	l, err := h.engine.Listing(db, msg.ListingID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := validatePlaceBid(l, msg.AssetID, msg.Price()); err != nil {
		return nil, nil, nil, nil, err
	}
	return &msg, l, v, bidder, nil
}

// AcceptBidHandler sells the asset of a listing to a bidder.
type AcceptBidHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = AcceptBidHandler{}

func (h AcceptBidHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h AcceptBidHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, req, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.AcceptBid(ctx, db, req.vault, msg.ListingID, req.listing, msg.BidID, req.bid, req.caller, msg.Bidder, msg.AssetID); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("bid accepted",
		"asset", hexID(msg.AssetID),
		"listing", hexID(msg.ListingID),
		"bid", hexID(msg.BidID),
		"price", FormatPrice(req.bid.BidPrice))
	return &bazaar.DeliverResult{Data: msg.BidID}, nil
}

func (h AcceptBidHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*AcceptBidMsg, *bidRequest, error) {
	var msg AcceptBidMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	req, err := loadBidRequest(ctx, db, h.auth, h.engine, msg.ListingID, msg.BidID)
	if err != nil {
		return nil, nil, err
	}
	if err := validateAcceptBid(msg.ListingID, req.listing, req.bid, req.caller, msg.Bidder, msg.AssetID); err != nil {
		return nil, nil, err
	}
	return &msg, req, nil
}

// bidRequest groups the records loaded for a bid operation.
type bidRequest struct {
	listing *Listing
	bid     *Bid
	vault   *vault.Vault
	caller  bazaar.Address
}

func loadBidRequest(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, engine *Engine, listingID, bidID []byte) (*bidRequest, error) {
	signer, err := caller(ctx, auth)
	if err != nil {
		return nil, err
	}
	v, err := vault.Load(db)
	if err != nil {
		return nil, err
	}
	l, err := engine.Listing(db, listingID)
	if err != nil {
		return nil, err
	}
	b, err := engine.Bid(db, bidID)
	if err != nil {
		return nil, err
	}
	return &bidRequest{listing: l, bid: b, vault: v, caller: signer}, nil
}

// CancelBidHandler retires a bid of the signer.
type CancelBidHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ bazaar.Handler = CancelBidHandler{}

func (h CancelBidHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h CancelBidHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, req, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.CancelBid(ctx, db, req.vault, msg.ListingID, req.listing, msg.BidID, req.bid, req.caller, msg.AssetID); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Debug("bid cancelled",
		"asset", hexID(msg.AssetID),
		"listing", hexID(msg.ListingID),
		"bid", hexID(msg.BidID),
		"price", FormatPrice(req.bid.BidPrice))
	return &bazaar.DeliverResult{Data: msg.BidID}, nil
}

func (h CancelBidHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*CancelBidMsg, *bidRequest, error) {
	var msg CancelBidMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	req, err := loadBidRequest(ctx, db, h.auth, h.engine, msg.ListingID, msg.BidID)
	if err != nil {
		return nil, nil, err
	}
	if err := validateCancelBid(msg.ListingID, req.listing, req.bid, req.caller, msg.AssetID); err != nil {
		return nil, nil, err
	}
	return &msg, req, nil
}
