package marketplace

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/iov-one/bazaar/weavetest/assert"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/nft"
	"github.com/iov-one/bazaar/x/vault"
)

const initialFunds = 10 * PriceUnit

var asset = []byte("painting")

// fixture is a marketplace with one asset held by owner and two funded
// bidders.
type fixture struct {
	ctx    context.Context
	db     store.CacheableKVStore
	cash   cash.BaseController
	nft    nft.BaseController
	vault  *vault.Vault
	engine *Engine

	owner, alice, bob bazaar.Condition
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	f := &fixture{
		ctx:   context.Background(),
		db:    store.MemStore(),
		cash:  cash.NewController(cash.NewBucket()),
		nft:   nft.NewController(nft.NewBucket()),
		owner: weavetest.NewCondition(),
		alice: weavetest.NewCondition(),
		bob:   weavetest.NewCondition(),
	}
	f.engine = NewEngine(DerivedKeys{}, f.nft, f.cash)

	assert.Nil(t, gconf.Save(f.db, "vault", &vault.Configuration{Label: "rewards vault"}))
	v, err := vault.Initialize(f.db, f.cash)
	assert.Nil(t, err)
	f.vault = v

	assert.Nil(t, f.nft.Mint(f.db, asset, f.owner.Address()))
	assert.Nil(t, f.cash.IssueCoins(f.db, f.alice.Address(), initialFunds))
	assert.Nil(t, f.cash.IssueCoins(f.db, f.bob.Address(), initialFunds))
	return f
}

func (f *fixture) auth(c bazaar.Condition) *weavetest.Auth {
	return &weavetest.Auth{Signer: c}
}

// balance returns zero for addresses without an account.
func (f *fixture) balance(t testing.TB, addr bazaar.Address) uint64 {
	t.Helper()
	amount, err := f.cash.Balance(f.db, addr)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	assert.Nil(t, err)
	return amount
}

func (f *fixture) holder(t testing.TB) bazaar.Address {
	t.Helper()
	addr, err := f.nft.Owner(f.db, asset)
	assert.Nil(t, err)
	return addr
}

func (f *fixture) listing(t testing.TB, key []byte) *Listing {
	t.Helper()
	l, err := f.engine.Listing(f.db, key)
	assert.Nil(t, err)
	return l
}

func (f *fixture) bid(t testing.TB, key []byte) *Bid {
	t.Helper()
	b, err := f.engine.Bid(f.db, key)
	assert.Nil(t, err)
	return b
}

// assertCustody verifies that a listed asset is held by the vault and an
// unlisted one by its owner.
func (f *fixture) assertCustody(t testing.TB, key []byte) {
	t.Helper()
	l := f.listing(t, key)
	if l.State.Listed() {
		assert.Equal(t, f.vault.Address(), f.holder(t))
	} else {
		assert.Equal(t, l.Owner, f.holder(t))
	}
}

func (f *fixture) createListing(t testing.TB) []byte {
	t.Helper()
	key, _, err := f.engine.CreateListingSlot(f.db, f.owner.Address(), asset)
	assert.Nil(t, err)
	return key
}

func (f *fixture) publish(t testing.TB, key []byte, kind ListingState, price uint64) {
	t.Helper()
	l := f.listing(t, key)
	err := f.engine.Publish(f.ctx, f.db, f.vault, f.auth(f.owner), key, l, f.owner.Address(), asset, kind, price)
	assert.Nil(t, err)
	f.assertCustody(t, key)
}

func (f *fixture) placeBid(t testing.TB, key []byte, bidder bazaar.Condition, price uint64) []byte {
	t.Helper()
	l := f.listing(t, key)
	bidKey, _, err := f.engine.PlaceBid(f.ctx, f.db, f.vault, f.auth(bidder), key, l, bidder.Address(), asset, price)
	assert.Nil(t, err)
	return bidKey
}

func TestCreateListingSlot(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.engine.CreateListingSlot(f.db, f.alice.Address(), asset)
	assert.IsErr(t, ErrInvalidOwner, err)

	_, _, err = f.engine.CreateListingSlot(f.db, f.owner.Address(), []byte("sculpture"))
	assert.IsErr(t, errors.ErrNotFound, err)

	key, l, err := f.engine.CreateListingSlot(f.db, f.owner.Address(), asset)
	assert.Nil(t, err)
	assert.Equal(t, DerivedKeys{}.ListingKey(asset), key)
	assert.Equal(t, &Listing{Owner: f.owner.Address(), AssetID: asset, State: Unlisted}, l)
	assert.Equal(t, l, f.listing(t, key))

	_, _, err = f.engine.CreateListingSlot(f.db, f.owner.Address(), asset)
	assert.IsErr(t, errors.ErrDuplicate, err)
	f.assertCustody(t, key)
}

func TestPublish(t *testing.T) {
	cases := map[string]struct {
		caller  func(*fixture) bazaar.Condition
		asset   []byte
		kind    ListingState
		wantErr *errors.Error
	}{
		"bid listing": {
			caller: func(f *fixture) bazaar.Condition { return f.owner },
			asset:  asset,
			kind:   BidListing,
		},
		"offer listing": {
			caller: func(f *fixture) bazaar.Condition { return f.owner },
			asset:  asset,
			kind:   OfferListing,
		},
		"not the owner": {
			caller:  func(f *fixture) bazaar.Condition { return f.alice },
			asset:   asset,
			kind:    BidListing,
			wantErr: ErrInvalidOwner,
		},
		"wrong asset": {
			caller:  func(f *fixture) bazaar.Condition { return f.owner },
			asset:   []byte("sculpture"),
			kind:    BidListing,
			wantErr: ErrInvalidAsset,
		},
		"unlisted kind": {
			caller:  func(f *fixture) bazaar.Condition { return f.owner },
			asset:   asset,
			kind:    Unlisted,
			wantErr: ErrInvalidState,
		},
		"unknown kind": {
			caller:  func(f *fixture) bazaar.Condition { return f.owner },
			asset:   asset,
			kind:    ListingState(3),
			wantErr: ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			key := f.createListing(t)
			caller := tc.caller(f)

			l := f.listing(t, key)
			err := f.engine.Publish(f.ctx, f.db, f.vault, f.auth(caller), key, l, caller.Address(), tc.asset, tc.kind, 2500000000)
			assert.IsErr(t, tc.wantErr, err)
			f.assertCustody(t, key)

			got := f.listing(t, key)
			if tc.wantErr != nil {
				assert.Equal(t, Unlisted, got.State)
				assert.Equal(t, f.owner.Address(), f.holder(t))
				return
			}
			assert.Equal(t, tc.kind, got.State)
			assert.Equal(t, uint64(2500000000), got.Price)
			assert.Equal(t, f.vault.Address(), f.holder(t))
		})
	}
}

func TestPublishTwice(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, BidListing, PriceUnit)

	l := f.listing(t, key)
	err := f.engine.Publish(f.ctx, f.db, f.vault, f.auth(f.owner), key, l, f.owner.Address(), asset, OfferListing, PriceUnit)
	assert.IsErr(t, ErrInvalidState, err)
	assert.Equal(t, BidListing, f.listing(t, key).State)
}

func TestReprice(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)

	l := f.listing(t, key)
	err := f.engine.Reprice(f.db, key, l, f.owner.Address(), asset, PriceUnit)
	assert.IsErr(t, ErrInvalidState, err)

	f.publish(t, key, BidListing, PriceUnit)

	l = f.listing(t, key)
	err = f.engine.Reprice(f.db, key, l, f.alice.Address(), asset, 1)
	assert.IsErr(t, ErrInvalidOwner, err)

	l = f.listing(t, key)
	err = f.engine.Reprice(f.db, key, l, f.owner.Address(), []byte("sculpture"), 1)
	assert.IsErr(t, ErrInvalidAsset, err)

	l = f.listing(t, key)
	assert.Nil(t, f.engine.Reprice(f.db, key, l, f.owner.Address(), asset, 4*PriceUnit))
	got := f.listing(t, key)
	assert.Equal(t, uint64(4*PriceUnit), got.Price)
	assert.Equal(t, BidListing, got.State)
	f.assertCustody(t, key)
}

func TestPlaceBid(t *testing.T) {
	cases := map[string]struct {
		kind        ListingState
		asset       []byte
		price       uint64
		wantErr     *errors.Error
		wantEscrow  uint64
		wantBalance uint64
	}{
		"bid listing escrows the price": {
			kind:        BidListing,
			asset:       asset,
			price:       3 * PriceUnit,
			wantEscrow:  3 * PriceUnit,
			wantBalance: initialFunds - 3*PriceUnit,
		},
		"offer listing moves no value": {
			kind:        OfferListing,
			asset:       asset,
			price:       3 * PriceUnit,
			wantBalance: initialFunds,
		},
		"bid at the listed price": {
			kind:        BidListing,
			asset:       asset,
			price:       2500000000,
			wantEscrow:  2500000000,
			wantBalance: initialFunds - 2500000000,
		},
		"bid below the listed price": {
			kind:        BidListing,
			asset:       asset,
			price:       2499999999,
			wantErr:     ErrUnacceptablePrice,
			wantBalance: initialFunds,
		},
		"wrong asset": {
			kind:        BidListing,
			asset:       []byte("sculpture"),
			price:       3 * PriceUnit,
			wantErr:     ErrInvalidAsset,
			wantBalance: initialFunds,
		},
		"unlisted": {
			kind:        Unlisted,
			asset:       asset,
			price:       3 * PriceUnit,
			wantErr:     ErrInvalidState,
			wantBalance: initialFunds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			key := f.createListing(t)
			if tc.kind != Unlisted {
				f.publish(t, key, tc.kind, 2500000000)
			}

			l := f.listing(t, key)
			bidKey, bid, err := f.engine.PlaceBid(f.ctx, f.db, f.vault, f.auth(f.alice), key, l, f.alice.Address(), tc.asset, tc.price)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantBalance, f.balance(t, f.alice.Address()))
			assert.Equal(t, tc.wantEscrow, f.balance(t, f.vault.Address()))
			f.assertCustody(t, key)
			if tc.wantErr != nil {
				assert.Equal(t, uint32(0), f.listing(t, key).HistoricalBidCount)
				return
			}

			assert.Equal(t, DerivedKeys{}.BidKey(key, 0), bidKey)
			want := &Bid{
				User:      f.alice.Address(),
				AssetID:   asset,
				BidPrice:  tc.price,
				State:     Pending,
				ListingID: key,
				Sequence:  0,
			}
			assert.Equal(t, want, bid)
			assert.Equal(t, want, f.bid(t, bidKey))

			got := f.listing(t, key)
			assert.Equal(t, uint32(1), got.RealBidCount)
			assert.Equal(t, uint32(1), got.HistoricalBidCount)
		})
	}
}

func TestPlaceBidInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, BidListing, PriceUnit)

	l := f.listing(t, key)
	_, _, err := f.engine.PlaceBid(f.ctx, f.db, f.vault, f.auth(f.alice), key, l, f.alice.Address(), asset, initialFunds+1)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
}

func TestBidSequence(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, OfferListing, PriceUnit)

	first := f.placeBid(t, key, f.alice, PriceUnit)
	second := f.placeBid(t, key, f.bob, PriceUnit)
	third := f.placeBid(t, key, f.alice, 2*PriceUnit)

	assert.Equal(t, uint32(1), f.bid(t, second).Sequence)
	assert.Equal(t, uint32(2), f.bid(t, third).Sequence)

	l := f.listing(t, key)
	assert.Nil(t, f.engine.CancelBid(f.ctx, f.db, f.vault, key, l, first, f.bid(t, first), f.alice.Address(), asset))

	got := f.listing(t, key)
	assert.Equal(t, uint32(2), got.RealBidCount)
	assert.Equal(t, uint32(3), got.HistoricalBidCount)

	// A cancelled bid does not free its sequence.
	fourth := f.placeBid(t, key, f.bob, PriceUnit)
	assert.Equal(t, uint32(3), f.bid(t, fourth).Sequence)
	assert.Equal(t, Inactive, f.bid(t, first).State)
}

// TestBidListingSale walks the full bid listing cycle: an asset listed at
// 2.5 receives a bid of 3, the owner accepts it.
func TestBidListingSale(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, BidListing, ComposePrice(2, 500000000))

	winner := f.placeBid(t, key, f.alice, ComposePrice(3, 0))
	loser := f.placeBid(t, key, f.bob, ComposePrice(2, 600000000))
	assert.Equal(t, uint64(5600000000), f.balance(t, f.vault.Address()))

	l := f.listing(t, key)
	b := f.bid(t, winner)
	err := f.engine.AcceptBid(f.ctx, f.db, f.vault, key, l, winner, b, f.owner.Address(), f.alice.Address(), asset)
	assert.Nil(t, err)

	assert.Equal(t, uint64(0), f.balance(t, f.vault.Address()))
	assert.Equal(t, uint64(3*PriceUnit), f.balance(t, f.owner.Address()))
	assert.Equal(t, uint64(initialFunds-3*PriceUnit), f.balance(t, f.alice.Address()))
	assert.Equal(t, uint64(initialFunds), f.balance(t, f.bob.Address()))
	assert.Equal(t, f.alice.Address(), f.holder(t))

	got := f.listing(t, key)
	assert.Equal(t, Unlisted, got.State)
	assert.Equal(t, uint32(0), got.RealBidCount)
	assert.Equal(t, uint32(2), got.HistoricalBidCount)
	assert.Equal(t, Accepted, f.bid(t, winner).State)
	assert.Equal(t, Inactive, f.bid(t, loser).State)

	// The owner no longer holds the asset, so the listing cannot be
	// published again.
	err = f.engine.Publish(f.ctx, f.db, f.vault, f.auth(f.owner), key, got, f.owner.Address(), asset, BidListing, PriceUnit)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
}

func TestOfferListingSale(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, OfferListing, PriceUnit)

	winner := f.placeBid(t, key, f.bob, 2*PriceUnit)
	f.placeBid(t, key, f.alice, 3*PriceUnit)

	l := f.listing(t, key)
	b := f.bid(t, winner)
	err := f.engine.AcceptBid(f.ctx, f.db, f.vault, key, l, winner, b, f.owner.Address(), f.bob.Address(), asset)
	assert.Nil(t, err)

	assert.Equal(t, f.bob.Address(), f.holder(t))
	assert.Equal(t, uint64(0), f.balance(t, f.owner.Address()))
	assert.Equal(t, uint64(initialFunds), f.balance(t, f.bob.Address()))
	assert.Equal(t, uint64(initialFunds), f.balance(t, f.alice.Address()))
	assert.Equal(t, Unlisted, f.listing(t, key).State)
}

func TestAcceptBidValidation(t *testing.T) {
	cases := map[string]struct {
		caller  func(*fixture) bazaar.Address
		bidder  func(*fixture) bazaar.Address
		asset   []byte
		wantErr *errors.Error
	}{
		"not the owner": {
			caller:  func(f *fixture) bazaar.Address { return f.alice.Address() },
			bidder:  func(f *fixture) bazaar.Address { return f.alice.Address() },
			asset:   asset,
			wantErr: ErrInvalidOwner,
		},
		"wrong bidder": {
			caller:  func(f *fixture) bazaar.Address { return f.owner.Address() },
			bidder:  func(f *fixture) bazaar.Address { return f.bob.Address() },
			asset:   asset,
			wantErr: ErrInvalidUser,
		},
		"wrong asset": {
			caller:  func(f *fixture) bazaar.Address { return f.owner.Address() },
			bidder:  func(f *fixture) bazaar.Address { return f.alice.Address() },
			asset:   []byte("sculpture"),
			wantErr: ErrInvalidAsset,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			key := f.createListing(t)
			f.publish(t, key, BidListing, PriceUnit)
			bidKey := f.placeBid(t, key, f.alice, PriceUnit)

			l := f.listing(t, key)
			b := f.bid(t, bidKey)
			err := f.engine.AcceptBid(f.ctx, f.db, f.vault, key, l, bidKey, b, tc.caller(f), tc.bidder(f), tc.asset)
			assert.IsErr(t, tc.wantErr, err)

			assert.Equal(t, Pending, f.bid(t, bidKey).State)
			assert.Equal(t, BidListing, f.listing(t, key).State)
			assert.Equal(t, uint64(PriceUnit), f.balance(t, f.vault.Address()))
			f.assertCustody(t, key)
		})
	}
}

func TestAcceptCancelledBid(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, BidListing, PriceUnit)
	bidKey := f.placeBid(t, key, f.alice, PriceUnit)
	f.placeBid(t, key, f.bob, PriceUnit)

	l := f.listing(t, key)
	assert.Nil(t, f.engine.CancelBid(f.ctx, f.db, f.vault, key, l, bidKey, f.bid(t, bidKey), f.alice.Address(), asset))

	// The vault only holds the escrow of the other bid.
	l = f.listing(t, key)
	err := f.engine.AcceptBid(f.ctx, f.db, f.vault, key, l, bidKey, f.bid(t, bidKey), f.owner.Address(), f.alice.Address(), asset)
	assert.IsErr(t, ErrInvalidState, err)
	assert.Equal(t, uint64(PriceUnit), f.balance(t, f.vault.Address()))
}

func TestBidOfAnotherListing(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)
	f.publish(t, key, BidListing, PriceUnit)
	bidKey := f.placeBid(t, key, f.alice, PriceUnit)

	foreign := f.bid(t, bidKey)
	foreign.ListingID = []byte("another listing")

	err := f.engine.AcceptBid(f.ctx, f.db, f.vault, key, f.listing(t, key), bidKey, foreign, f.owner.Address(), f.alice.Address(), asset)
	assert.IsErr(t, ErrInvalidState, err)
	err = f.engine.CancelBid(f.ctx, f.db, f.vault, key, f.listing(t, key), bidKey, foreign, f.alice.Address(), asset)
	assert.IsErr(t, ErrInvalidState, err)

	assert.Equal(t, Pending, f.bid(t, bidKey).State)
	assert.Equal(t, uint64(PriceUnit), f.balance(t, f.vault.Address()))
	f.assertCustody(t, key)
}

func TestCancelBid(t *testing.T) {
	cases := map[string]struct {
		kind        ListingState
		caller      func(*fixture) bazaar.Address
		asset       []byte
		wantErr     *errors.Error
		wantBalance uint64
	}{
		"refund on a bid listing": {
			kind:        BidListing,
			caller:      func(f *fixture) bazaar.Address { return f.alice.Address() },
			asset:       asset,
			wantBalance: initialFunds,
		},
		"nothing to refund on an offer listing": {
			kind:        OfferListing,
			caller:      func(f *fixture) bazaar.Address { return f.alice.Address() },
			asset:       asset,
			wantBalance: initialFunds,
		},
		"not the bidder": {
			kind:        BidListing,
			caller:      func(f *fixture) bazaar.Address { return f.bob.Address() },
			asset:       asset,
			wantErr:     ErrInvalidUser,
			wantBalance: initialFunds - 2*PriceUnit,
		},
		"wrong asset": {
			kind:        BidListing,
			caller:      func(f *fixture) bazaar.Address { return f.alice.Address() },
			asset:       []byte("sculpture"),
			wantErr:     ErrInvalidAsset,
			wantBalance: initialFunds - 2*PriceUnit,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			key := f.createListing(t)
			f.publish(t, key, tc.kind, PriceUnit)
			bidKey := f.placeBid(t, key, f.alice, 2*PriceUnit)

			l := f.listing(t, key)
			err := f.engine.CancelBid(f.ctx, f.db, f.vault, key, l, bidKey, f.bid(t, bidKey), tc.caller(f), tc.asset)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantBalance, f.balance(t, f.alice.Address()))
			f.assertCustody(t, key)

			got := f.listing(t, key)
			if tc.wantErr != nil {
				assert.Equal(t, Pending, f.bid(t, bidKey).State)
				assert.Equal(t, uint32(1), got.RealBidCount)
				return
			}
			assert.Equal(t, Inactive, f.bid(t, bidKey).State)
			assert.Equal(t, uint32(0), got.RealBidCount)
			assert.Equal(t, uint64(0), f.balance(t, f.vault.Address()))

			// A retired bid cannot be refunded twice.
			err = f.engine.CancelBid(f.ctx, f.db, f.vault, key, got, bidKey, f.bid(t, bidKey), f.alice.Address(), asset)
			assert.IsErr(t, ErrInvalidState, err)
		})
	}
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t)
	key := f.createListing(t)

	l := f.listing(t, key)
	err := f.engine.Withdraw(f.ctx, f.db, f.vault, key, l, f.owner.Address(), asset)
	assert.IsErr(t, ErrInvalidState, err)

	f.publish(t, key, BidListing, PriceUnit)
	first := f.placeBid(t, key, f.alice, 2*PriceUnit)
	second := f.placeBid(t, key, f.bob, 3*PriceUnit)
	assert.Equal(t, uint64(5*PriceUnit), f.balance(t, f.vault.Address()))

	l = f.listing(t, key)
	err = f.engine.Withdraw(f.ctx, f.db, f.vault, key, l, f.alice.Address(), asset)
	assert.IsErr(t, ErrInvalidOwner, err)

	l = f.listing(t, key)
	err = f.engine.Withdraw(f.ctx, f.db, f.vault, key, l, f.owner.Address(), []byte("sculpture"))
	assert.IsErr(t, ErrInvalidAsset, err)

	l = f.listing(t, key)
	assert.Nil(t, f.engine.Withdraw(f.ctx, f.db, f.vault, key, l, f.owner.Address(), asset))
	f.assertCustody(t, key)

	got := f.listing(t, key)
	assert.Equal(t, Unlisted, got.State)
	assert.Equal(t, uint32(0), got.RealBidCount)
	assert.Equal(t, uint32(2), got.HistoricalBidCount)
	assert.Equal(t, f.owner.Address(), f.holder(t))
	assert.Equal(t, Inactive, f.bid(t, first).State)
	assert.Equal(t, Inactive, f.bid(t, second).State)
	assert.Equal(t, uint64(0), f.balance(t, f.vault.Address()))
	assert.Equal(t, uint64(initialFunds), f.balance(t, f.alice.Address()))
	assert.Equal(t, uint64(initialFunds), f.balance(t, f.bob.Address()))

	// The slot is reused by the next cycle and bid sequences continue.
	f.publish(t, key, OfferListing, PriceUnit)
	third := f.placeBid(t, key, f.alice, PriceUnit)
	assert.Equal(t, uint32(2), f.bid(t, third).Sequence)
}
