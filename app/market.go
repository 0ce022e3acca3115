package app

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/marketplace"
	"github.com/iov-one/bazaar/x/nft"
	"github.com/iov-one/bazaar/x/sigs"
	"github.com/iov-one/bazaar/x/utils"
	"github.com/iov-one/bazaar/x/vault"
	"github.com/tendermint/tendermint/libs/log"
)

// Market runs transactions against a single store. Deliver, Check and
// Commit are serialized, so there is only ever one writer.
type Market struct {
	mu sync.Mutex

	debug       bool
	logger      log.Logger
	chainID     string
	store       *CommitStore
	handler     bazaar.Handler
	initializer bazaar.Initializer
}

// NewMarket wires all extensions on top of the given store. A store that
// was already initialized must carry the same chain id.
func NewMarket(chainID string, kv bazaar.CommitKVStore, logger log.Logger) (*Market, error) {
	if !bazaar.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	store, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	stored, err := loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	if stored != "" && stored != chainID {
		return nil, errors.Wrapf(errors.ErrState, "store belongs to chain %q", stored)
	}
	return &Market{
		logger:  logger.With("module", "market"),
		chainID: chainID,
		store:   store,
		handler: Stack(Routes()),
		initializer: ChainInitializers(
			cash.Initializer{},
			nft.Initializer{},
			vault.Initializer{},
		),
	}, nil
}

// Routes returns a router with the handlers of all extensions registered.
func Routes() *Router {
	auth := sigs.Authenticate{}
	coins := cash.NewController(cash.NewBucket())
	assets := nft.NewController(nft.NewBucket())
	engine := marketplace.NewEngine(marketplace.DerivedKeys{}, assets, coins)

	r := NewRouter()
	cash.RegisterRoutes(r, auth, coins)
	nft.RegisterRoutes(r, auth, assets)
	vault.RegisterRoutes(r, auth, coins)
	marketplace.RegisterRoutes(r, auth, engine)
	return r
}

// Stack wraps the handler with the middleware every transaction passes
// through.
func Stack(h bazaar.Handler) bazaar.Handler {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(h)
}

// InitChain stores the genesis state and commits it as the first version.
func (m *Market) InitChain(gen *Genesis) (bazaar.CommitID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen.ChainID != m.chainID {
		return bazaar.CommitID{}, errors.Wrapf(errors.ErrInput, "genesis for chain %q", gen.ChainID)
	}
	db := m.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		return bazaar.CommitID{}, err
	}
	if err := m.initializer.FromGenesis(gen.AppState, db); err != nil {
		return bazaar.CommitID{}, errors.Wrap(err, "genesis")
	}
	return m.commit()
}

// SetDebug controls whether DeliverTx and CheckTx return errors
// unredacted. Leave it off for anything facing clients.
func (m *Market) SetDebug(debug bool) {
	m.mu.Lock()
	m.debug = debug
	m.mu.Unlock()
}

// DeliverTx decodes and executes a transaction. Its changes become part of
// the next commit.
func (m *Market) DeliverTx(raw []byte) (*bazaar.DeliverResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.deliver(raw)
	return res, m.redact(err)
}

func (m *Market) deliver(raw []byte) (*bazaar.DeliverResult, error) {
	tx, err := DecodeTx(raw)
	if err != nil {
		return nil, err
	}
	ctx, err := m.context()
	if err != nil {
		return nil, err
	}
	return m.handler.Deliver(ctx, m.store.DeliverStore(), tx)
}

// CheckTx runs a transaction against the committed state and drops every
// change it makes.
func (m *Market) CheckTx(raw []byte) (*bazaar.CheckResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.check(raw)
	return res, m.redact(err)
}

func (m *Market) check(raw []byte) (*bazaar.CheckResult, error) {
	tx, err := DecodeTx(raw)
	if err != nil {
		return nil, err
	}
	ctx, err := m.context()
	if err != nil {
		return nil, err
	}
	db := m.store.CheckStore()
	defer db.Discard()
	return m.handler.Check(ctx, db, tx)
}

// Commit persists all delivered transactions.
func (m *Market) Commit() (bazaar.CommitID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commit()
}

func (m *Market) commit() (bazaar.CommitID, error) {
	id, err := m.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	m.logger.Info("commit", "height", id.Version, "hash", hex.EncodeToString(id.Hash))
	return id, nil
}

// View calls fn with a read only view of the committed state.
func (m *Market) View(fn func(db bazaar.ReadOnlyKVStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	db := m.store.CheckStore()
	defer db.Discard()
	return fn(db)
}

// redact hides panic reasons and internal failures unless in debug mode.
// The logging decorator has already recorded the full error.
func (m *Market) redact(err error) error {
	if err == nil || m.debug {
		return err
	}
	return errors.Redact(err)
}

func (m *Market) context() (bazaar.Context, error) {
	info, err := m.store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	ctx := bazaar.WithLogger(context.Background(), m.logger)
	ctx = bazaar.WithHeight(ctx, info.Version+1)
	ctx = bazaar.WithChainID(ctx, m.chainID)
	return ctx, nil
}
