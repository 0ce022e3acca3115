package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := bazaar.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKey()
	perms := []bazaar.Condition{priv.PublicKey().Condition()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec bazaar.Decorator, my bazaar.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec bazaar.Decorator, my bazaar.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(bazaar.Decorator, bazaar.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		// the next sequence is accepted
		tx.Signatures = []*StdSignature{sig1}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestAuthenticateOutsideDecorator(t *testing.T) {
	cond := weavetest.NewCondition()
	ctx := context.Background()
	assert.Empty(t, Authenticate{}.GetConditions(ctx))
	assert.False(t, Authenticate{}.HasAddress(ctx, cond.Address()))
}

func TestDecoratorRequiresSignedTx(t *testing.T) {
	ctx := bazaar.WithChainID(context.Background(), "plain-chain")
	handler := new(SigCheckHandler)
	_, err := NewDecorator().Deliver(ctx, store.MemStore(), &weavetest.Tx{}, handler)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	assert.Nil(t, handler.Signers)
}

func TestDecoratorRejectsForgery(t *testing.T) {
	kv := store.MemStore()
	chainID := "forge-chain"
	ctx := bazaar.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKey()

	tx := NewStdTx([]byte("original"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)

	cases := map[string]struct {
		tx      *StdTx
		wantErr *errors.Error
	}{
		"other payload": {
			tx:      &StdTx{Payload: []byte("modified"), Signatures: []*StdSignature{sig}},
			wantErr: errors.ErrUnauthorized,
		},
		"other chain": {
			tx: func() *StdTx {
				other := NewStdTx([]byte("original"))
				s, err := SignTx(priv, other, "other-chain", 0)
				require.NoError(t, err)
				other.Signatures = []*StdSignature{s}
				return other
			}(),
			wantErr: errors.ErrUnauthorized,
		},
		"missing pubkey": {
			tx:      &StdTx{Payload: []byte("original"), Signatures: []*StdSignature{{Signature: sig.Signature}}},
			wantErr: errors.ErrUnauthorized,
		},
		"future sequence": {
			tx: func() *StdTx {
				other := NewStdTx([]byte("original"))
				s, err := SignTx(priv, other, chainID, 5)
				require.NoError(t, err)
				other.Signatures = []*StdSignature{s}
				return other
			}(),
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			handler := new(SigCheckHandler)
			_, err := NewDecorator().Deliver(ctx, kv, tc.tx, handler)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			assert.Nil(t, handler.Signers)
		})
	}
}

func TestSequenceIsStored(t *testing.T) {
	kv := store.MemStore()
	chainID := "seq-chain"
	ctx := bazaar.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKey()

	for seq := int64(0); seq < 3; seq++ {
		tx := NewStdTx([]byte("payload"))
		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		tx.Signatures = []*StdSignature{sig}
		_, err = NewDecorator().Deliver(ctx, kv, tx, new(SigCheckHandler))
		require.NoError(t, err)
	}

	next, err := NewBucket().Sequence(kv, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)

	unknown, err := NewBucket().Sequence(kv, weavetest.NewCondition().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), unknown)
}

func TestSignatureEncoding(t *testing.T) {
	priv := crypto.GenPrivKey()
	sig, err := SignTx(priv, NewStdTx([]byte("x")), "enc-chain", 7)
	require.NoError(t, err)

	raw, err := sig.Marshal()
	require.NoError(t, err)
	var back StdSignature
	require.NoError(t, back.Unmarshal(raw))
	assert.Equal(t, *sig, back)
}

//---------------- helpers --------

// StdTx is a minimal signed transaction
type StdTx struct {
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ bazaar.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Payload: payload}
}

func (tx StdTx) GetMsg() (bazaar.Msg, error) {
	return &weavetest.Msg{RoutePath: "test/std", Serialized: tx.Payload}, nil
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return append([]byte("test/std\x00"), tx.Payload...), nil
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) Marshal() ([]byte, error) {
	return tx.Payload, nil
}

func (tx *StdTx) Unmarshal(raw []byte) error {
	tx.Payload = raw
	return nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []bazaar.Condition
}

var _ bazaar.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &bazaar.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &bazaar.DeliverResult{}, nil
}
