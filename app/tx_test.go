package app

import (
	"bytes"
	"testing"

	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/marketplace"
	"github.com/iov-one/bazaar/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxEncoding(t *testing.T) {
	msg := &marketplace.PlaceBidMsg{
		ListingID: []byte("listing"),
		AssetID:   []byte("painting"),
		PriceHigh: 2,
		PriceLow:  500000000,
	}
	tx, err := NewTx(msg)
	require.NoError(t, err)
	require.NoError(t, tx.Sign(crypto.GenPrivKey(), "test-chain", 3))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	back, err := DecodeTx(raw)
	require.NoError(t, err)

	assert.Equal(t, "marketplace/place_bid", back.Path)
	require.Len(t, back.GetSignatures(), 1)
	assert.Equal(t, int64(3), back.GetSignatures()[0].Sequence)

	got, err := back.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestTxSignBytes(t *testing.T) {
	tx := &Tx{Path: "cash/send", Msg: []byte{1, 2, 3}}
	bz, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("cash/send\x00\x01\x02\x03"), bz))

	_, err = (&Tx{Msg: []byte{1}}).GetSignBytes()
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestTxSignatureCoversPath(t *testing.T) {
	key := crypto.GenPrivKey()
	tx := &Tx{Path: "marketplace/withdraw", Msg: []byte{0x0a, 0x01, 0x01}}
	require.NoError(t, tx.Sign(key, "test-chain", 0))

	bz, err := tx.GetSignBytes()
	require.NoError(t, err)
	toSign, err := sigs.BuildSignBytes(bz, "test-chain", 0)
	require.NoError(t, err)
	assert.True(t, key.PublicKey().Verify(toSign, tx.Signatures[0].Signature))

	tx.Path = "marketplace/publish"
	bz, err = tx.GetSignBytes()
	require.NoError(t, err)
	toSign, err = sigs.BuildSignBytes(bz, "test-chain", 0)
	require.NoError(t, err)
	assert.False(t, key.PublicKey().Verify(toSign, tx.Signatures[0].Signature))
}

func TestTxGetMsgErrors(t *testing.T) {
	cases := map[string]struct {
		tx      *Tx
		wantErr *errors.Error
	}{
		"unknown path": {
			tx:      &Tx{Path: "auction/bid"},
			wantErr: errors.ErrNotFound,
		},
		"garbage payload": {
			tx:      &Tx{Path: "marketplace/publish", Msg: []byte{0xff, 0xff, 0xff}},
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := tc.tx.GetMsg()
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestDecodeTxGarbage(t *testing.T) {
	_, err := DecodeTx([]byte{0xff, 0xff})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}
