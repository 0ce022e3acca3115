package sigs

import (
	"encoding/binary"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
)

// SignedTx is a transaction carrying signatures over its sign bytes.
type SignedTx interface {
	// GetSignBytes returns path || 0x00 || serialized message.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer conditions (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db bazaar.KVStore, tx SignedTx, chainID string) ([]bazaar.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]bazaar.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against signbytes,
// check chain and updates the nonce in the store
func VerifySignature(db bazaar.KVStore, sig *StdSignature, signBytes []byte, chainID string) (bazaar.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	pubkey, err := crypto.PublicKeyFromBytes(sig.Pubkey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid public key")
	}

	bucket := NewBucket()
	user, err := bucket.GetOrCreate(db, pubkey)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, pubkey.Address(), user); err != nil {
		return nil, err
	}
	return pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

chainID      | 0x00 | nonce             | signBytes
ascii string | 1    | int64 (bigendian) | path || 0x00 || serialized message
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !bazaar.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, len(chainID)+1+8+len(signBytes))
	output = append(output, []byte(chainID)...)
	output = append(output, 0)
	output = append(output, nonce...)
	output = append(output, signBytes...)
	return output, nil
}

// SignTx creates a signature for the given tx
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	signBytes, err := BuildSignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey().Bytes(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
