package vault

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
)

func TestInitialize(t *testing.T) {
	cases := map[string]struct {
		conf     *Configuration
		funded   []uint32
		wantErr  *errors.Error
		wantSalt uint32
	}{
		"highest salt is used": {
			conf:     &Configuration{Label: "rewards vault"},
			wantSalt: 255,
		},
		"salts with an account are skipped": {
			conf:     &Configuration{Label: "rewards vault"},
			funded:   []uint32{255, 254},
			wantSalt: 253,
		},
		"missing configuration": {
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			if tc.conf != nil {
				assert.Nil(t, gconf.Save(db, gconfPackage, tc.conf))
			}
			for _, salt := range tc.funded {
				addr := Condition(tc.conf.Label, salt).Address()
				assert.Nil(t, ctrl.IssueCoins(db, addr, 1))
			}

			v, err := Initialize(db, ctrl)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantSalt, v.Salt)
			assert.Equal(t, tc.conf.Label, v.Label)

			loaded, err := Load(db)
			assert.Nil(t, err)
			assert.Equal(t, v, loaded)

			_, err = Initialize(db, ctrl)
			assert.IsErr(t, errors.ErrDuplicate, err)
		})
	}
}

func TestLoadBeforeInitialize(t *testing.T) {
	_, err := Load(store.MemStore())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestAuthority(t *testing.T) {
	v := &Vault{Label: "rewards vault", Salt: 254}
	auth := v.Authority()
	ctx := context.Background()

	if !auth.HasAddress(ctx, v.Address()) {
		t.Fatal("authority must control the vault address")
	}
	if auth.HasAddress(ctx, weavetest.NewCondition().Address()) {
		t.Fatal("authority must not control other addresses")
	}
	other := &Vault{Label: "rewards vault", Salt: 253}
	if auth.HasAddress(ctx, other.Address()) {
		t.Fatal("salt must change the address")
	}
	assert.Equal(t, []bazaar.Condition{v.Condition()}, auth.GetConditions(ctx))
}

func TestAuthorityMovesVaultFunds(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController(cash.NewBucket())
	v := &Vault{Label: "rewards vault", Salt: 255}
	dst := weavetest.NewCondition().Address()
	assert.Nil(t, ctrl.IssueCoins(db, v.Address(), 10))

	ctx := context.Background()
	assert.Nil(t, ctrl.MoveCoins(ctx, db, v.Authority(), v.Address(), dst, 4))

	err := ctrl.MoveCoins(ctx, db, &weavetest.Auth{Signer: weavetest.NewCondition()}, v.Address(), dst, 1)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
