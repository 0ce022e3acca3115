package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/bazaar"
)

// Auth is a static x.Authenticator mock: every call reports the same
// conditions. Signers come first, followed by Signer when set.
type Auth struct {
	Signer  bazaar.Condition
	Signers []bazaar.Condition
}

func (a *Auth) GetConditions(bazaar.Context) []bazaar.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]bazaar.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator mock that reads the conditions from the
// context, so a single instance can serve different signers per call.
type CtxAuth struct {
	// Key under which the conditions are stored in the context.
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticated with given conditions.
func (a *CtxAuth) SetConditions(ctx bazaar.Context, conds ...bazaar.Condition) bazaar.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]bazaar.Condition)
	if !ok {
		panic(fmt.Sprintf("want []bazaar.Condition, got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []bazaar.Condition, addr bazaar.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
