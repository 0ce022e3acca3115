package weavetest

import "github.com/iov-one/bazaar"

// Handler is a mock implementation of the bazaar.Handler interface.
//
// Set WriteKey to write a value to the store on every call, so that
// callers can observe whether the changes were kept.
type Handler struct {
	checkCall   int
	CheckResult bazaar.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult bazaar.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ bazaar.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db bazaar.KVStore) error {
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}
