package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathSend    = "cash/send"
	maxMemoSize = 128
)

var _ bazaar.Msg = (*SendMsg)(nil)

func (*SendMsg) Path() string {
	return pathSend
}

// Validate rejects zero transfers, malformed addresses and oversized memos.
func (s *SendMsg) Validate() error {
	switch {
	case s.Amount == 0:
		return errors.Wrap(errors.ErrAmount, "zero value")
	case len(s.Memo) > maxMemoSize:
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}
