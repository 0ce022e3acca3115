package utils

import (
	"time"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Logging writes one log line per transaction with its path, duration and
// the error code when it failed. Check is logged at debug, Deliver at info
// and errors not rooted in a registered error always at error level.
type Logging struct{}

var _ bazaar.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	note := "check"
	if res != nil && res.Log != "" {
		note = res.Log
	}
	entry{path: bazaar.GetPath(tx), start: start, debug: true}.write(ctx, note, err)
	return res, err
}

func (Logging) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	note := "deliver"
	if res != nil && res.Log != "" {
		note = res.Log
	}
	entry{path: bazaar.GetPath(tx), start: start}.write(ctx, note, err)
	return res, err
}

type entry struct {
	path  string
	start time.Time
	debug bool
}

// internalCode is reported for errors that are not rooted in a registered error.
const internalCode = 1

func (e entry) write(ctx bazaar.Context, note string, err error) {
	logger := bazaar.GetLogger(ctx).With(
		"path", e.path,
		"duration", time.Since(e.start)/time.Microsecond)

	if err != nil {
		code := errors.Code(err)
		logger = logger.With("code", code, "err", err)
		if code == internalCode {
			logger.Error(note)
			return
		}
	}
	if e.debug {
		logger.Debug(note)
	} else {
		logger.Info(note)
	}
}
