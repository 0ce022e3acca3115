package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is used when a requested operation cannot be completed
	// due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever an event is invalid and cannot be
	// handled.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever a model is invalid and cannot be
	// used (ie. persisted).
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when there is a record already that has the same
	// unique key/index used
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when application reaches a code path which should not
	// ever be reached if the code was written as expected by the framework
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a value fails a not empty assertion
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object is in invalid state
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when an amount of currency is
	// insufficient, e.g. funds/fees
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount stands for invalid amount of whatever
	ErrAmount = Register(13, "invalid amount")

	// ErrInput stands for general input problems indication
	ErrInput = Register(14, "invalid input")

	// ErrOverflow s returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned in case of a storage layer failure.
	ErrDatabase = Register(17, "database")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info
	ErrPanic = Register(111222, "panic")
)

// internalCode is reported for every error that does not wrap a
// registered root error.
const internalCode uint32 = 1

// usedCodes maps every registered code to its root error.
var usedCodes = map[uint32]*Error{
	internalCode: {code: internalCode, desc: "internal"},
}

// Register declares a root error. It panics when code is taken, so call it
// only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	usedCodes[code] = e
	return e
}

// Error is a root error, identified by its code. Runtime failures wrap one
// of them so callers can classify the failure with Is or Code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the code this root error was registered with.
func (e Error) Code() uint32 {
	return e.code
}

// Is reports whether err is kind or wraps it. A nil kind matches only nil
// errors, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		if err == nil {
			return true
		}
		v := reflect.ValueOf(err)
		return v.Kind() == reflect.Ptr && v.IsNil()
	}
	for ; err != nil; err = cause(err) {
		if err == kind {
			return true
		}
	}
	return false
}

// Code returns the code of the root error err wraps, 0 for nil and the
// internal code for anything not rooted in a registered error.
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	for ; err != nil; err = cause(err) {
		if root, ok := err.(*Error); ok {
			return root.code
		}
	}
	return internalCode
}

// cause returns the error wrapped by err, or nil.
func cause(err error) error {
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}

// Wrap annotates err with description. The innermost wrap records a stack
// trace. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to *err. It only works
// when deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Redact hides the details of panics and internal errors, so that they can
// be shown to a client.
func Redact(err error) error {
	if ErrPanic.Is(err) {
		return ErrPanic
	}
	if Code(err) == internalCode {
		return usedCodes[internalCode]
	}
	return err
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack trace carried by err.
func stackTrace(err error) errors.StackTrace {
	for ; err != nil; err = cause(err) {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}
