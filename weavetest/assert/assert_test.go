package assert

import (
	"testing"

	"github.com/iov-one/bazaar/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different kinds": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrNotFound, "test"),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var typedNil *errors.Error
	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"nil":          {Value: nil, WantFail: false},
		"typed nil":    {Value: typedNil, WantFail: false},
		"error":        {Value: errors.ErrEmpty, WantFail: true},
		"non pointers": {Value: 42, WantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not detected")
	}
	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

// tmock records failures instead of stopping the test.
type tmock struct {
	failcalls int
}

func (t *tmock) Helper() {}

func (t *tmock) Fatal(args ...interface{}) {
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.failcalls++
}
