package bazaar_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConditions(t *testing.T) {
	Convey("A market condition", t, func() {
		cond := bazaar.NewCondition("market", "listing", []byte("asset-1"))

		Convey("parses into its sections", func() {
			ext, typ, data, err := cond.Parse()
			So(err, ShouldBeNil)
			So(ext, ShouldEqual, "market")
			So(typ, ShouldEqual, "listing")
			So(data, ShouldResemble, []byte("asset-1"))
			So(cond.Validate(), ShouldBeNil)
		})

		Convey("hashes into a stable address", func() {
			addr := cond.Address()
			So(len(addr), ShouldEqual, bazaar.AddressLength)
			So(addr.Validate(), ShouldBeNil)
			So(addr.Equals(bazaar.NewCondition("market", "listing", []byte("asset-1")).Address()), ShouldBeTrue)
			So(addr.Equals(bazaar.NewCondition("market", "listing", []byte("asset-2")).Address()), ShouldBeFalse)
		})

		Convey("prints data in hex", func() {
			So(cond.String(), ShouldEqual, fmt.Sprintf("market/listing/%X", []byte("asset-1")))
		})
	})

	Convey("Malformed conditions are rejected", t, func() {
		for _, raw := range []string{"", "market", "mk/type/data", "market/listing/"} {
			So(errors.ErrInput.Is(bazaar.Condition(raw).Validate()), ShouldBeTrue)
		}
	})
}

func TestAddressBech32(t *testing.T) {
	Convey("Bech32 encoding round trips", t, func() {
		addr := bazaar.NewCondition("vault", "seed", []byte("rewards vault")).Address()
		enc, err := addr.Bech32()
		So(err, ShouldBeNil)
		So(enc[:4], ShouldEqual, bazaar.AddressHRP+"1")

		back, err := bazaar.ParseAddress("bech32:" + enc)
		So(err, ShouldBeNil)
		So(back, ShouldResemble, addr)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	valid := bazaar.NewCondition("foo", "bar", []byte("conditiondata")).Address()

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr bazaar.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%X"`, []byte(valid)),
			wantAddr: valid,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%x"`, []byte(valid)),
			wantAddr: valid,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: valid,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a bazaar.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("got address %v, want %v", a, tc.wantAddr)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := bazaar.NewCondition("foo", "bar", []byte("x")).Address()
	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var back bazaar.Address
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if !back.Equals(addr) {
		t.Fatalf("got %v, want %v", back, addr)
	}
}
