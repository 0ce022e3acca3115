package marketplace

import (
	"testing"

	"github.com/iov-one/bazaar/weavetest/assert"
)

func TestComposePrice(t *testing.T) {
	cases := map[string]struct {
		high, low uint32
		want      uint64
		wantStr   string
	}{
		"zero":            {0, 0, 0, "0"},
		"fraction only":   {0, 1, 1, "0.000000001"},
		"two and a half":  {2, 500000000, 2500000000, "2.5"},
		"whole":           {3, 0, 3000000000, "3"},
		"largest encoded": {4294967295, 999999999, 4294967295999999999, "4294967295.999999999"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := ComposePrice(tc.high, tc.low)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantStr, FormatPrice(got))
		})
	}
}
