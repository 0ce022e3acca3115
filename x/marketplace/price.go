package marketplace

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// PriceUnit is the number of base units in one whole unit of value.
const PriceUnit = 1000000000

// ComposePrice joins the whole and fractional components of a price.
func ComposePrice(high, low uint32) uint64 {
	return uint64(high)*PriceUnit + uint64(low)
}

// FormatPrice renders a price in whole units, 2500000000 is "2.5".
func FormatPrice(price uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(price), -9).String()
}
