// Package units converts decimal currency amounts to and from integer
// smallest-unit representations (satoshis, wei, lamports).
package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ToSmallestUnits converts a decimal amount to an integer count of smallest
// units at the given precision. The amount is rounded half away from zero at
// the decimals-th fractional digit before conversion.
func ToSmallestUnits(amount decimal.Decimal, decimals int) *big.Int {
	return amount.Round(int32(decimals)).Shift(int32(decimals)).BigInt()
}

// FormatSmallestUnits renders an integer smallest-unit amount as a decimal
// string at the given precision, trailing fractional zeros stripped, sign
// preserved.
func FormatSmallestUnits(amount *big.Int, decimals int) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}
