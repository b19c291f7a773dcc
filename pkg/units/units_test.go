package units

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSmallestUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{"whole btc", "1", 8, "100000000"},
		{"satoshi fraction", "0.00000001", 8, "1"},
		{"rounds half away from zero", "0.000000015", 8, "2"},
		{"truncates below half", "0.000000014", 8, "1"},
		{"eth wei", "1.5", 18, "1500000000000000000"},
		{"usdc style", "12.345678", 6, "12345678"},
		{"zero", "0", 8, "0"},
		{"negative", "-0.5", 8, "-50000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt := decimal.RequireFromString(tt.amount)
			got := ToSmallestUnits(amt, tt.decimals)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatSmallestUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{"whole btc", "100000000", 8, "1"},
		{"strips trailing zeros", "150000000", 8, "1.5"},
		{"single satoshi", "1", 8, "0.00000001"},
		{"zero", "0", 8, "0"},
		{"wei", "1500000000000000000", 18, "1.5"},
		{"negative", "-50000000", 8, "-0.5"},
		{"shorter than precision", "123", 6, "0.000123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, ok := new(big.Int).SetString(tt.amount, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, FormatSmallestUnits(amt, tt.decimals))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []int64{0, 1, 7, 99, 100000000, 123456789, 1000000000000000000}
	for _, d := range []int{6, 8, 18} {
		for _, v := range values {
			x := big.NewInt(v)
			formatted := FormatSmallestUnits(x, d)
			back := ToSmallestUnits(decimal.RequireFromString(formatted), d)
			assert.Zero(t, x.Cmp(back), "round-trip %d at %d decimals (formatted %q)", v, d, formatted)
		}
	}
}
