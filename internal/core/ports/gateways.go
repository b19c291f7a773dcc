package ports

import (
	"context"

	"crypto-checkout/internal/core/domain"

	"github.com/shopspring/decimal"
)

// RateSource provides live USD spot prices. A failed or non-finite lookup
// is an error; there is no caching and no retry.
type RateSource interface {
	SpotRateUSD(ctx context.Context, chain domain.Chain) (decimal.Decimal, error)
}

// BalanceSource provides confirmed address balances in smallest units.
// Lookups never fail outward: any upstream failure is reported as the
// Unknown zero-floor balance so callers cannot mistake an outage for a
// received payment or a stale baseline.
type BalanceSource interface {
	ConfirmedBalance(ctx context.Context, chain domain.Chain, address string) domain.Balance
}

// Geocoder resolves a free-form postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}
