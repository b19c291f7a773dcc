package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the payment state of a per-coin quote.
type QuoteStatus string

const (
	QuoteStatusCreated QuoteStatus = "CREATED"
	QuoteStatusPaid    QuoteStatus = "PAID"
)

// Balance is an address balance in smallest units. Known is false when the
// explorer lookup failed; the amount is then the zero floor, never a stale
// value, so a gateway outage cannot read as a received payment.
type Balance struct {
	Amount *big.Int `json:"amount"`
	Known  bool     `json:"known"`
}

// KnownBalance wraps a confirmed balance.
func KnownBalance(amount *big.Int) Balance {
	return Balance{Amount: amount, Known: true}
}

// UnknownBalance is the zero-floor balance used when a lookup fails.
func UnknownBalance() Balance {
	return Balance{Amount: big.NewInt(0), Known: false}
}

// LineItem is a cart entry. Contents are pass-through from the storefront
// and are not validated against a catalog.
type LineItem struct {
	Name     string          `json:"name"`
	Option   string          `json:"option,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// LineTotal returns the explicit line total when the client sent one, else
// price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	if !li.Total.IsZero() {
		return li.Total
	}
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CoinQuote is the per-order, per-coin snapshot of exchange rate, expected
// amount and starting balance taken at order creation.
type CoinQuote struct {
	Address         string          `json:"address"`
	Rate            decimal.Decimal `json:"rate"` // USD per coin at quote time
	Decimals        int             `json:"decimals"`
	DisplayDecimals int             `json:"display_decimals"`
	AmountSmallest  *big.Int        `json:"amount_smallest"`
	StartBalance    Balance         `json:"start_balance"`
	Status          QuoteStatus     `json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

// MarkPaid stamps the quote as paid at t. Only the first call has an
// effect; the stamp is idempotent across repeated status polls.
func (q *CoinQuote) MarkPaid(t time.Time) {
	if q.Status == QuoteStatusPaid {
		return
	}
	q.Status = QuoteStatusPaid
	q.PaidAt = &t
}

// Order is a crypto checkout order. Orders live in the store for the life
// of the process; there is no expiry or cancellation state.
//
// The receiving address for each coin is shared across all orders, so two
// concurrently open orders on the same coin cannot be told apart by balance
// delta alone. This is a known limitation of balance-based detection.
type Order struct {
	ID          string                `json:"id"`
	Items       []LineItem            `json:"items"`
	DiscountUSD decimal.Decimal       `json:"discount_usd"`
	PromoCode   string                `json:"promo_code,omitempty"`
	USDSubtotal decimal.Decimal       `json:"usd_subtotal"`
	FeePct      float64               `json:"fee_pct"`
	FeeUSD      decimal.Decimal       `json:"fee_usd"`
	RandomCents decimal.Decimal       `json:"random_cents"`
	USDTotal    decimal.Decimal       `json:"usd_total"`
	Coins       map[string]*CoinQuote `json:"coins"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Quote returns the coin quote for the given symbol, or nil.
func (o *Order) Quote(coin string) *CoinQuote {
	return o.Coins[coin]
}
