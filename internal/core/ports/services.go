package ports

import (
	"context"

	"crypto-checkout/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Payment status strings returned by the status poll.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// --- Order lifecycle ---

// OrderService orchestrates crypto order creation and payment polling.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error)
	OrderStatus(ctx context.Context, orderID, coin string) (*OrderStatusResult, error)
}

// CreateOrderRequest holds validated input for order creation.
type CreateOrderRequest struct {
	Items       []domain.LineItem
	DiscountUSD decimal.Decimal
	PromoCode   string
	ShippingUSD decimal.Decimal
}

// CoinQuoteResult is the per-coin slice of the creation response. Amount is
// the display amount as a decimal string; internal fields (start balance,
// exact smallest-unit amount) are deliberately absent.
type CoinQuoteResult struct {
	Address         string
	Amount          string
	DisplayDecimals int
}

// CreateOrderResult is the order creation response.
type CreateOrderResult struct {
	OrderID       string
	USDTotal      decimal.Decimal
	FeePct        float64
	FeeUSD        decimal.Decimal
	RandomCents   decimal.Decimal
	Confirmations map[string]int
	Coins         map[string]CoinQuoteResult
}

// OrderStatusResult is the payment poll response. Received and Required are
// formatted at the coin's full smallest-unit precision.
type OrderStatusResult struct {
	Status                string
	Received              string
	Required              string
	ConfirmationsRequired int
}

// --- Shipping ---

// ShippingService computes flat-rate shipping quotes for US addresses.
type ShippingService interface {
	Quote(ctx context.Context, req ShippingQuoteRequest) (*ShippingQuoteResult, error)
}

// ShippingQuoteRequest is a US postal address.
type ShippingQuoteRequest struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
}

// ShippingQuoteResult is the shipping quote response.
type ShippingQuoteResult struct {
	Amount        int
	DistanceMiles float64
	Origin        string
}

// --- Notifications ---

// NotificationService forwards checkout events to the configured chat
// webhook. Delivery is best-effort and synchronous; failures surface as an
// error without rolling back anything else.
type NotificationService interface {
	Forward(ctx context.Context, event CheckoutEvent) error
}

// CheckoutEvent is a checkout notification as submitted by the storefront.
// All fields are optional except Event; money fields format at two decimals.
type CheckoutEvent struct {
	Event         string
	Email         string
	ReceiptID     string
	PaymentMethod string
	PromoCode     string
	DiscountUSD   *decimal.Decimal
	Total         *decimal.Decimal
	Mention       string
	Priority      string
	ClientIP      string
	Items         []EventItem
	Address       *EventAddress
	Shipping      *EventShipping
	Client        *EventClient
}

// EventItem is a cart line as reported in a checkout event.
type EventItem struct {
	Name     string
	Option   string
	Quantity int
	Price    decimal.Decimal
}

// EventAddress is the customer's shipping address block.
type EventAddress struct {
	Name     string
	Phone    string
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
	Notes    string
}

// EventShipping is the quoted shipping charge.
type EventShipping struct {
	Amount        decimal.Decimal
	DistanceMiles *decimal.Decimal
}

// EventClient is the reporting browser's fingerprint block.
type EventClient struct {
	UserAgent string
	Platform  string
	Language  string
	Timezone  string
}
