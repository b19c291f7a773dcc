// Package dto defines the JSON wire shapes exchanged with the storefront.
// Field names match what the storefront scripts already send and read.
package dto

import (
	"github.com/shopspring/decimal"
)

// --- Crypto orders ---

// LineItemRequest is a cart line as submitted by the storefront. Total, when
// present, overrides price*quantity.
type LineItemRequest struct {
	Name     string          `json:"name"`
	Option   string          `json:"option"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// CreateOrderRequest is the POST /api/crypto/create-order body.
type CreateOrderRequest struct {
	Items       []LineItemRequest `json:"items"`
	DiscountUSD decimal.Decimal   `json:"discountUsd"`
	PromoCode   string            `json:"promoCode"`
	ShippingUSD decimal.Decimal   `json:"shippingUsd"`
}

// CoinQuoteResponse is the per-coin payment option. Amount is a decimal
// string so the storefront never sees float artifacts.
type CoinQuoteResponse struct {
	Address         string `json:"address"`
	Amount          string `json:"amount"`
	DisplayDecimals int    `json:"displayDecimals"`
}

// CreateOrderResponse is the create-order response body.
type CreateOrderResponse struct {
	OrderID       string                       `json:"orderId"`
	USDTotal      float64                      `json:"usdTotal"`
	FeePct        float64                      `json:"feePct"`
	FeeUSD        float64                      `json:"feeUsd"`
	RandomCents   float64                      `json:"randomCents"`
	Confirmations map[string]int               `json:"confirmations"`
	Coins         map[string]CoinQuoteResponse `json:"coins"`
}

// OrderStatusResponse is the payment poll response body. Received and
// Required are decimal strings at the coin's full precision.
type OrderStatusResponse struct {
	Status                string `json:"status"`
	Received              string `json:"received"`
	Required              string `json:"required"`
	ConfirmationsRequired int    `json:"confirmationsRequired"`
}

// --- Shipping ---

// ShippingQuoteRequest is the POST /api/shipping/quote body.
type ShippingQuoteRequest struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// ShippingQuoteResponse is the shipping quote response body.
type ShippingQuoteResponse struct {
	Amount        int     `json:"amount"`
	DistanceMiles float64 `json:"distanceMiles"`
	Origin        string  `json:"origin"`
}

// --- Checkout webhook ---

// WebhookItem is a cart line as reported in a checkout event.
type WebhookItem struct {
	Name     string          `json:"name"`
	Option   string          `json:"option"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// WebhookAddress is the customer address block of a checkout event.
type WebhookAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Notes    string `json:"notes"`
}

// WebhookShipping is the quoted shipping charge of a checkout event.
type WebhookShipping struct {
	Amount        decimal.Decimal  `json:"amount"`
	DistanceMiles *decimal.Decimal `json:"distanceMiles"`
}

// WebhookClient is the reporting browser's fingerprint block.
type WebhookClient struct {
	UserAgent string `json:"userAgent"`
	Platform  string `json:"platform"`
	Language  string `json:"language"`
	Timezone  string `json:"timezone"`
}

// CheckoutWebhookRequest is the POST /api/checkout/webhook body. Every field
// is optional; the notifier fills in placeholders for what is missing.
type CheckoutWebhookRequest struct {
	Event         string           `json:"event"`
	Email         string           `json:"email"`
	ReceiptID     string           `json:"receiptId"`
	PaymentMethod string           `json:"paymentMethod"`
	PromoCode     string           `json:"promoCode"`
	DiscountUSD   *decimal.Decimal `json:"discountUsd"`
	Total         *decimal.Decimal `json:"total"`
	Mention       string           `json:"mention"`
	Priority      string           `json:"priority"`
	Items         []WebhookItem    `json:"items"`
	Address       *WebhookAddress  `json:"address"`
	Shipping      *WebhookShipping `json:"shipping"`
	Client        *WebhookClient   `json:"client"`
}

// WebhookAckResponse acknowledges a forwarded checkout event.
type WebhookAckResponse struct {
	OK bool `json:"ok"`
}
