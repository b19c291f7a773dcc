package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRequest_AcceptsStorefrontBody(t *testing.T) {
	body := `{
		"items": [{"name": "Hoodie", "option": "XL", "price": 35, "quantity": 2, "total": 70}],
		"discountUsd": 5.5,
		"promoCode": "ALOHA10",
		"shippingUsd": 12
	}`

	var req CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.Len(t, req.Items, 1)
	assert.Equal(t, "Hoodie", req.Items[0].Name)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "70", req.Items[0].Total.String())
	assert.Equal(t, "5.5", req.DiscountUSD.String())
	assert.Equal(t, "12", req.ShippingUSD.String())
}

func TestCreateOrderResponse_FieldNames(t *testing.T) {
	body, err := json.Marshal(CreateOrderResponse{
		OrderID:       "ord_abc",
		USDTotal:      27.34,
		FeePct:        0.05,
		FeeUSD:        1.30,
		RandomCents:   0.04,
		Confirmations: map[string]int{"btc": 1},
		Coins: map[string]CoinQuoteResponse{
			"btc": {Address: "bc1q...", Amount: "0.00054", DisplayDecimals: 8},
		},
	})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	for _, key := range []string{"orderId", "usdTotal", "feePct", "feeUsd", "randomCents", "confirmations", "coins"} {
		assert.Contains(t, out, key)
	}
	coin := out["coins"].(map[string]any)["btc"].(map[string]any)
	assert.Equal(t, "0.00054", coin["amount"])
	assert.Equal(t, float64(8), coin["displayDecimals"])
}

func TestCheckoutWebhookRequest_OptionalBlocks(t *testing.T) {
	var req CheckoutWebhookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"event":"checkout_pay"}`), &req))

	assert.Equal(t, "checkout_pay", req.Event)
	assert.Nil(t, req.Address)
	assert.Nil(t, req.Shipping)
	assert.Nil(t, req.Client)
	assert.Nil(t, req.DiscountUSD)
}
