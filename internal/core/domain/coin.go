package domain

// Chain identifies a blockchain network as named by the explorer APIs.
type Chain string

const (
	ChainBitcoin  Chain = "bitcoin"
	ChainEthereum Chain = "ethereum"
	ChainLitecoin Chain = "litecoin"
	ChainSolana   Chain = "solana"
)

// CryptoFeePct is the surcharge applied to crypto checkouts.
const CryptoFeePct = 0.05

// CoinConfig is the fixed configuration for an accepted coin. Receiving
// addresses are static and shared across all orders for that coin.
type CoinConfig struct {
	Coin            string
	Chain           Chain
	Decimals        int // smallest-unit precision
	DisplayDecimals int // precision shown to the customer
	Address         string
	Confirmations   int // display constant, not enforced
}

// SupportedCoins maps coin symbol to its configuration.
var SupportedCoins = map[string]CoinConfig{
	"btc": {
		Coin:            "btc",
		Chain:           ChainBitcoin,
		Decimals:        8,
		DisplayDecimals: 8,
		Address:         "bc1qvcw6pctmmn940q3rrytt7hk6w467stsccqm54l",
		Confirmations:   1,
	},
	"eth": {
		Coin:            "eth",
		Chain:           ChainEthereum,
		Decimals:        18,
		DisplayDecimals: 6,
		Address:         "0xDee06F2d6534cB11febFE4926ED2A69E0c4497fD",
		Confirmations:   12,
	},
	"ltc": {
		Coin:            "ltc",
		Chain:           ChainLitecoin,
		Decimals:        8,
		DisplayDecimals: 8,
		Address:         "LgFpBdKHw7nzoXrJR1aj9UKvizWzb2dBkW",
		Confirmations:   2,
	},
}

// ConfirmationsRequired returns the per-coin confirmation display constants.
func ConfirmationsRequired() map[string]int {
	out := make(map[string]int, len(SupportedCoins))
	for coin, cfg := range SupportedCoins {
		out[coin] = cfg.Confirmations
	}
	return out
}
