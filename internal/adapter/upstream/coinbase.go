// Package upstream contains HTTP clients for the external quote, explorer
// and geocoding providers. Every call carries a request context; the shared
// client enforces the configured timeout. No call is retried.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"crypto-checkout/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// coinbaseSymbols maps chains to Coinbase product symbols.
var coinbaseSymbols = map[domain.Chain]string{
	domain.ChainBitcoin:  "BTC",
	domain.ChainEthereum: "ETH",
	domain.ChainLitecoin: "LTC",
}

// CoinbaseRateSource fetches USD spot prices from the Coinbase public API.
type CoinbaseRateSource struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewCoinbaseRateSource creates a rate source against the given base URL.
func NewCoinbaseRateSource(baseURL string, client *http.Client, log zerolog.Logger) *CoinbaseRateSource {
	return &CoinbaseRateSource{baseURL: baseURL, client: client, log: log}
}

type coinbaseSpotResponse struct {
	Data struct {
		Amount string `json:"amount"`
	} `json:"data"`
}

// SpotRateUSD implements ports.RateSource.
func (s *CoinbaseRateSource) SpotRateUSD(ctx context.Context, chain domain.Chain) (decimal.Decimal, error) {
	symbol, ok := coinbaseSymbols[chain]
	if !ok {
		return decimal.Zero, fmt.Errorf("no quote symbol for chain %q", chain)
	}

	url := fmt.Sprintf("%s/v2/prices/%s-USD/spot", s.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("chain", string(chain)).Msg("rate fetch failed")
		return decimal.Zero, fmt.Errorf("fetch rate for %s: %w", chain, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.log.Error().Int("status", resp.StatusCode).Str("chain", string(chain)).Msg("rate fetch failed")
		return decimal.Zero, fmt.Errorf("fetch rate for %s: HTTP %d", chain, resp.StatusCode)
	}

	var body coinbaseSpotResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode rate response for %s: %w", chain, err)
	}

	rate, err := decimal.NewFromString(body.Data.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rate %q for %s: %w", body.Data.Amount, chain, err)
	}
	if rate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("non-positive rate %s for %s", rate, chain)
	}

	return rate, nil
}
