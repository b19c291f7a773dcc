package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"

	"crypto-checkout/internal/core/domain"

	"github.com/rs/zerolog"
)

// ExplorerBalanceSource reads confirmed address balances. Solana uses the
// JSON-RPC getBalance call at finalized commitment; every other chain uses
// the Blockchair address dashboard.
//
// Any failure resolves to the Unknown zero-floor balance. Creation and
// status polls subtract balances, so a consistent zero on both sides of an
// outage cannot produce a false payment.
type ExplorerBalanceSource struct {
	blockchairURL string
	apiKey        string
	solanaRPCURL  string
	client        *http.Client
	log           zerolog.Logger
}

// NewExplorerBalanceSource creates a balance source. apiKey may be empty.
func NewExplorerBalanceSource(blockchairURL, apiKey, solanaRPCURL string, client *http.Client, log zerolog.Logger) *ExplorerBalanceSource {
	return &ExplorerBalanceSource{
		blockchairURL: blockchairURL,
		apiKey:        apiKey,
		solanaRPCURL:  solanaRPCURL,
		client:        client,
		log:           log,
	}
}

// ConfirmedBalance implements ports.BalanceSource.
func (s *ExplorerBalanceSource) ConfirmedBalance(ctx context.Context, chain domain.Chain, address string) domain.Balance {
	if chain == domain.ChainSolana {
		return s.solanaBalance(ctx, address)
	}
	return s.blockchairBalance(ctx, chain, address)
}

type blockchairAddressInfo struct {
	Balance json.Number `json:"balance"`
}

type blockchairEntry struct {
	Address *blockchairAddressInfo `json:"address"`
	Balance json.Number            `json:"balance"`
}

type blockchairDashboard struct {
	Data map[string]blockchairEntry `json:"data"`
}

func (s *ExplorerBalanceSource) blockchairBalance(ctx context.Context, chain domain.Chain, address string) domain.Balance {
	endpoint := fmt.Sprintf("%s/%s/dashboards/address/%s", s.blockchairURL, chain, address)
	if s.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.log.Error().Err(err).Str("chain", string(chain)).Msg("balance fetch failed")
		return domain.UnknownBalance()
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("chain", string(chain)).Msg("balance fetch failed")
		return domain.UnknownBalance()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.log.Error().Int("status", resp.StatusCode).Str("chain", string(chain)).Msg("balance fetch failed")
		return domain.UnknownBalance()
	}

	var body blockchairDashboard
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.log.Error().Err(err).Str("chain", string(chain)).Msg("balance response decode failed")
		return domain.UnknownBalance()
	}

	entry, ok := body.Data[address]
	if !ok {
		s.log.Error().Str("chain", string(chain)).Str("address", address).Msg("balance response missing address entry")
		return domain.UnknownBalance()
	}

	raw := entry.Balance
	if entry.Address != nil {
		raw = entry.Address.Balance
	}
	return s.parseBalance(raw, chain)
}

type solanaRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type solanaRPCResponse struct {
	Result struct {
		Value json.Number `json:"value"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *ExplorerBalanceSource) solanaBalance(ctx context.Context, address string) domain.Balance {
	payload, err := json.Marshal(solanaRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getBalance",
		Params:  []interface{}{address, map[string]string{"commitment": "finalized"}},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("solana balance request marshal failed")
		return domain.UnknownBalance()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.solanaRPCURL, bytes.NewReader(payload))
	if err != nil {
		s.log.Error().Err(err).Msg("solana balance fetch failed")
		return domain.UnknownBalance()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Msg("solana balance fetch failed")
		return domain.UnknownBalance()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.log.Error().Int("status", resp.StatusCode).Msg("solana balance fetch failed")
		return domain.UnknownBalance()
	}

	var body solanaRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.log.Error().Err(err).Msg("solana balance response decode failed")
		return domain.UnknownBalance()
	}
	if body.Error != nil {
		s.log.Error().Str("rpc_error", body.Error.Message).Msg("solana balance fetch failed")
		return domain.UnknownBalance()
	}

	return s.parseBalance(body.Result.Value, domain.ChainSolana)
}

// parseBalance converts an explorer-reported number into a balance. A
// missing or malformed value is Unknown; a negative value is clamped to
// the zero floor.
func (s *ExplorerBalanceSource) parseBalance(raw json.Number, chain domain.Chain) domain.Balance {
	if raw == "" {
		return domain.UnknownBalance()
	}
	amount, ok := new(big.Int).SetString(raw.String(), 10)
	if !ok {
		s.log.Error().Str("chain", string(chain)).Str("value", raw.String()).Msg("unparseable balance value")
		return domain.UnknownBalance()
	}
	if amount.Sign() < 0 {
		amount = big.NewInt(0)
	}
	return domain.KnownBalance(amount)
}
