package service

import (
	"context"
	"math/big"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"crypto-checkout/internal/core/domain"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/pkg/apperror"
	"crypto-checkout/pkg/units"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	store    ports.OrderStore
	rates    ports.RateSource
	balances ports.BalanceSource
	log      zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	store ports.OrderStore,
	rates ports.RateSource,
	balances ports.BalanceSource,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		store:    store,
		rates:    rates,
		balances: balances,
		log:      log,
	}
}

// CreateOrder prices the cart, quotes every supported coin at live rates,
// snapshots receiving-address balances and stores the order. Any missing
// rate fails the whole creation; nothing is stored in that case.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*ports.CreateOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, apperror.ErrCartEmpty()
	}

	discount := req.DiscountUSD
	if discount.Sign() < 0 {
		discount = decimal.Zero
	}
	shipping := req.ShippingUSD
	if shipping.Sign() < 0 {
		shipping = decimal.Zero
	}

	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	usdSubtotal := decimal.Max(decimal.Zero, subtotal.Sub(discount)).Add(shipping).Round(2)
	feeUSD := usdSubtotal.Mul(decimal.NewFromFloat(domain.CryptoFeePct)).Round(2)
	// 1-9 cent anti-fingerprinting surcharge so two identical carts do not
	// request identical coin amounts.
	randomCents := decimal.New(int64(rand.IntN(9)+1), -2)
	usdTotal := usdSubtotal.Add(feeUSD).Add(randomCents).Round(2)

	rateByCoin, err := s.fetchRates(ctx)
	if err != nil {
		return nil, err
	}
	balanceByCoin := s.fetchBalances(ctx)

	order := &domain.Order{
		ID:          newOrderID(),
		Items:       req.Items,
		DiscountUSD: discount.Round(2),
		PromoCode:   req.PromoCode,
		USDSubtotal: usdSubtotal,
		FeePct:      domain.CryptoFeePct,
		FeeUSD:      feeUSD,
		RandomCents: randomCents,
		USDTotal:    usdTotal,
		Coins:       make(map[string]*domain.CoinQuote, len(domain.SupportedCoins)),
		CreatedAt:   time.Now().UTC(),
	}

	coins := make(map[string]ports.CoinQuoteResult, len(domain.SupportedCoins))
	for coin, cfg := range domain.SupportedCoins {
		rate := rateByCoin[coin]
		amount := usdTotal.DivRound(rate, int32(cfg.Decimals))

		order.Coins[coin] = &domain.CoinQuote{
			Address:         cfg.Address,
			Rate:            rate,
			Decimals:        cfg.Decimals,
			DisplayDecimals: cfg.DisplayDecimals,
			AmountSmallest:  units.ToSmallestUnits(amount, cfg.Decimals),
			StartBalance:    balanceByCoin[coin],
			Status:          domain.QuoteStatusCreated,
		}
		coins[coin] = ports.CoinQuoteResult{
			Address:         cfg.Address,
			Amount:          amount.Round(int32(cfg.DisplayDecimals)).String(),
			DisplayDecimals: cfg.DisplayDecimals,
		}
	}

	if err := s.store.Put(ctx, order); err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("usd_total", usdTotal.String()).
		Int("items", len(req.Items)).
		Msg("crypto order created")

	return &ports.CreateOrderResult{
		OrderID:       order.ID,
		USDTotal:      usdTotal,
		FeePct:        domain.CryptoFeePct,
		FeeUSD:        feeUSD,
		RandomCents:   randomCents,
		Confirmations: domain.ConfirmationsRequired(),
		Coins:         coins,
	}, nil
}

// OrderStatus fetches a fresh balance for the coin's receiving address and
// compares the delta since order creation against the required amount. The
// first sufficient observation stamps the quote as paid; the stamp is
// idempotent across repeated polls.
func (s *OrderServiceImpl) OrderStatus(ctx context.Context, orderID, coin string) (*ports.OrderStatusResult, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound()
	}

	cfg, supported := domain.SupportedCoins[coin]
	quote := order.Quote(coin)
	if !supported || quote == nil {
		return nil, apperror.ErrUnsupportedCoin()
	}

	current := s.balances.ConfirmedBalance(ctx, cfg.Chain, cfg.Address)
	received := new(big.Int).Sub(current.Amount, quote.StartBalance.Amount)
	if received.Sign() < 0 {
		received = big.NewInt(0)
	}

	paid := received.Cmp(quote.AmountSmallest) >= 0
	if paid && quote.Status != domain.QuoteStatusPaid {
		now := time.Now().UTC()
		if _, err := s.store.Update(ctx, orderID, func(o *domain.Order) error {
			if q := o.Quote(coin); q != nil {
				q.MarkPaid(now)
			}
			return nil
		}); err != nil {
			// The poll result is still correct; only the stamp write failed.
			s.log.Warn().Err(err).Str("order_id", orderID).Str("coin", coin).Msg("failed to persist paid stamp")
		} else {
			s.log.Info().Str("order_id", orderID).Str("coin", coin).Msg("payment detected")
		}
	}

	status := ports.PaymentStatusPending
	if paid {
		status = ports.PaymentStatusPaid
	}

	return &ports.OrderStatusResult{
		Status:                status,
		Received:              units.FormatSmallestUnits(received, cfg.Decimals),
		Required:              units.FormatSmallestUnits(quote.AmountSmallest, cfg.Decimals),
		ConfirmationsRequired: cfg.Confirmations,
	}, nil
}

// fetchRates looks up USD spot rates for all supported coins concurrently.
// All lookups run to completion; the first failure wins and names its coin.
func (s *OrderServiceImpl) fetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	var mu sync.Mutex
	out := make(map[string]decimal.Decimal, len(domain.SupportedCoins))

	g, gctx := errgroup.WithContext(ctx)
	for coin, cfg := range domain.SupportedCoins {
		g.Go(func() error {
			rate, err := s.rates.SpotRateUSD(gctx, cfg.Chain)
			if err != nil {
				s.log.Error().Err(err).Str("coin", coin).Msg("rate fetch failed")
				return apperror.ErrRateUnavailable(coin)
			}
			mu.Lock()
			out[coin] = rate
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchBalances snapshots receiving-address balances for all supported
// coins concurrently. Balance lookups cannot fail outward; an explorer
// outage yields the Unknown zero-floor baseline.
func (s *OrderServiceImpl) fetchBalances(ctx context.Context) map[string]domain.Balance {
	var mu sync.Mutex
	out := make(map[string]domain.Balance, len(domain.SupportedCoins))

	var wg sync.WaitGroup
	for coin, cfg := range domain.SupportedCoins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bal := s.balances.ConfirmedBalance(ctx, cfg.Chain, cfg.Address)
			mu.Lock()
			out[coin] = bal
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

func newOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
