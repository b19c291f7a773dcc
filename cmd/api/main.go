package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-checkout/config"
	httpHandler "crypto-checkout/internal/adapter/http/handler"
	memoryStorage "crypto-checkout/internal/adapter/storage/memory"
	redisStorage "crypto-checkout/internal/adapter/storage/redis"
	"crypto-checkout/internal/adapter/upstream"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/internal/service"
	"crypto-checkout/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("orders_backend", cfg.Orders.Backend).
		Msg("Starting crypto checkout")

	ctx := context.Background()

	// Order store backend
	var (
		orderStore     ports.OrderStore
		rateLimitStore *redisStorage.RateLimitStore
		healthCheckers []ports.HealthChecker
	)
	if cfg.Orders.Backend == "redis" {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		orderStore = redisStorage.NewOrderStore(rdb, cfg.Orders.TTL)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		orderStore = memoryStorage.NewOrderStore()
	}

	// Upstream clients share one timeout-bounded transport.
	upstreamClient := &http.Client{Timeout: cfg.Upstream.Timeout}
	rateSource := upstream.NewCoinbaseRateSource(cfg.Upstream.CoinbaseURL, upstreamClient, log)
	balanceSource := upstream.NewExplorerBalanceSource(
		cfg.Upstream.BlockchairURL,
		cfg.Upstream.BlockchairAPIKey,
		cfg.Upstream.SolanaRPCURL,
		upstreamClient,
		log,
	)
	geocoder := upstream.NewNominatimGeocoder(cfg.Upstream.NominatimURL, upstreamClient, log)

	// Business services
	orderSvc := service.NewOrderService(orderStore, rateSource, balanceSource, log)
	shippingSvc := service.NewShippingService(geocoder, log)
	notifySvc := service.NewDiscordNotificationService(
		cfg.Webhook.URL,
		&http.Client{Timeout: cfg.Webhook.Timeout},
		log,
	)
	if cfg.Webhook.URL == "" {
		log.Warn().Msg("Webhook URL not configured, checkout notifications disabled")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		OrderSvc:       orderSvc,
		ShippingSvc:    shippingSvc,
		NotifySvc:      notifySvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
