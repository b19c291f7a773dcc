package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// OrdersConfig selects the order store backend.
type OrdersConfig struct {
	Backend string        `mapstructure:"backend"` // memory, redis
	TTL     time.Duration `mapstructure:"ttl"`     // redis backend only; 0 = no expiry
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // empty = redis disabled
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// WebhookConfig holds the checkout notification webhook settings.
type WebhookConfig struct {
	URL     string        `mapstructure:"url"` // empty = notifications disabled
	Timeout time.Duration `mapstructure:"timeout"`
}

// UpstreamConfig holds base URLs for quote, explorer and geocoding providers.
// Overridable so tests can point the clients at local servers.
type UpstreamConfig struct {
	CoinbaseURL      string        `mapstructure:"coinbase_url"`
	BlockchairURL    string        `mapstructure:"blockchair_url"`
	BlockchairAPIKey string        `mapstructure:"blockchair_api_key"`
	SolanaRPCURL     string        `mapstructure:"solana_rpc_url"`
	NominatimURL     string        `mapstructure:"nominatim_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CHK (Checkout).
// Nested keys use underscore: CHK_SERVER_PORT, CHK_WEBHOOK_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("orders.backend", "memory")
	v.SetDefault("orders.ttl", "0")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("upstream.coinbase_url", "https://api.coinbase.com")
	v.SetDefault("upstream.blockchair_url", "https://api.blockchair.com")
	v.SetDefault("upstream.blockchair_api_key", "")
	v.SetDefault("upstream.solana_rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("upstream.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CHK_UPSTREAM_BLOCKCHAIR_API_KEY -> upstream.blockchair_api_key
	v.SetEnvPrefix("CHK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Orders.Backend == "redis" && !cfg.Redis.Enabled() {
		return nil, fmt.Errorf("orders.backend is redis but redis.addr is empty")
	}

	return &cfg, nil
}
