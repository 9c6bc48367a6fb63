package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Placeholder values shipped in the sample .env. They mean "not configured".
const (
	PlaceholderShopDomain  = "your-shop.myshopify.com"
	PlaceholderAccessToken = "your-storefront-access-token"
)

type Config struct {
	HTTPPort        string
	Environment     string
	LogLevel        string
	LogFile         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SessionIdleTTL  time.Duration
	Shopify         ShopifyConfig
	Redis           RedisConfig
	Kafka           KafkaConfig
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// Configured reports whether real Storefront credentials are present.
func (c ShopifyConfig) Configured() bool {
	if c.ShopDomain == "" || c.AccessToken == "" {
		return false
	}
	return c.ShopDomain != PlaceholderShopDomain && c.AccessToken != PlaceholderAccessToken
}

// RedisConfig is optional; an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr            string
	Password        string
	CatalogCacheTTL time.Duration
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type KafkaConfig struct {
	Brokers       []string
	CheckoutTopic string
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigName(".env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHOPIFY_API_VERSION", "2023-10")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("SESSION_IDLE_TTL", "24h")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")
	v.SetDefault("KAFKA_CHECKOUT_TOPIC", "storefront.checkout-created")

	v.AutomaticEnv()

	// .env is optional, plain environment variables are enough
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	get := func(key string) string {
		if val := os.Getenv(key); val != "" {
			return strings.TrimSpace(val)
		}
		return strings.TrimSpace(v.GetString(key))
	}

	requestTimeout, err := parsePositiveDuration("REQUEST_TIMEOUT", get("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", get("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	sessionTTL, err := parseDuration("SESSION_IDLE_TTL", get("SESSION_IDLE_TTL"))
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parsePositiveDuration("CATALOG_CACHE_TTL", get("CATALOG_CACHE_TTL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort:        get("HTTP_PORT"),
		Environment:     get("ENVIRONMENT"),
		LogLevel:        get("LOG_LEVEL"),
		LogFile:         get("LOG_FILE"),
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
		SessionIdleTTL:  sessionTTL,
		Shopify: ShopifyConfig{
			ShopDomain:  get("SHOPIFY_DOMAIN"),
			AccessToken: get("SHOPIFY_STOREFRONT_ACCESS_TOKEN"),
			APIVersion:  get("SHOPIFY_API_VERSION"),
		},
		Redis: RedisConfig{
			Addr:            get("REDIS_ADDR"),
			Password:        get("REDIS_PASSWORD"),
			CatalogCacheTTL: cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(get("KAFKA_BROKERS")),
			CheckoutTopic: get("KAFKA_CHECKOUT_TOPIC"),
		},
	}, nil
}

// parseDuration accepts zero, which disables the setting.
func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
	}
	return d, nil
}

func parsePositiveDuration(key, raw string) (time.Duration, error) {
	d, err := parseDuration(key, raw)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("invalid %s %q: must be greater than zero", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
