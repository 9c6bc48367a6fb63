package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/cache"
	"github.com/Ansh037/ShopifyCheckout/internal/catalog"
	"github.com/Ansh037/ShopifyCheckout/internal/checkout"
	"github.com/Ansh037/ShopifyCheckout/internal/config"
	"github.com/Ansh037/ShopifyCheckout/internal/events"
	h "github.com/Ansh037/ShopifyCheckout/internal/http"
	"github.com/Ansh037/ShopifyCheckout/internal/session"
	"github.com/Ansh037/ShopifyCheckout/internal/shopify"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Development: cfg.Environment == "development",
		File:        cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// Continue traces started upstream; otelhttp reads the global propagator.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx := context.Background()

	// Catalog cache is optional
	var catalogCache cache.CatalogCache
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis ping failed, catalog cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			log.Info("redis ping succeeded", zap.String("addr", cfg.Redis.Addr))
			catalogCache = cache.NewRedisCache(redisClient, cfg.Redis.CatalogCacheTTL)
		}
	}

	// Without credentials both gateways run in mock/demo mode
	var (
		fetcher catalog.ProductFetcher
		creator checkout.CheckoutCreator
	)
	if cfg.Shopify.Configured() {
		client := shopify.NewClient(cfg.Shopify, log)
		fetcher = client
		creator = client
		log.Info("storefront API configured", zap.String("endpoint", shopify.Endpoint(cfg.Shopify)))
	} else {
		log.Warn("storefront credentials not configured, serving mock catalog and demo checkout")
	}

	var notifier checkout.Notifier
	if cfg.Kafka.Enabled() {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.CheckoutTopic, log)
		defer publisher.Close()
		notifier = publisher
		log.Info("publishing checkout events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.CheckoutTopic))
	}

	catalogGateway := catalog.NewGateway(fetcher, catalogCache, log)
	checkoutGateway := checkout.NewGateway(creator, notifier, log)

	sessions := session.NewRegistry(checkoutGateway, cfg.SessionIdleTTL, log)
	defer sessions.Close()

	router := h.NewRouter(h.RouterConfig{
		Catalog:        catalogGateway,
		Sessions:       sessions,
		Logger:         log,
		RequestTimeout: cfg.RequestTimeout,
		SecureCookies:  cfg.Environment == "production",
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", zap.String("port", cfg.HTTPPort), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
