package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Ansh037/ShopifyCheckout/internal/cache"
	"github.com/Ansh037/ShopifyCheckout/internal/domain"
	"github.com/Ansh037/ShopifyCheckout/internal/metrics"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

const (
	// PageSize is the number of products requested from the provider.
	PageSize = 20

	// FetchTimeout bounds a shared provider fetch, independently of the
	// request that started it.
	FetchTimeout = 15 * time.Second
)

// ProductFetcher is implemented by the Storefront client.
type ProductFetcher interface {
	Products(ctx context.Context, first int) ([]domain.Product, error)
}

// Listing is a catalog read. Mock is set when the built-in catalog was served.
type Listing struct {
	Products []domain.Product
	Mock     bool
}

type Gateway struct {
	fetcher ProductFetcher
	cache   cache.CatalogCache
	sfg     singleflight.Group // collapses concurrent provider fetches
	logger  *zap.Logger
}

// NewGateway builds a catalog gateway. A nil fetcher means the provider is not
// configured and every read is served from Mock. cache may be nil.
func NewGateway(fetcher ProductFetcher, c cache.CatalogCache, logger *zap.Logger) *Gateway {
	return &Gateway{
		fetcher: fetcher,
		cache:   c,
		logger:  logger,
	}
}

// FetchCatalog never fails: provider problems degrade to the mock catalog.
func (g *Gateway) FetchCatalog(ctx context.Context) []domain.Product {
	return g.Load(ctx).Products
}

func (g *Gateway) Load(ctx context.Context) Listing {
	log := logger.WithContext(ctx, g.logger)

	if g.fetcher == nil {
		log.Info("using mock catalog, storefront credentials not configured")
		metrics.CatalogFallbacks.WithLabelValues(metrics.ReasonNotConfigured).Inc()
		return Listing{Products: Mock(), Mock: true}
	}

	ch := g.sfg.DoChan("catalog", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), FetchTimeout)
		defer cancel()
		return g.fetch(fetchCtx, log)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			log.Error("storefront catalog fetch failed, falling back to mock catalog", zap.Error(res.Err))
			metrics.CatalogFallbacks.WithLabelValues(metrics.ReasonProviderError).Inc()
			return Listing{Products: Mock(), Mock: true}
		}
		return Listing{Products: res.Val.([]domain.Product)}
	case <-ctx.Done():
		// Only this caller gives up; the shared fetch keeps running for the others.
		log.Warn("catalog read abandoned, falling back to mock catalog", zap.Error(ctx.Err()))
		metrics.CatalogFallbacks.WithLabelValues(metrics.ReasonProviderError).Inc()
		return Listing{Products: Mock(), Mock: true}
	}
}

// Lookup resolves a variant against the current catalog.
func (g *Gateway) Lookup(ctx context.Context, variantID string) (domain.Product, domain.Variant, bool) {
	return domain.FindVariant(g.FetchCatalog(ctx), variantID)
}

func (g *Gateway) fetch(ctx context.Context, log *zap.Logger) ([]domain.Product, error) {
	if g.cache != nil {
		products, err := g.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("catalog cache get error", zap.Error(err))
		}
	}

	products, err := g.fetcher.Products(ctx, PageSize)
	if err != nil {
		return nil, err
	}
	log.Info("fetched catalog from storefront", zap.Int("products", len(products)))

	if g.cache != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := g.cache.Set(ctx, products); err != nil {
				g.logger.Warn("catalog cache set error", zap.Error(err))
			}
		}()
	}
	return products, nil
}
