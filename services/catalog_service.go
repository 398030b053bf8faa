package services

import (
	"context"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// countTimeout bounds a shared count query once it no longer follows the
// caller that started it.
const countTimeout = 10 * time.Second

// CatalogService fronts a ProductProvider with the count cache. Listings
// always hit the provider and record their total; counts are served from the
// cache when possible, and concurrent misses for one key share a single
// provider call.
type CatalogService struct {
	provider ProductProvider
	counts   cache.CountCache
	inflight singleflight.Group
}

func NewCatalogService(provider ProductProvider, counts cache.CountCache) *CatalogService {
	return &CatalogService{provider: provider, counts: counts}
}

func (s *CatalogService) ListProducts(ctx context.Context, params filters.Params) (models.ProductPage, error) {
	page, err := s.provider.ListProducts(ctx, params)
	if err != nil {
		return models.ProductPage{}, err
	}
	s.counts.Set(ctx, filters.CountKey(params), page.Total)
	return page, nil
}

// GetCount returns the total for params. The bool reports a cache hit.
//
// The shared provider call runs on a context detached from any one caller,
// bounded by countTimeout, so a caller that goes away does not fail the
// others waiting on the same key. Each caller still gives up on its own ctx.
func (s *CatalogService) GetCount(ctx context.Context, params filters.Params) (int, bool, error) {
	key := filters.CountKey(params)
	if n, ok := s.counts.Get(ctx, key); ok {
		return n, true, nil
	}

	ch := s.inflight.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), countTimeout)
		defer cancel()

		n, err := s.provider.GetCount(callCtx, params)
		if err != nil {
			return 0, err
		}
		s.counts.Set(callCtx, key, n)
		return n, nil
	})

	select {
	case <-ctx.Done():
		return 0, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, false, res.Err
		}
		if res.Shared {
			zap.L().Debug("count request shared", zap.String("key", key), zap.Int("count", res.Val.(int)))
		}
		return res.Val.(int), false, nil
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return s.provider.GetProduct(ctx, id)
}
