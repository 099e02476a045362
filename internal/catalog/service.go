package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/noah-isme/billing-preview/internal/obs"
)

const (
	addonsCacheKey     = "catalog:addons"
	priceUnitsCacheKey = "catalog:priceunits"
)

// Service serves catalog reads through the TTL cache, collapsing
// concurrent misses for the same key into a single upstream fetch.
type Service struct {
	client *Client
	cache  *Cache

	mu       sync.Mutex
	inflight map[string]*fetch
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Client *Client
	Cache  *Cache
}

type fetch struct {
	done  chan struct{}
	value any
	err   error
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("catalog: client is required")
	}
	return &Service{
		client:   cfg.Client,
		cache:    cfg.Cache,
		inflight: make(map[string]*fetch),
	}, nil
}

// Addons returns the addon catalog, cached for the configured TTL.
func (s *Service) Addons(ctx context.Context) ([]Addon, error) {
	return cachedList(ctx, s, addonsCacheKey, func(ctx context.Context) ([]Addon, error) {
		return s.client.ListAddons(ctx)
	})
}

// PriceUnits returns the custom price-unit catalog, cached for the configured TTL.
func (s *Service) PriceUnits(ctx context.Context) ([]PriceUnit, error) {
	return cachedList(ctx, s, priceUnitsCacheKey, func(ctx context.Context) ([]PriceUnit, error) {
		return s.client.ListPriceUnits(ctx)
	})
}

// InvalidateAddons drops the cached addon catalog so the next read
// refetches from the backend.
func (s *Service) InvalidateAddons(ctx context.Context) error {
	return s.cache.Invalidate(ctx, addonsCacheKey)
}

// InvalidatePriceUnits drops the cached price-unit catalog.
func (s *Service) InvalidatePriceUnits(ctx context.Context) error {
	return s.cache.Invalidate(ctx, priceUnitsCacheKey)
}

func cachedList[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	ok, err := s.cache.GetJSON(ctx, key, &cached)
	if err == nil && ok {
		obs.CatalogCacheObserve("hit")
		return cached, nil
	}
	obs.CatalogCacheObserve("miss")

	s.mu.Lock()
	if f, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-f.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if f.err != nil {
			return nil, f.err
		}
		return f.value.([]T), nil
	}
	f := &fetch{done: make(chan struct{})}
	s.inflight[key] = f
	s.mu.Unlock()

	items, err := load(ctx)
	f.value, f.err = items, err
	close(f.done)

	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, items)
	return items, nil
}
