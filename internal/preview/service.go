package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/billing-preview/internal/catalog"
	"github.com/noah-isme/billing-preview/internal/obs"
)

// CatalogSource supplies the addon catalog the preview matches addon
// requests against.
type CatalogSource interface {
	Addons(ctx context.Context) ([]catalog.Addon, error)
}

// Service computes invoice previews, fetching the addon catalog only when
// a preview actually references addons.
type Service struct {
	catalog CatalogSource
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Catalog CatalogSource
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) *Service {
	return &Service{catalog: cfg.Catalog}
}

// Preview resolves the request's collaborators and builds the breakdown.
// The catalog fetch is the only fallible step; the calculation itself is
// a pure function of its inputs.
func (s *Service) Preview(ctx context.Context, req Request) (Breakdown, error) {
	start := time.Now()

	var addons []catalog.Addon
	if len(req.Addons) > 0 {
		if s.catalog == nil {
			return Breakdown{}, fmt.Errorf("preview: addon catalog not configured")
		}
		var err error
		addons, err = s.catalog.Addons(ctx)
		if err != nil {
			obs.PreviewObserve("error", time.Since(start))
			return Breakdown{}, fmt.Errorf("preview: fetch addons: %w", err)
		}
	}

	b := Build(req.ToInput(addons))
	obs.PreviewObserve("ok", time.Since(start))
	return b, nil
}
