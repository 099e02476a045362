package obs

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PreviewTotal counts invoice preview computations by outcome.
	PreviewTotal *prometheus.CounterVec
	// PreviewLatency records preview computation latency in milliseconds.
	PreviewLatency *prometheus.HistogramVec
	// CatalogCacheTotal counts catalog lookups by cache outcome.
	CatalogCacheTotal *prometheus.CounterVec
	// VersionCheckTotal counts version manifest polls by outcome.
	VersionCheckTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PreviewTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_total",
			Help:      "Count of invoice preview computations by outcome.",
		}, []string{"result"})
		PreviewLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "preview_duration_ms",
			Help:      "Latency for invoice preview computations in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"result"})
		CatalogCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "Count of catalog lookups by cache outcome.",
		}, []string{"result"})
		VersionCheckTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "version_check_total",
			Help:      "Count of version manifest polls by outcome.",
		}, []string{"result"})

		mustRegisterCollector(reg, PreviewTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PreviewTotal = v
			}
		})
		mustRegisterCollector(reg, PreviewLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				PreviewLatency = v
			}
		})
		mustRegisterCollector(reg, CatalogCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogCacheTotal = v
			}
		})
		mustRegisterCollector(reg, VersionCheckTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				VersionCheckTotal = v
			}
		})
	})
}

// PreviewObserve records one preview computation outcome and its latency.
// Safe to call before MustRegisterDomainMetrics; unregistered metrics are skipped.
func PreviewObserve(result string, d time.Duration) {
	if PreviewTotal != nil {
		PreviewTotal.WithLabelValues(result).Inc()
	}
	if PreviewLatency != nil {
		PreviewLatency.WithLabelValues(result).Observe(float64(d.Milliseconds()))
	}
}

// CatalogCacheObserve records one catalog lookup cache outcome ("hit" or "miss").
func CatalogCacheObserve(result string) {
	if CatalogCacheTotal != nil {
		CatalogCacheTotal.WithLabelValues(result).Inc()
	}
}

// VersionCheckObserve records one version manifest poll outcome.
func VersionCheckObserve(result string) {
	if VersionCheckTotal != nil {
		VersionCheckTotal.WithLabelValues(result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
