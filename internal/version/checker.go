package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/billing-preview/internal/obs"
)

var defaultHTTPClient = &http.Client{
	Timeout:   10 * time.Second,
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

// Current is the running build's version. Overridden at build time via
// -ldflags "-X .../internal/version.Current=v1.2.3".
var Current = "dev"

// Status is a snapshot of the last manifest poll.
type Status struct {
	Current         string    `json:"current"`
	Latest          string    `json:"latest"`
	UpdateAvailable bool      `json:"update_available"`
	CheckedAt       time.Time `json:"checked_at"`
}

type manifest struct {
	Version string `json:"version"`
}

// Checker periodically polls a version manifest and remembers the latest
// published version.
type Checker struct {
	URL        string
	Interval   time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger

	mu     sync.RWMutex
	status Status
}

// NewChecker constructs a Checker with sane defaults.
func NewChecker(url string, interval time.Duration, logger zerolog.Logger) *Checker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Checker{
		URL:      url,
		Interval: interval,
		Logger:   logger,
		status:   Status{Current: Current, CheckedAt: time.Time{}},
	}
}

// Run polls the manifest until the context is cancelled. An immediate
// first poll runs before the ticker starts.
func (c *Checker) Run(ctx context.Context) {
	if strings.TrimSpace(c.URL) == "" {
		return
	}
	c.poll(ctx)
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.poll(ctx)
		}
	}
}

// Latest returns the current status snapshot.
func (c *Checker) Latest() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.status
	if s.Current == "" {
		s.Current = Current
	}
	return s
}

func (c *Checker) poll(ctx context.Context) {
	// Cache-busting query param so intermediaries never serve a stale
	// manifest.
	url := fmt.Sprintf("%s?t=%d", c.URL, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.observeError(err)
		return
	}
	req.Header.Set("Cache-Control", "no-cache")

	client := c.HTTPClient
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		c.observeError(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.observeError(fmt.Errorf("manifest status %d", resp.StatusCode))
		return
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		c.observeError(err)
		return
	}

	latest := strings.TrimSpace(m.Version)
	c.mu.Lock()
	c.status = Status{
		Current:         Current,
		Latest:          latest,
		UpdateAvailable: latest != "" && latest != Current,
		CheckedAt:       time.Now(),
	}
	c.mu.Unlock()
	obs.VersionCheckObserve("ok")
}

func (c *Checker) observeError(err error) {
	obs.VersionCheckObserve("error")
	c.Logger.Warn().Err(err).Str("url", c.URL).Msg("version manifest poll failed")
}
