package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/billing-preview/internal/common"
)

// defaultHTTPClient traces outbound catalog calls so backend fetches
// show up on the request span like every other hop.
var defaultHTTPClient = &http.Client{
	Timeout:   10 * time.Second,
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

// Addon is an addon definition from the billing backend, carrying the
// price list the preview matches against.
type Addon struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Prices []AddonPrice `json:"prices"`
}

// AddonPrice is one price attached to an addon. Amount stays a decimal
// string on the wire and a decimal in memory.
type AddonPrice struct {
	Type          string          `json:"type"`
	Currency      string          `json:"currency"`
	BillingPeriod string          `json:"billing_period"`
	Amount        decimal.Decimal `json:"amount"`
}

// PriceUnit is a custom unit of account with a conversion rate to a base
// fiat currency.
type PriceUnit struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	Symbol         string          `json:"symbol"`
	BaseCurrency   string          `json:"base_currency"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// Client fetches catalog data from the billing backend over REST JSON.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	PageLimit  int
}

type listEnvelope[T any] struct {
	Items []T `json:"items"`
}

// ListAddons fetches the addon catalog.
func (c *Client) ListAddons(ctx context.Context) ([]Addon, error) {
	return listResource[Addon](ctx, c, "/v1/addons")
}

// ListPriceUnits fetches the custom price-unit catalog.
func (c *Client) ListPriceUnits(ctx context.Context) ([]PriceUnit, error) {
	return listResource[PriceUnit](ctx, c, "/v1/priceunits")
}

func listResource[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	limit := c.PageLimit
	if limit <= 0 {
		limit = 1000
	}
	endpoint, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: build url: %w", err)
	}
	endpoint += "?limit=" + strconv.Itoa(limit) + "&offset=0"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewAppError("UPSTREAM", fmt.Sprintf("catalog responded with status %d", resp.StatusCode), http.StatusBadGateway, fmt.Errorf("catalog: fetch %s: unexpected status %d", path, resp.StatusCode))
	}
	var envelope listEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return envelope.Items, nil
}
