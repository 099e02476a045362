package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/billing-preview/internal/catalog"
)

type stubCatalog struct {
	addons []catalog.Addon
	err    error
}

func (s stubCatalog) Addons(context.Context) ([]catalog.Addon, error) {
	return s.addons, s.err
}

func newTestHandler(src CatalogSource) *Handler {
	return NewHandler(HandlerConfig{Service: NewService(ServiceConfig{Catalog: src})})
}

func postPreview(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Compute(rr, req)
	return rr
}

const baseRequest = `{
	"plan_charges": [
		{"id": "ch_1", "type": "FIXED", "currency": "USD", "amount": "100", "billing_model": "FLAT_FEE", "invoice_cadence": "ARREAR", "billing_period": "MONTHLY"}
	],
	"phases": [
		{"start_date": "2026-03-15T00:00:00Z", "billing_cycle": "ANNIVERSARY"}
	],
	"line_item_coupons": {
		"ch_1": {"type": "percentage", "percentage_off": "10"}
	},
	"coupons": [
		{"type": "fixed", "amount_off": "20"}
	]
}`

func TestComputeSuccess(t *testing.T) {
	rr := postPreview(t, newTestHandler(stubCatalog{}), baseRequest)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	resp := envelope.Data
	require.Equal(t, "90", resp.PlanSubtotal)
	require.Equal(t, "10", resp.LineItemDiscount)
	require.Equal(t, "20", resp.SubscriptionDiscount)
	require.Equal(t, "70", resp.NetPayable)
	require.Equal(t, "$70.00", resp.NetPayableDisplay)
	require.Equal(t, 2, resp.CouponsApplied.Total)
	require.Equal(t, 1, resp.CouponsApplied.LineItem)
	require.Equal(t, 1, resp.CouponsApplied.Subscription)
	require.Equal(t, "Bills on Apr 15, 2026 for 1 month", resp.BillingDescription)
}

func TestComputeInvalidJSON(t *testing.T) {
	rr := postPreview(t, newTestHandler(stubCatalog{}), "{not json")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "BAD_REQUEST")
}

func TestComputeValidationFailure(t *testing.T) {
	// Missing phases and an unknown billing model.
	body := `{"plan_charges": [{"id": "ch_1", "type": "FIXED", "currency": "USD", "billing_model": "SURPRISE", "billing_period": "MONTHLY"}]}`
	rr := postPreview(t, newTestHandler(stubCatalog{}), body)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "VALIDATION")
}

func TestComputeRejectsMalformedTiers(t *testing.T) {
	body := `{
		"plan_charges": [
			{"id": "ch_1", "type": "FIXED", "currency": "USD", "billing_model": "TIERED", "billing_period": "MONTHLY",
			 "tiers": [{"up_to": null, "unit_amount": "5", "flat_amount": "0"}, {"up_to": 10, "unit_amount": "4", "flat_amount": "0"}]}
		],
		"phases": [{"start_date": "2026-03-15T00:00:00Z"}]
	}`
	rr := postPreview(t, newTestHandler(stubCatalog{}), body)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "open-ended")
}

func TestComputeUpstreamFailure(t *testing.T) {
	body := `{
		"plan_charges": [
			{"id": "ch_1", "type": "FIXED", "currency": "USD", "amount": "100", "billing_model": "FLAT_FEE", "billing_period": "MONTHLY"}
		],
		"phases": [{"start_date": "2026-03-15T00:00:00Z"}],
		"addons": [{"addon_id": "addon_support", "quantity": 1}]
	}`
	h := newTestHandler(stubCatalog{err: errors.New("connection refused")})
	rr := postPreview(t, h, body)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Contains(t, rr.Body.String(), "UPSTREAM")
}

func TestComputeWithAddonsAndTax(t *testing.T) {
	body := `{
		"plan_charges": [
			{"id": "ch_1", "type": "FIXED", "currency": "USD", "amount": "100", "billing_model": "FLAT_FEE", "billing_period": "MONTHLY"}
		],
		"phases": [{"start_date": "2026-03-15T00:00:00Z"}],
		"addons": [{"addon_id": "addon_support", "quantity": 1}],
		"tax_rate_overrides": [{"currency": "USD", "auto_apply": true}]
	}`
	h := newTestHandler(stubCatalog{addons: monthlyAddonCatalog()})
	rr := postPreview(t, h, body)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.Equal(t, "50", envelope.Data.AddonSubtotal)
	require.Equal(t, "15", envelope.Data.Tax)
	require.Equal(t, "165", envelope.Data.NetPayable)
	require.Len(t, envelope.Data.AddonLines, 1)
	require.Equal(t, "$50.00", envelope.Data.AddonLines[0].Display)
}
