package catalog

import (
	"net/http"

	"github.com/noah-isme/billing-preview/internal/common"
)

// Handler exposes read-through catalog endpoints for the console.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// Addons handles GET /api/v1/addons.
func (h *Handler) Addons(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	items, err := h.service.Addons(r.Context())
	if err != nil {
		renderFetchError(w, err, "addon catalog unavailable")
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// renderFetchError distinguishes an upstream error response from a
// transport failure that never reached the backend at all.
func renderFetchError(w http.ResponseWriter, err error, message string) {
	if common.IsAppError(err) {
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM", message, nil)
		return
	}
	common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", message, nil)
}

// Refresh handles POST /api/v1/catalog/refresh. It drops the cached
// catalogs so the next read refetches from the backend.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	if err := h.service.InvalidateAddons(r.Context()); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not invalidate addon cache", nil)
		return
	}
	if err := h.service.InvalidatePriceUnits(r.Context()); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not invalidate price unit cache", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": "refreshed"}})
}

// PriceUnits handles GET /api/v1/priceunits.
func (h *Handler) PriceUnits(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	items, err := h.service.PriceUnits(r.Context())
	if err != nil {
		renderFetchError(w, err, "price unit catalog unavailable")
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}
