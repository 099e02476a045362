package version

import (
	"net/http"

	"github.com/noah-isme/billing-preview/internal/common"
)

// Handler exposes the version status endpoint.
type Handler struct {
	Checker *Checker
}

// Get handles GET /version.
func (h Handler) Get(w http.ResponseWriter, _ *http.Request) {
	status := Status{Current: Current}
	if h.Checker != nil {
		status = h.Checker.Latest()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": status})
}
