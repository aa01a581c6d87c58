package handlers

import (
	"net/http"
)

// GetDashboardMetrics godoc
// @Summary Dashboard metrics
// @Tags metrics
// @Produce json
// @Success 200 {object} inventory.Summary
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/dashboard [get]
func (h *Handler) GetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.inventory.GetDashboardSummary(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, summary)
}
