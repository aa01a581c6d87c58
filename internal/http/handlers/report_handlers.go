package handlers

import (
	"net/http"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/report"
)

// GenerateReport godoc
// @Summary Generate a PDF report
// @Description Writes an inventory snapshot or a transaction history to the reports directory
// @Tags reports
// @Accept json
// @Produce json
// @Param report body ReportRequest true "Report type (inventory|transactions) and optional RFC3339 bounds"
// @Success 201 {object} ReportResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/reports [post]
// @Security BearerAuth
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	typ, err := report.ParseType(req.Type)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var (
		since, until *time.Time
		errs         [2]error
	)
	since, errs[0] = parseBound("since", req.Since)
	until, errs[1] = parseBound("until", req.Until)
	if err := firstErr(errs[:]...); err != nil {
		h.writeError(w, r, err)
		return
	}

	path, err := h.reports.Generate(r.Context(), report.Request{Type: typ, Since: since, Until: until})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, ReportResult{Path: path})
}

func parseBound(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, badRequest(field, "must be an RFC3339 timestamp")
	}
	return &ts, nil
}
