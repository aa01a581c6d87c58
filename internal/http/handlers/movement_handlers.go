package handlers

import (
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// RecordMovement godoc
// @Summary Record a stock movement
// @Description Stock-in adds to and stock-out removes from the quantity on hand
// @Tags movements
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param movement body MovementRequest true "Movement"
// @Success 201 {object} MovementResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Router /api/products/{id}/movements [post]
// @Security BearerAuth
func (h *Handler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req MovementRequest
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.inventory.RecordMovement(r.Context(), inventory.MovementInput{
		ProductID: id,
		Type:      models.MovementType(req.Type),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Notes:     req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_ = writeJSON(w, http.StatusCreated, MovementResult{
		Product:  newProductResponse(res.Product),
		Movement: newMovementResponse(res.Movement),
		LowStock: res.LowStock,
	})
}

// GetMovements godoc
// @Summary Get product movement logs
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Param type query string false "Only IN or OUT movements"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id}/movements [get]
func (h *Handler) GetMovements(w http.ResponseWriter, r *http.Request) {
	filter, err := movementFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var errs [2]error
	filter.Offset, errs[0] = queryInt(r, "offset", 0)
	filter.Limit, errs[1] = queryInt(r, "limit", 1)
	if err := firstErr(errs[:]...); err != nil {
		h.writeError(w, r, err)
		return
	}

	movements, total, err := h.inventory.ListMovements(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := MovementsSearchResult{
		Data: make([]MovementResponse, len(movements)),
		Meta: Meta{TotalCount: total},
	}
	for i, m := range movements {
		resp.Data[i] = newMovementResponse(m)
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// ExportMovements godoc
// @Summary Export product movement logs
// @Tags movements
// @Produce text/csv, application/json
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id}/movements/export [get]
func (h *Handler) ExportMovements(w http.ResponseWriter, r *http.Request) {
	format, err := inventory.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filter, err := movementFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Look the product up first so a missing product still gets a JSON error.
	if _, err := h.inventory.GetProduct(r.Context(), *filter.ProductID); err != nil {
		h.writeError(w, r, err)
		return
	}

	setExportHeaders(w, format, "movements")
	if err := h.inventory.ExportMovements(r.Context(), filter, format, w); err != nil {
		h.writeError(w, r, err)
	}
}

func setExportHeaders(w http.ResponseWriter, format inventory.ExportFormat, name string) {
	contentType := "text/csv"
	if format == inventory.ExportJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
}

func movementFilter(r *http.Request) (repo.MovementFilter, error) {
	id, err := productID(r)
	if err != nil {
		return repo.MovementFilter{}, err
	}
	filter := repo.MovementFilter{ProductID: &id}

	if t := r.URL.Query().Get("type"); t != "" {
		typ, err := models.ParseMovementType(t)
		if err != nil {
			return repo.MovementFilter{}, badRequest("type", "must be one of [IN OUT]")
		}
		filter.Type = typ
	}

	var errs [2]error
	filter.Since, errs[0] = queryTime(r, "since")
	filter.Until, errs[1] = queryTime(r, "until")
	return filter, firstErr(errs[:]...)
}
