package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/stockroom/internal/inventory"
)

const maxImportSize = 10 << 20

// ImportProducts godoc
// @Summary Import products via CSV
// @Description Columns: name, price, quantity and optionally min_quantity (or threshold), description, category
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} inventory.ImportResult
// @Failure 400 {object} ErrorResponse
// @Router /api/products/import [post]
// @Security BearerAuth
func (h *Handler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	mode := inventory.ParseImportMode(r.URL.Query().Get("mode"))

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, badRequest("file", "missing file"))
		return
	}
	defer file.Close()

	result, err := h.inventory.ImportProducts(r.Context(), file, mode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, result)
}
