package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// CreateProduct godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.inventory.AddProduct(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_ = writeJSON(w, http.StatusCreated, newProductResponse(created))
}

// GetProducts godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} ProductsSearchResult
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, repo.ProductFilter{})
}

// SearchProducts godoc
// @Summary Search products with filters and pagination
// @Tags products
// @Produce json
// @Param q query string false "Match name, description or category"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param lowStock query bool false "Only products at or below their minimum quantity"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {object} ErrorResponse
// @Router /api/products/search [get]
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.listProducts(w, r, filter)
}

// ExportProducts godoc
// @Summary Export the product list
// @Description Takes the same filters as search; pagination is ignored
// @Tags products
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param q query string false "Match name, description or category"
// @Param category query string false "Filter by category"
// @Param lowStock query bool false "Only products at or below their minimum quantity"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /api/products/export [get]
// @Security BearerAuth
func (h *Handler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	format, err := inventory.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filter, err := productFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	setExportHeaders(w, format, "products")
	if err := h.inventory.ExportProducts(r.Context(), filter, format, w); err != nil {
		h.writeError(w, r, err)
	}
}

func productFilter(r *http.Request) (repo.ProductFilter, error) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		Search:       q.Get("q"),
		Name:         q.Get("name"),
		Category:     q.Get("category"),
		LowStockOnly: q.Get("lowStock") == "true",
	}

	var errs [6]error
	filter.MinPrice, errs[0] = queryFloat(r, "minPrice")
	filter.MaxPrice, errs[1] = queryFloat(r, "maxPrice")
	filter.MinQty, errs[2] = queryInt(r, "minQty", 0)
	filter.MaxQty, errs[3] = queryInt(r, "maxQty", 0)
	filter.Offset, errs[4] = queryInt(r, "offset", 0)
	filter.Limit, errs[5] = queryInt(r, "limit", 1)
	if err := firstErr(errs[:]...); err != nil {
		return repo.ProductFilter{}, err
	}
	return filter, nil
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request, filter repo.ProductFilter) {
	products, total, err := h.inventory.ListProducts(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		resp.Data[i] = newProductResponse(p)
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// GetProductByID godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.inventory.GetProduct(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, newProductResponse(p))
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Omitting quantity keeps the quantity on hand
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.inventory.EditProduct(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, newProductResponse(updated))
}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Products referenced by stock movements cannot be deleted
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/products/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.inventory.DeleteProduct(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
