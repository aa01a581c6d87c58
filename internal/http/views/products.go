package views

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

type productList struct {
	Query        string
	LowStockOnly bool
	Products     []models.Product
	Total        int
}

// ExportURL downloads the list as currently filtered.
func (l productList) ExportURL() string {
	q := url.Values{"format": {string(inventory.ExportCSV)}}
	if l.Query != "" {
		q.Set("q", l.Query)
	}
	if l.LowStockOnly {
		q.Set("low", "1")
	}
	return "/products/export?" + q.Encode()
}

func listFilter(r *http.Request) repo.ProductFilter {
	q := r.URL.Query()
	return repo.ProductFilter{Search: q.Get("q"), LowStockOnly: q.Get("low") == "1"}
}

func (v *Views) productList(w http.ResponseWriter, r *http.Request) {
	filter := listFilter(r)
	data := productList{Query: filter.Search, LowStockOnly: filter.LowStockOnly}
	p := page{Title: "Products", Active: "products", Data: &data}

	products, total, err := v.query.ListProducts(r.Context(), filter)
	if err != nil {
		p.Error = apperr.Message(err)
		v.render(w, r, http.StatusInternalServerError, "products", p)
		return
	}
	data.Products, data.Total = products, total
	v.render(w, r, http.StatusOK, "products", p)
}

func (v *Views) exportProducts(w http.ResponseWriter, r *http.Request) {
	format, err := inventory.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		v.redirectErr(w, r, "/products", err)
		return
	}

	// Buffer so a failure can still redirect instead of sending half a file.
	var buf bytes.Buffer
	if err := v.query.ExportProducts(r.Context(), listFilter(r), format, &buf); err != nil {
		v.redirectErr(w, r, "/products", err)
		return
	}

	contentType := "text/csv"
	if format == inventory.ExportJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="products.%s"`, format))
	_, _ = buf.WriteTo(w)
}

// productForm holds the raw values of the add/edit form so a rejected
// submission is shown back as typed.
type productForm struct {
	ID          int
	Name        string
	Description string
	Category    string
	Price       string
	Quantity    string
	MinQuantity string
	Errors      map[string]string
}

func (f productForm) Editing() bool {
	return f.ID != 0
}

func productFormFrom(p models.Product) productForm {
	return productForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		MinQuantity: strconv.Itoa(p.MinQuantity),
	}
}

func (v *Views) newProductForm(w http.ResponseWriter, r *http.Request) {
	v.render(w, r, http.StatusOK, "product_form", page{
		Title:  "Add Product",
		Active: "products",
		Data:   productForm{Price: "0", Quantity: "0", MinQuantity: "0"},
	})
}

func (v *Views) editProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := v.query.GetProduct(r.Context(), id)
	if err != nil {
		v.redirectErr(w, r, "/products", err)
		return
	}
	v.render(w, r, http.StatusOK, "product_form", page{Title: "Edit Product", Active: "products", Data: productFormFrom(product)})
}

// readProductForm parses the submitted form. The quantity field exists
// only on the add form.
func readProductForm(r *http.Request, id int) (productForm, inventory.ProductInput, *form) {
	f := newForm(r)
	in := inventory.ProductInput{
		Name:        f.str("name"),
		Description: f.str("description"),
		Category:    f.str("category"),
		Price:       f.floatVal("price"),
		MinQuantity: f.intVal("min_quantity"),
	}
	if id == 0 {
		in.Quantity = f.optionalInt("quantity")
	}

	raw := productForm{
		ID:          id,
		Name:        f.str("name"),
		Description: f.str("description"),
		Category:    f.str("category"),
		Price:       f.str("price"),
		Quantity:    f.str("quantity"),
		MinQuantity: f.str("min_quantity"),
		Errors:      f.errors,
	}
	return raw, in, f
}

func (v *Views) createProduct(w http.ResponseWriter, r *http.Request) {
	raw, in, f := readProductForm(r, 0)
	if f.valid() {
		created, err := v.cmd.AddProduct(r.Context(), in)
		if err == nil {
			redirect(w, r, "/products", fmt.Sprintf("Product %q added.", created.Name))
			return
		}
		if !apperr.Is(err, apperr.KindValidation) {
			v.redirectErr(w, r, "/products", err)
			return
		}
		f.merge(fieldErrors(err))
	}

	v.render(w, r, http.StatusUnprocessableEntity, "product_form", page{
		Title:  "Add Product",
		Active: "products",
		Error:  "Please correct the highlighted fields.",
		Data:   raw,
	})
}

func (v *Views) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	raw, in, f := readProductForm(r, id)
	if f.valid() {
		updated, err := v.cmd.EditProduct(r.Context(), id, in)
		if err == nil {
			redirect(w, r, "/products", fmt.Sprintf("Product %q updated.", updated.Name))
			return
		}
		if !apperr.Is(err, apperr.KindValidation) {
			v.redirectErr(w, r, "/products", err)
			return
		}
		f.merge(fieldErrors(err))
	}

	v.render(w, r, http.StatusUnprocessableEntity, "product_form", page{
		Title:  "Edit Product",
		Active: "products",
		Error:  "Please correct the highlighted fields.",
		Data:   raw,
	})
}

func (v *Views) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := v.cmd.DeleteProduct(r.Context(), id); err != nil {
		v.redirectErr(w, r, "/products", err)
		return
	}
	redirect(w, r, "/products", "Product deleted.")
}
