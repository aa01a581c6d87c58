package views

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

const movementsPageSize = 25

type movementForm struct {
	Type      string
	ProductID string
	Quantity  string
	UnitPrice string
	Notes     string
	Products  []models.Product
	Errors    map[string]string
}

func (f movementForm) Out() bool {
	return strings.EqualFold(f.Type, string(models.MovementOut))
}

func (f movementForm) Title() string {
	if f.Out() {
		return "Stock Out"
	}
	return "Stock In"
}

func (f movementForm) Selected(id int) bool {
	return f.ProductID == strconv.Itoa(id)
}

func (v *Views) newMovementForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := movementForm{
		Type:      q.Get("type"),
		ProductID: q.Get("product_id"),
		Quantity:  "1",
	}
	if data.Type == "" {
		data.Type = "in"
	}
	v.renderMovementForm(w, r, http.StatusOK, data, "")
}

func (v *Views) renderMovementForm(w http.ResponseWriter, r *http.Request, status int, data movementForm, errMsg string) {
	products, _, err := v.query.ListProducts(r.Context(), repo.ProductFilter{})
	if err != nil {
		status, errMsg = http.StatusInternalServerError, apperr.Message(err)
	}
	data.Products = products

	v.render(w, r, status, "movement_form", page{Title: data.Title(), Active: "movements", Error: errMsg, Data: data})
}

func (v *Views) createMovement(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	data := movementForm{
		Type:      f.str("type"),
		ProductID: f.str("product_id"),
		Quantity:  f.str("quantity"),
		UnitPrice: f.str("unit_price"),
		Notes:     f.str("notes"),
		Errors:    f.errors,
	}
	in := inventory.MovementInput{
		ProductID: f.intVal("product_id"),
		Type:      models.MovementType(data.Type),
		Quantity:  f.intVal("quantity"),
		UnitPrice: f.optionalFloat("unit_price"),
		Notes:     data.Notes,
	}

	if f.valid() {
		res, err := v.cmd.RecordMovement(r.Context(), in)
		if err == nil {
			redirect(w, r, "/movements", movementFlash(res))
			return
		}
		if !apperr.Is(err, apperr.KindValidation) {
			back := url.Values{"type": {data.Type}, "product_id": {data.ProductID}}
			v.redirectErr(w, r, "/movements/new?"+back.Encode(), err)
			return
		}
		f.merge(fieldErrors(err))
	}

	v.renderMovementForm(w, r, http.StatusUnprocessableEntity, data, "Please correct the highlighted fields.")
}

func movementFlash(res inventory.MovementResult) string {
	msg := fmt.Sprintf("%s of %d recorded for %q. %d on hand.",
		res.Movement.Type.Label(), res.Movement.Quantity, res.Product.Name, res.Product.Quantity)
	if res.LowStock {
		msg += fmt.Sprintf(" Warning: at or below the minimum of %d.", res.Product.MinQuantity)
	}
	return msg
}

type movementList struct {
	ProductID string
	Type      string
	Movements []models.Movement
	Products  []models.Product
	Total     int
	Page      int
	HasPrev   bool
	HasNext   bool
}

func (l movementList) PageURL(n int) string {
	q := url.Values{"page": {strconv.Itoa(n)}}
	if l.ProductID != "" {
		q.Set("product_id", l.ProductID)
	}
	if l.Type != "" {
		q.Set("type", l.Type)
	}
	return "/movements?" + q.Encode()
}

func (v *Views) movementList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := movementList{ProductID: q.Get("product_id"), Page: 1}
	p := page{Title: "Transaction History", Active: "movements", Data: &data}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 1 {
		data.Page = n
	}
	offset, limit := (data.Page-1)*movementsPageSize, movementsPageSize
	filter := repo.MovementFilter{Offset: &offset, Limit: &limit}
	if id, err := strconv.Atoi(data.ProductID); err == nil {
		filter.ProductID = &id
	} else {
		data.ProductID = ""
	}
	if t, err := models.ParseMovementType(q.Get("type")); err == nil {
		filter.Type = t
		data.Type = string(t)
	}

	products, _, err := v.query.ListProducts(r.Context(), repo.ProductFilter{})
	if err != nil {
		p.Error = apperr.Message(err)
		v.render(w, r, http.StatusInternalServerError, "movements", p)
		return
	}
	data.Products = products

	movements, total, err := v.query.ListMovements(r.Context(), filter)
	if err != nil {
		p.Error = apperr.Message(err)
		v.render(w, r, http.StatusOK, "movements", p)
		return
	}
	data.Movements, data.Total = movements, total
	data.HasPrev = data.Page > 1
	data.HasNext = offset+len(movements) < total

	v.render(w, r, http.StatusOK, "movements", p)
}
