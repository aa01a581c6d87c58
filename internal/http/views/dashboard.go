package views

import (
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
)

func (v *Views) dashboard(w http.ResponseWriter, r *http.Request) {
	p := page{Title: "Dashboard", Active: "dashboard"}

	summary, err := v.query.Summary(r.Context())
	if err != nil {
		v.logger.ErrorContext(r.Context(), "load dashboard", slog.Any("error", err))
		p.Error = apperr.Message(err)
		p.Data = inventory.Summary{}
		v.render(w, r, http.StatusInternalServerError, "dashboard", p)
		return
	}

	p.Data = summary
	v.render(w, r, http.StatusOK, "dashboard", p)
}
