package views

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/report"
)

const dateLayout = "2006-01-02"

type reportForm struct {
	Type   string
	Since  string
	Until  string
	Errors map[string]string
}

func (v *Views) reportForm(w http.ResponseWriter, r *http.Request) {
	v.render(w, r, http.StatusOK, "reports", page{Title: "Reports", Active: "reports", Data: reportForm{Type: string(report.Inventory)}})
}

func (v *Views) createReport(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	data := reportForm{
		Type:   f.str("type"),
		Since:  f.str("since"),
		Until:  f.str("until"),
		Errors: f.errors,
	}

	req := report.Request{Type: report.Type(data.Type)}
	req.Since = parseDate(f, "since", data.Since)
	if until := parseDate(f, "until", data.Until); until != nil {
		// The until date is inclusive.
		end := until.Add(24*time.Hour - time.Nanosecond)
		req.Until = &end
	}

	if f.valid() {
		path, err := v.cmd.GenerateReport(r.Context(), req)
		if err == nil {
			redirect(w, r, "/reports", fmt.Sprintf("Report saved to %s", path))
			return
		}
		if !apperr.Is(err, apperr.KindValidation) {
			v.redirectErr(w, r, "/reports", err)
			return
		}
		f.merge(fieldErrors(err))
	}

	v.render(w, r, http.StatusUnprocessableEntity, "reports", page{
		Title:  "Reports",
		Active: "reports",
		Error:  "Please correct the highlighted fields.",
		Data:   data,
	})
}

func parseDate(f *form, field, s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		f.errors[field] = "must be a date (YYYY-MM-DD)"
		return nil
	}
	return &t
}
