package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindReferenced, apperr.KindInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto the error taxonomy and writes it as JSON.
// Failures without a kind are logged and reported without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(r.Context(), "unexpected error", slog.String("path", r.URL.Path), slog.Any("error", err))
		_ = writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: apperr.Message(err),
		})
		return
	}

	status := statusFor(appErr.Kind())
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	_ = writeJSON(w, status, ErrorResponse{
		Code:    appErr.Code(),
		Message: appErr.Msg(),
		Fields:  appErr.Fields(),
	})
}

func badRequest(field, description string) error {
	return apperr.Validation(apperr.FieldError{Field: field, Description: description})
}
