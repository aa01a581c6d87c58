package handlers

import (
	"log/slog"
	"net/http"
)

// Login godoc
// @Summary Authenticate and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials UserLogin
	if err := readJSON(w, r, &credentials); err != nil {
		h.writeError(w, r, err)
		return
	}

	if !h.credentials.Check(credentials.Username, credentials.Password) {
		h.logger.WarnContext(r.Context(), "failed login", slog.String("username", credentials.Username))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.issuer.GenerateToken(credentials.Username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, LoginResult{Token: token})
}
