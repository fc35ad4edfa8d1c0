package handlers

import (
	"encoding/json"
	"net/http"
)

// LogoutResponse represents the logout acknowledgement
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// example: Successfully logged out
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler acknowledging logout.
// Tokens are stateless and carry no server-side session, so logout is a
// client-side operation: the token stays valid until it expires.
// @Summary Logout a user
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse "Logged out"
// @Router /auth/logout [post]
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogoutResponse{
			Message: "Successfully logged out",
		})
	}
}
