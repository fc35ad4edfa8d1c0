package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/services"
)

// PasswordResetter defines the interface that the reset service must implement.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// New password, at least 8 characters
	// required: true
	// example: newsecret123
	Password string `json:"password"`
}

// ResetPasswordResponse represents a successful reset response
// swagger:model ResetPasswordResponse
type ResetPasswordResponse struct {
	// Success message
	// example: Password has been reset
	Message string `json:"message"`
}

// ResetPasswordErrorResponse represents an error response for a reset
// swagger:model ResetPasswordErrorResponse
type ResetPasswordErrorResponse struct {
	// Error message
	// example: Password reset token is invalid or has expired
	Error string `json:"error"`
}

// NewResetPasswordHandler returns an HTTP handler that replaces the password
// of the account holding the reset token.
// @Summary Reset user password
// @Description Consumes a single-use reset token carried as a query parameter
// @Tags auth
// @Accept json
// @Produce json
// @Param token query string true "Password reset token"
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "New password"
// @Success 200 {object} handlers.ResetPasswordResponse "Password replaced"
// @Failure 400 {object} handlers.ResetPasswordErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		token := r.URL.Query().Get("token")

		err := svc.ResetPassword(r.Context(), token, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidResetToken):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error: "Password reset token is invalid or has expired",
				})
			case errors.Is(err, services.ErrValidation):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error: err.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ResetPasswordResponse{
			Message: "Password has been reset",
		})
	}
}
