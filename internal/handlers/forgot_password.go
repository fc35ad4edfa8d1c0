package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/services"
)

// PasswordResetRequester defines the interface that the reset-request service must implement.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// ForgotPasswordRequest represents the JSON body for a reset request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`
}

// ForgotPasswordResponse represents a successful reset-request response
// swagger:model ForgotPasswordResponse
type ForgotPasswordResponse struct {
	// Success message
	// example: Password reset email sent
	Message string `json:"message"`
}

// ForgotPasswordErrorResponse represents an error response for a reset request
// swagger:model ForgotPasswordErrorResponse
type ForgotPasswordErrorResponse struct {
	// Error message
	// example: User not found
	Error string `json:"error"`
}

// NewForgotPasswordHandler returns an HTTP handler that emails a password reset link.
// @Summary Request a password reset
// @Description Generates a reset token valid for one hour and emails it
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Reset request"
// @Success 200 {object} handlers.ForgotPasswordResponse "Reset email sent"
// @Failure 404 {object} handlers.ForgotPasswordErrorResponse "No account with that email"
// @Router /auth/forgot-password [post]
func NewForgotPasswordHandler(svc PasswordResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		err := svc.RequestPasswordReset(r.Context(), req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ForgotPasswordResponse{
			Message: "Password reset email sent",
		})
	}
}
