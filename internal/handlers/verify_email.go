package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/services"
)

// EmailVerifier defines the interface that the verification service must implement.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, token string) error
}

// VerifyEmailResponse represents a successful verification response
// swagger:model VerifyEmailResponse
type VerifyEmailResponse struct {
	// Success message
	// example: Email verified successfully
	Message string `json:"message"`
}

// VerifyEmailErrorResponse represents an error response for verification
// swagger:model VerifyEmailErrorResponse
type VerifyEmailErrorResponse struct {
	// Error message
	// example: Invalid verification token
	Error string `json:"error"`
}

// NewVerifyEmailHandler returns an HTTP handler for email verification.
// @Summary Verify user email
// @Description Consumes a single-use verification token and marks the account verified
// @Tags auth
// @Produce json
// @Param token query string true "Email verification token"
// @Success 200 {object} handlers.VerifyEmailResponse "Email verified"
// @Failure 400 {object} handlers.VerifyEmailErrorResponse "Invalid verification token"
// @Router /auth/verify-email [get]
func NewVerifyEmailHandler(svc EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")

		err := svc.VerifyEmail(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidVerificationToken):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(VerifyEmailErrorResponse{
					Error: "Invalid verification token",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(VerifyEmailErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(VerifyEmailResponse{
			Message: "Email verified successfully",
		})
	}
}
