package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/services"
)

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, displayName, email, password string) error
}

// SignupRequest represents the JSON body for user registration
// swagger:model SignupRequest
type SignupRequest struct {
	// Display name
	// required: true
	// example: John Doe
	DisplayName string `json:"displayName"`

	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password, at least 8 characters
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// SignupResponse represents a successful signup response
// swagger:model SignupResponse
type SignupResponse struct {
	// Success message
	// example: Verification email sent
	Message string `json:"message"`
}

// SignupErrorResponse represents an error response for signup
// swagger:model SignupErrorResponse
type SignupErrorResponse struct {
	// Error message
	// example: Email already registered
	Error string `json:"error"`
}

// NewSignupHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates an unverified account and sends a verification email. The password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "User registration request"
// @Success 200 {object} handlers.SignupResponse "Verification email sent"
// @Failure 400 {object} handlers.SignupErrorResponse "Validation failure or email already registered"
// @Router /auth/signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SignupErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		err := svc.Signup(r.Context(), req.DisplayName, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: err.Error(),
				})
			case errors.Is(err, services.ErrEmailTaken):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Email already registered",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SignupResponse{
			Message: "Verification email sent",
		})
	}
}
