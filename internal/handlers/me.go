package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/models"
)

// MeUserGetter defines the interface that the profile service must implement.
type MeUserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// MeResponse represents the authenticated user payload
// swagger:model MeResponse
type MeResponse struct {
	User  *models.UserDB `json:"user"`
	Token string         `json:"token"`
}

// NewMeHandler returns an HTTP handler serving the authenticated user.
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MeResponse "The authenticated user"
// @Failure 401 "Unauthorized"
// @Router /auth/me [get]
func NewMeHandler(svc MeUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		user, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to load authenticated user", "user_id", userID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Echo the bearer token back, as the frontend stores it from here.
		token := ""
		if parts := strings.Fields(r.Header.Get("Authorization")); len(parts) == 2 {
			token = parts[1]
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MeResponse{
			User:  user,
			Token: token,
		})
	}
}
