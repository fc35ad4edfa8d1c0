package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/models"
)

// SubmissionLister defines the interface that the archive service must implement.
type SubmissionLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SubmissionDB, error)
}

// NewListResponsesHandler returns an HTTP handler serving the authenticated
// user's submission records, newest first.
// @Summary List the user's webhook responses
// @Tags n8n
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SubmissionDB
// @Failure 401 "Unauthorized"
// @Router /n8n/responses [get]
func NewListResponsesHandler(svc SubmissionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		submissions, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list submissions", "user_id", userID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "Error retrieving n8n responses"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(submissions)
	}
}
