package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestListResponsesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionLister(ctrl)
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		records := []models.SubmissionDB{
			{SubmissionID: uuid.New(), UserID: userID, Payload: json.RawMessage(`{"n": 2}`)},
			{SubmissionID: uuid.New(), UserID: userID, Payload: json.RawMessage(`{"n": 1}`)},
		}

		mockSvc.EXPECT().
			ListByUser(gomock.Any(), userID).
			Return(records, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/n8n/responses", nil)
		req = req.WithContext(middlewares.ContextWithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()

		NewListResponsesHandler(mockSvc)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []models.SubmissionDB
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 2)
		assert.Equal(t, records[0].SubmissionID, got[0].SubmissionID)
	})

	t.Run("unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/n8n/responses", nil)
		rec := httptest.NewRecorder()

		NewListResponsesHandler(mockSvc)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.EXPECT().
			ListByUser(gomock.Any(), userID).
			Return(nil, errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/api/n8n/responses", nil)
		req = req.WithContext(middlewares.ContextWithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()

		NewListResponsesHandler(mockSvc)(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error": "Error retrieving n8n responses"}`, rec.Body.String())
	})
}
