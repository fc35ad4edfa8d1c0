package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMultipart assembles a multipart body with one file part of the given
// content type plus optional text fields.
func buildMultipart(t *testing.T, fileName, contentType string, fileBody []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename=%q`, fileName))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(fileBody)
		require.NoError(t, err)
	}

	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func newUploadRequest(t *testing.T, userID uuid.UUID, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/n8n", body)
	req.Header.Set("Content-Type", contentType)
	return req.WithContext(middlewares.ContextWithUserID(req.Context(), userID))
}

func TestWebhookHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionProcessor(ctrl)
	uploadDir := t.TempDir()
	userID := uuid.New()
	payload := json.RawMessage(`{"score": 87, "feedback": "solid"}`)

	var seenPath string
	mockSvc.EXPECT().
		Process(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, fields map[string]string, filePath string) (json.RawMessage, error) {
			seenPath = filePath
			// the transient file must exist while the pipeline runs
			_, err := os.Stat(filePath)
			assert.NoError(t, err)
			assert.Equal(t, "Backend Engineer", fields["jobTitle"])
			return payload, nil
		})

	body, contentType := buildMultipart(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4 fake"), map[string]string{
		"jobTitle": "Backend Engineer",
	})
	req := newUploadRequest(t, userID, body, contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, uploadDir)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, string(payload), rec.Body.String())

	// transient file is removed once the handler returns
	_, err := os.Stat(seenPath)
	assert.True(t, os.IsNotExist(err))
}

func TestWebhookHandler_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionProcessor(ctrl)

	body, contentType := buildMultipart(t, "resume.pdf", "application/pdf", []byte("data"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/n8n", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, t.TempDir())(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookHandler_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionProcessor(ctrl)

	body, contentType := buildMultipart(t, "", "", nil, map[string]string{"jobTitle": "Backend Engineer"})
	req := newUploadRequest(t, uuid.New(), body, contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, t.TempDir())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "No file uploaded."}`, rec.Body.String())
}

func TestWebhookHandler_UnsupportedType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// the service must never be reached for a rejected upload
	mockSvc := NewMockSubmissionProcessor(ctrl)

	body, contentType := buildMultipart(t, "resume.exe", "application/octet-stream", []byte("MZ"), nil)
	req := newUploadRequest(t, uuid.New(), body, contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, t.TempDir())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Unsupported file type. Allowed: PDF, DOC, DOCX, TXT."}`, rec.Body.String())
}

func TestWebhookHandler_QuotaExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionProcessor(ctrl)
	userID := uuid.New()

	var seenPath string
	mockSvc.EXPECT().
		Process(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ map[string]string, filePath string) (json.RawMessage, error) {
			seenPath = filePath
			return nil, services.ErrQuotaExceeded
		})

	body, contentType := buildMultipart(t, "resume.pdf", "application/pdf", []byte("data"), nil)
	req := newUploadRequest(t, userID, body, contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, t.TempDir())(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	// plain-text body, not JSON
	assert.Equal(t, "You have reached the maximum number of requests.", rec.Body.String())

	// cleanup also runs on the quota path
	_, err := os.Stat(seenPath)
	assert.True(t, os.IsNotExist(err))
}

func TestWebhookHandler_RelayFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionProcessor(ctrl)
	userID := uuid.New()

	mockSvc.EXPECT().
		Process(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: connection refused", services.ErrRelayFailed))

	body, contentType := buildMultipart(t, "resume.txt", "text/plain", []byte("plain resume"), nil)
	req := newUploadRequest(t, userID, body, contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, t.TempDir())(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error": "Error processing webhook"}`, rec.Body.String())
}

func TestWebhookHandler_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubmissionProcessor(ctrl)
	userID := uuid.New()

	mockSvc.EXPECT().
		Process(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("insert failed"))

	body, contentType := buildMultipart(t, "resume.pdf", "application/pdf", []byte("data"), nil)
	req := newUploadRequest(t, userID, body, contentType)
	rec := httptest.NewRecorder()

	NewWebhookHandler(mockSvc, t.TempDir())(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Error processing webhook"}`, rec.Body.String())
}
