package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/services"
)

const (
	uploadField    = "document"
	maxUploadBytes = 5 << 20 // 5 MiB
)

// allowedUploadTypes is the resume document whitelist, checked at the
// transport boundary before any downstream work starts.
var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// SubmissionProcessor defines the interface that the submission pipeline
// service must implement.
type SubmissionProcessor interface {
	Process(ctx context.Context, userID uuid.UUID, fields map[string]string, filePath string) (json.RawMessage, error)
}

// WebhookErrorResponse represents an error response for the upload pipeline
// swagger:model WebhookErrorResponse
type WebhookErrorResponse struct {
	// Error message
	// example: No file uploaded.
	Error string `json:"error"`
}

// NewWebhookHandler returns the HTTP handler for the resume upload pipeline:
// it accepts one multipart document, stores it transiently, hands it to the
// submission service, and guarantees the transient file is removed on every
// exit path.
// @Summary Submit a resume for evaluation
// @Description Relays the uploaded document plus job-context form fields to the automation webhook and returns its reply verbatim
// @Tags n8n
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param document formData file true "Resume document (PDF, DOC, DOCX or TXT, max 5 MiB)"
// @Success 200 {object} object "Webhook reply, stored as the submission payload"
// @Failure 400 {object} handlers.WebhookErrorResponse "Missing file or unsupported type/size"
// @Failure 429 {string} string "You have reached the maximum number of requests."
// @Failure 502 {object} handlers.WebhookErrorResponse "Webhook relay failed"
// @Router /n8n [post]
func NewWebhookHandler(svc SubmissionProcessor, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "invalid multipart form"})
			return
		}

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "No file uploaded."})
			return
		}
		defer file.Close()

		if !allowedUploadTypes[header.Header.Get("Content-Type")] {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "Unsupported file type. Allowed: PDF, DOC, DOCX, TXT."})
			return
		}
		if header.Size > maxUploadBytes {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "File too large. Maximum size is 5 MiB."})
			return
		}

		filePath, err := saveUpload(uploadDir, header.Filename, file)
		if err != nil {
			logger.Log.Errorw("failed to store upload", "user_id", userID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "Internal server error"})
			return
		}
		// Cleanup runs on every exit path below, exactly once. Failures are
		// logged and never escalated: they must not mask the pipeline outcome.
		defer func() {
			if err := os.Remove(filePath); err != nil {
				logger.Log.Errorw("failed to delete uploaded file", "path", filePath, "err", err)
			}
		}()

		fields := make(map[string]string, len(r.MultipartForm.Value))
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				fields[name] = values[0]
			}
		}

		payload, err := svc.Process(r.Context(), userID, fields, filePath)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQuotaExceeded):
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, "You have reached the maximum number of requests.")
			case errors.Is(err, services.ErrRelayFailed):
				w.WriteHeader(http.StatusBadGateway)
				json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "Error processing webhook"})
			default:
				logger.Log.Errorw("internal server error", "user_id", userID, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "Error processing webhook"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}
}

// saveUpload writes the upload to a collision-resistant transient path.
func saveUpload(uploadDir, originalName string, src io.Reader) (string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(originalName))
	path := filepath.Join(uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// LimitReader guards against a Content-Length that lied about the size.
	if _, err := io.Copy(dst, io.LimitReader(src, maxUploadBytes+1)); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
