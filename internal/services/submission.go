package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
)

// Error variables
var (
	ErrQuotaExceeded = errors.New("maximum number of requests reached")
	ErrRelayFailed   = errors.New("webhook relay failed")
	ErrPersistence   = errors.New("failed to persist submission")
)

// SubmissionReader defines read operations the submission service needs.
type SubmissionReader interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SubmissionDB, error)
}

// SubmissionWriter defines write operations the submission service needs.
type SubmissionWriter interface {
	Save(ctx context.Context, userID uuid.UUID, payload json.RawMessage) (*models.SubmissionDB, error)
}

// Relayer forwards form fields plus the uploaded file to the automation
// webhook and returns its JSON reply verbatim.
type Relayer interface {
	Relay(ctx context.Context, fields map[string]string, filePath string) (json.RawMessage, error)
}

// SubmissionPublisher emits submission-created events. Implementations must
// be safe to fail: errors are logged and never surfaced.
type SubmissionPublisher interface {
	PublishSubmissionCreated(ctx context.Context, userID, submissionID uuid.UUID) error
}

// SubmissionService runs the upload pipeline: quota check, webhook relay,
// response persistence. Transient file cleanup belongs to the caller.
type SubmissionService struct {
	reader      SubmissionReader
	writer      SubmissionWriter
	relayer     Relayer
	publisher   SubmissionPublisher
	maxRequests int
}

// NewSubmissionService creates a new SubmissionService instance. publisher
// may be nil when eventing is disabled.
func NewSubmissionService(reader SubmissionReader, writer SubmissionWriter, relayer Relayer, publisher SubmissionPublisher, maxRequests int) *SubmissionService {
	return &SubmissionService{
		reader:      reader,
		writer:      writer,
		relayer:     relayer,
		publisher:   publisher,
		maxRequests: maxRequests,
	}
}

// Process relays one submission for the user and persists the reply.
// The quota is a lifetime ceiling checked before any outbound work; the
// count-then-act sequence is deliberately not atomic (soft quota).
// The relay and persistence run detached from request cancellation so a
// client disconnect cannot leak a half-finished pipeline.
func (svc *SubmissionService) Process(ctx context.Context, userID uuid.UUID, fields map[string]string, filePath string) (json.RawMessage, error) {
	count, err := svc.reader.CountByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count submissions", "user_id", userID, "err", err)
		return nil, err
	}
	if count >= svc.maxRequests {
		logger.Log.Warnw("submission quota exceeded", "user_id", userID, "limit", svc.maxRequests)
		return nil, ErrQuotaExceeded
	}

	detached := context.WithoutCancel(ctx)

	payload, err := svc.relayer.Relay(detached, fields, filePath)
	if err != nil {
		logger.Log.Errorw("webhook relay failed", "user_id", userID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	saved, err := svc.writer.Save(detached, userID, payload)
	if err != nil {
		logger.Log.Errorw("failed to save submission", "user_id", userID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if svc.publisher != nil {
		if err := svc.publisher.PublishSubmissionCreated(detached, userID, saved.SubmissionID); err != nil {
			logger.Log.Errorw("failed to publish submission event", "submission_id", saved.SubmissionID, "err", err)
		}
	}

	return payload, nil
}

// ListByUser returns the user's submission records, newest first.
func (svc *SubmissionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SubmissionDB, error) {
	return svc.reader.ListByUser(ctx, userID)
}
