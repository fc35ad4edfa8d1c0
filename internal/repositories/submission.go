package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
)

type SubmissionReadRepository struct {
	db *sqlx.DB
}

func NewSubmissionReadRepository(db *sqlx.DB) *SubmissionReadRepository {
	return &SubmissionReadRepository{db: db}
}

// CountByUser returns the lifetime number of submissions for the account.
func (r *SubmissionReadRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM submissions WHERE user_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)

	logger.Log.Infow("submission query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", count,
		"error", err,
	)

	return count, err
}

// ListByUser returns the account's submissions, newest first.
func (r *SubmissionReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SubmissionDB, error) {
	query := `
		SELECT submission_id, user_id, payload, created_at
		FROM submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	submissions := make([]models.SubmissionDB, 0)
	err := r.db.SelectContext(ctx, &submissions, query, userID)

	logger.Log.Infow("submission query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"count", len(submissions),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return submissions, nil
}

type SubmissionWriteRepository struct {
	db *sqlx.DB
}

func NewSubmissionWriteRepository(db *sqlx.DB) *SubmissionWriteRepository {
	return &SubmissionWriteRepository{db: db}
}

// Save appends an immutable submission record and returns it.
func (r *SubmissionWriteRepository) Save(ctx context.Context, userID uuid.UUID, payload json.RawMessage) (*models.SubmissionDB, error) {
	query := `
		INSERT INTO submissions (user_id, payload, created_at)
		VALUES ($1, $2::jsonb, NOW())
		RETURNING submission_id, user_id, payload, created_at
	`
	args := []any{userID, string(payload)}

	var saved models.SubmissionDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	logger.Log.Infow("submission exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, len(payload)},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &saved, nil
}
