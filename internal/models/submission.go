package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubmissionDB represents one persisted webhook relay result.
// Payload is the automation service's reply stored verbatim; this service
// never interprets its structure. Records are immutable once written.
type SubmissionDB struct {
	SubmissionID uuid.UUID       `json:"id" db:"submission_id"`
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	Payload      json.RawMessage `json:"payload" db:"payload"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
