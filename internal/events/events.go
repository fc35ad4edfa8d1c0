package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/segmentio/kafka-go"
)

// SubmissionCreated is the message body published after a submission record
// is persisted.
type SubmissionCreated struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	UserID       uuid.UUID `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// KafkaPublisher emits domain events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given broker and topic.
func NewKafkaPublisher(brokerAddr, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishSubmissionCreated emits one submission.created message keyed by
// the owning user.
func (p *KafkaPublisher) PublishSubmissionCreated(ctx context.Context, userID, submissionID uuid.UUID) error {
	value, err := json.Marshal(SubmissionCreated{
		SubmissionID: submissionID,
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID.String()),
		Value: value,
	})
	if err != nil {
		return err
	}

	logger.Log.Infow("submission event published", "submission_id", submissionID, "user_id", userID)
	return nil
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
