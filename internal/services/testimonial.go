package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
)

// Error variables
var (
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrNoAuthor            = errors.New("testimonial requires an author account or an author name")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

const defaultDesignation = "User"

// TestimonialReader defines read operations the testimonial service needs.
type TestimonialReader interface {
	GetAll(ctx context.Context) ([]models.TestimonialDB, error)
	GetApproved(ctx context.Context) ([]models.TestimonialDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TestimonialDB, error)
	ExistsByAuthor(ctx context.Context, authorID uuid.UUID) (bool, error)
}

// TestimonialWriter defines write operations the testimonial service needs.
type TestimonialWriter interface {
	Save(ctx context.Context, t models.TestimonialDB) (*models.TestimonialDB, error)
	Update(ctx context.Context, id uuid.UUID, content string, rating int, designation string, approved bool) (*models.TestimonialDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TestimonialService handles testimonial CRUD.
type TestimonialService struct {
	reader TestimonialReader
	writer TestimonialWriter
}

// NewTestimonialService creates a new TestimonialService instance.
func NewTestimonialService(reader TestimonialReader, writer TestimonialWriter) *TestimonialService {
	return &TestimonialService{reader: reader, writer: writer}
}

// Create persists a testimonial. Exactly one of authorID and authorName
// must be provided; the invariant is checked here, before persistence.
func (svc *TestimonialService) Create(ctx context.Context, authorID *uuid.UUID, authorName *string, content string, rating int, designation string) (*models.TestimonialDB, error) {
	hasID := authorID != nil
	hasName := authorName != nil && *authorName != ""
	if hasID == hasName {
		return nil, ErrNoAuthor
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if designation == "" {
		designation = defaultDesignation
	}
	if !hasName {
		authorName = nil
	}

	saved, err := svc.writer.Save(ctx, models.TestimonialDB{
		AuthorID:    authorID,
		AuthorName:  authorName,
		Content:     content,
		Rating:      rating,
		Designation: designation,
		Approved:    false,
	})
	if err != nil {
		logger.Log.Errorw("failed to save testimonial", "err", err)
		return nil, err
	}
	return saved, nil
}

func (svc *TestimonialService) GetAll(ctx context.Context) ([]models.TestimonialDB, error) {
	return svc.reader.GetAll(ctx)
}

func (svc *TestimonialService) GetApproved(ctx context.Context) ([]models.TestimonialDB, error) {
	return svc.reader.GetApproved(ctx)
}

func (svc *TestimonialService) GetByID(ctx context.Context, id uuid.UUID) (*models.TestimonialDB, error) {
	testimonial, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get testimonial", "id", id, "err", err)
		return nil, err
	}
	if testimonial == nil {
		return nil, ErrTestimonialNotFound
	}
	return testimonial, nil
}

// Update modifies a testimonial's content, rating, designation and approval.
// The author is immutable.
func (svc *TestimonialService) Update(ctx context.Context, id uuid.UUID, content string, rating int, designation string, approved bool) (*models.TestimonialDB, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if designation == "" {
		designation = defaultDesignation
	}

	updated, err := svc.writer.Update(ctx, id, content, rating, designation, approved)
	if err != nil {
		logger.Log.Errorw("failed to update testimonial", "id", id, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrTestimonialNotFound
	}
	return updated, nil
}

func (svc *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	err := svc.writer.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTestimonialNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to delete testimonial", "id", id, "err", err)
	}
	return err
}

// HasTestimonial reports whether the user already wrote a testimonial.
func (svc *TestimonialService) HasTestimonial(ctx context.Context, userID uuid.UUID) (bool, error) {
	return svc.reader.ExistsByAuthor(ctx, userID)
}
