package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
)

const testimonialColumns = `
	testimonial_id, author_id, author_name, content, rating,
	designation, approved, created_at, updated_at
`

type TestimonialReadRepository struct {
	db *sqlx.DB
}

func NewTestimonialReadRepository(db *sqlx.DB) *TestimonialReadRepository {
	return &TestimonialReadRepository{db: db}
}

func (r *TestimonialReadRepository) list(ctx context.Context, query string, args ...any) ([]models.TestimonialDB, error) {
	testimonials := make([]models.TestimonialDB, 0)
	err := r.db.SelectContext(ctx, &testimonials, query, args...)

	logger.Log.Infow("testimonial query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"count", len(testimonials),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *TestimonialReadRepository) GetAll(ctx context.Context) ([]models.TestimonialDB, error) {
	query := `SELECT` + testimonialColumns + `FROM testimonials ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *TestimonialReadRepository) GetApproved(ctx context.Context) ([]models.TestimonialDB, error) {
	query := `SELECT` + testimonialColumns + `FROM testimonials WHERE approved ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *TestimonialReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TestimonialDB, error) {
	query := `SELECT` + testimonialColumns + `FROM testimonials WHERE testimonial_id = $1`

	var testimonial models.TestimonialDB
	err := r.db.GetContext(ctx, &testimonial, query, id)

	logger.Log.Infow("testimonial query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// ExistsByAuthor reports whether the user already wrote a testimonial.
func (r *TestimonialReadRepository) ExistsByAuthor(ctx context.Context, authorID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM testimonials WHERE author_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, authorID)

	logger.Log.Infow("testimonial query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{authorID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

type TestimonialWriteRepository struct {
	db *sqlx.DB
}

func NewTestimonialWriteRepository(db *sqlx.DB) *TestimonialWriteRepository {
	return &TestimonialWriteRepository{db: db}
}

func (r *TestimonialWriteRepository) Save(ctx context.Context, t models.TestimonialDB) (*models.TestimonialDB, error) {
	query := `
		INSERT INTO testimonials (author_id, author_name, content, rating, designation, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING` + testimonialColumns
	args := []any{t.AuthorID, t.AuthorName, t.Content, t.Rating, t.Designation, t.Approved}

	var saved models.TestimonialDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	logger.Log.Infow("testimonial exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *TestimonialWriteRepository) Update(ctx context.Context, id uuid.UUID, content string, rating int, designation string, approved bool) (*models.TestimonialDB, error) {
	query := `
		UPDATE testimonials
		SET content = $2, rating = $3, designation = $4, approved = $5, updated_at = NOW()
		WHERE testimonial_id = $1
		RETURNING` + testimonialColumns
	args := []any{id, content, rating, designation, approved}

	var updated models.TestimonialDB
	err := r.db.GetContext(ctx, &updated, query, args...)

	logger.Log.Infow("testimonial exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *TestimonialWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM testimonials WHERE testimonial_id = $1`

	res, err := r.db.ExecContext(ctx, query, id)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("testimonial exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"rows", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
