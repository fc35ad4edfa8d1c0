package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
)

const userColumns = `
	user_id, display_name, email, password_hash,
	google_id, google_access_token, google_refresh_token, photo_url,
	is_verified, email_verification_token,
	password_reset_token, password_reset_expires,
	created_at, updated_at
`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user query",
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
	return &user, nil
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT` + userColumns + `FROM users WHERE user_id = $1`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT` + userColumns + `FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserReadRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.UserDB, error) {
	query := `SELECT` + userColumns + `FROM users WHERE google_id = $1`
	return r.getOne(ctx, query, googleID)
}

func (r *UserReadRepository) GetByVerificationToken(ctx context.Context, token string) (*models.UserDB, error) {
	query := `SELECT` + userColumns + `FROM users WHERE email_verification_token = $1`
	return r.getOne(ctx, query, token)
}

// GetByResetToken only matches tokens whose expiry is still in the future.
func (r *UserReadRepository) GetByResetToken(ctx context.Context, token string) (*models.UserDB, error) {
	query := `SELECT` + userColumns + `FROM users WHERE password_reset_token = $1 AND password_reset_expires > NOW()`
	return r.getOne(ctx, query, token)
}

func (r *UserReadRepository) GetAll(ctx context.Context) ([]models.UserDB, error) {
	query := `SELECT` + userColumns + `FROM users ORDER BY created_at DESC`

	users := make([]models.UserDB, 0)
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
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

// Save inserts a locally registered user and returns the generated ID.
func (r *UserWriteRepository) Save(ctx context.Context, displayName, email, passwordHash, verificationToken string) (uuid.UUID, error) {
	query := `
		INSERT INTO users (display_name, email, password_hash, email_verification_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING user_id
	`
	args := []any{displayName, email, passwordHash, verificationToken}

	var userID uuid.UUID
	err := r.db.GetContext(ctx, &userID, query, args...)

	logger.Log.Infow("user exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", userID,
		"error", err,
	)

	return userID, err
}

// SaveGoogle inserts a pre-verified user created from a Google profile.
func (r *UserWriteRepository) SaveGoogle(ctx context.Context, profile models.GoogleProfile, accessToken, refreshToken string) (uuid.UUID, error) {
	query := `
		INSERT INTO users (display_name, email, google_id, photo_url, google_access_token, google_refresh_token, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING user_id
	`
	args := []any{profile.Name, profile.Email, profile.ID, profile.PhotoURL, accessToken, refreshToken}

	var userID uuid.UUID
	err := r.db.GetContext(ctx, &userID, query, args...)

	logger.Log.Infow("user exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", userID,
		"error", err,
	)

	return userID, err
}

func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, displayName, email string) error {
	query := `
		UPDATE users
		SET display_name = $2, email = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID, displayName, email)
}

// SetVerified marks the account verified and consumes the verification token.
func (r *UserWriteRepository) SetVerified(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, email_verification_token = NULL, updated_at = NOW()
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID)
}

func (r *UserWriteRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID, token, expires)
}

// ResetPassword replaces the password hash and consumes the reset token.
func (r *UserWriteRepository) ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, password_reset_token = NULL, password_reset_expires = NULL, updated_at = NOW()
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID, passwordHash)
}

// LinkGoogle attaches a Google identity to an existing local account and
// marks it verified, since Google has already proven control of the email.
func (r *UserWriteRepository) LinkGoogle(ctx context.Context, userID uuid.UUID, profile models.GoogleProfile, accessToken, refreshToken string) error {
	query := `
		UPDATE users
		SET google_id = $2, display_name = $3, photo_url = $4,
		    google_access_token = $5, google_refresh_token = $6,
		    is_verified = TRUE, updated_at = NOW()
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID, profile.ID, profile.Name, profile.PhotoURL, accessToken, refreshToken)
}

func (r *UserWriteRepository) UpdateGoogleTokens(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string) error {
	query := `
		UPDATE users
		SET google_access_token = $2, google_refresh_token = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID, accessToken, refreshToken)
}

// Delete removes the account. Owned testimonials and submissions cascade
// at the schema level.
func (r *UserWriteRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM users WHERE user_id = $1`
	return r.exec(ctx, query, userID)
}
