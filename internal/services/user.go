package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
)

// ProfileReader defines read operations the user service needs.
type ProfileReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetAll(ctx context.Context) ([]models.UserDB, error)
}

// ProfileWriter defines write operations the user service needs.
type ProfileWriter interface {
	Update(ctx context.Context, userID uuid.UUID, displayName, email string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserService provides profile CRUD on top of the user repositories.
type UserService struct {
	reader ProfileReader
	writer ProfileWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader ProfileReader, writer ProfileWriter) *UserService {
	return &UserService{reader: reader, writer: writer}
}

func (svc *UserService) GetAll(ctx context.Context) ([]models.UserDB, error) {
	return svc.reader.GetAll(ctx)
}

func (svc *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (svc *UserService) Update(ctx context.Context, userID uuid.UUID, displayName, email string) (*models.UserDB, error) {
	user, err := svc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = user.DisplayName
	}
	if email == "" {
		email = user.Email
	}

	if err := svc.writer.Update(ctx, userID, displayName, email); err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}
	return svc.GetByID(ctx, userID)
}

// Delete removes the account. Testimonials and submissions owned by it are
// removed by the schema-level cascade.
func (svc *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := svc.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, user.UserID); err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "err", err)
		return err
	}
	return nil
}
