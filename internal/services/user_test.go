package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/models"
	"github.com/resumatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestUserService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockProfileReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)

	svc := services.NewUserService(mockReader, mockWriter)

	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(&models.UserDB{UserID: userID, DisplayName: "Alice"}, nil)

		got, err := svc.GetByID(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, "Alice", got.DisplayName)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(nil, nil)

		got, err := svc.GetByID(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, got)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(nil, errors.New("db error"))

		got, err := svc.GetByID(context.Background(), userID)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, got)
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockProfileReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)

	svc := services.NewUserService(mockReader, mockWriter)

	userID := uuid.New()
	existing := &models.UserDB{UserID: userID, DisplayName: "Alice", Email: "alice@example.com"}

	t.Run("full update", func(t *testing.T) {
		updated := &models.UserDB{UserID: userID, DisplayName: "Alicia", Email: "alicia@example.com"}

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(existing, nil)
		mockWriter.EXPECT().Update(gomock.Any(), userID, "Alicia", "alicia@example.com").Return(nil)
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(updated, nil)

		got, err := svc.Update(context.Background(), userID, "Alicia", "alicia@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "Alicia", got.DisplayName)
	})

	t.Run("empty fields keep the stored values", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(existing, nil)
		mockWriter.EXPECT().Update(gomock.Any(), userID, "Alice", "alice@example.com").Return(nil)
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(existing, nil)

		got, err := svc.Update(context.Background(), userID, "", "")
		assert.NoError(t, err)
		assert.Equal(t, "Alice", got.DisplayName)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		got, err := svc.Update(context.Background(), userID, "Alicia", "")
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, got)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockProfileReader(ctrl)
	mockWriter := services.NewMockProfileWriter(ctrl)

	svc := services.NewUserService(mockReader, mockWriter)

	userID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{UserID: userID}, nil)
		mockWriter.EXPECT().Delete(gomock.Any(), userID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), userID))
	})

	t.Run("unknown user", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), userID), services.ErrUserNotFound)
	})

	t.Run("writer error", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{UserID: userID}, nil)
		mockWriter.EXPECT().Delete(gomock.Any(), userID).Return(errors.New("db error"))

		assert.EqualError(t, svc.Delete(context.Background(), userID), "db error")
	})
}
