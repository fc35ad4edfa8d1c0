package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
	"github.com/resumatch/backend/internal/services"
)

// UserManager defines the interface that the user service must implement.
type UserManager interface {
	GetAll(ctx context.Context) ([]models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	Update(ctx context.Context, userID uuid.UUID, displayName, email string) (*models.UserDB, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserUpdateRequest represents the JSON body for a profile update
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	// Display name
	// example: John Doe
	DisplayName string `json:"displayName"`

	// Email
	// example: john@example.com
	Email string `json:"email"`
}

// UserErrorResponse represents an error response for user routes
// swagger:model UserErrorResponse
type UserErrorResponse struct {
	// Error message
	// example: User not found
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserDB
// @Router /users [get]
func NewListUsersHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.GetAll(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}

// NewGetUserHandler returns an HTTP handler serving one user by ID.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.UserDB
// @Failure 404 {object} handlers.UserErrorResponse "User not found"
// @Router /users/{id} [get]
func NewGetUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "invalid user id"})
			return
		}

		user, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}

// NewUpdateUserHandler returns an HTTP handler updating a user profile.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param userUpdateRequest body handlers.UserUpdateRequest true "Profile fields"
// @Success 200 {object} models.UserDB
// @Failure 404 {object} handlers.UserErrorResponse "User not found"
// @Router /users/{id} [put]
func NewUpdateUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "invalid user id"})
			return
		}

		var req UserUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "invalid request body"})
			return
		}

		user, err := svc.Update(r.Context(), userID, req.DisplayName, req.Email)
		if err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting a user account.
// Owned testimonials and submissions are removed by the schema cascade.
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} handlers.LogoutResponse "User deleted"
// @Failure 404 {object} handlers.UserErrorResponse "User not found"
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "invalid user id"})
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			writeUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"message": "User deleted"})
	}
}

func writeUserError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(UserErrorResponse{Error: "User not found"})
		return
	}
	logger.Log.Errorw("internal server error", "err", err)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
}
