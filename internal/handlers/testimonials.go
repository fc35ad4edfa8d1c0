package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/models"
	"github.com/resumatch/backend/internal/services"
)

// Testimonialer defines the interface that the testimonial service must implement.
type Testimonialer interface {
	Create(ctx context.Context, authorID *uuid.UUID, authorName *string, content string, rating int, designation string) (*models.TestimonialDB, error)
	GetAll(ctx context.Context) ([]models.TestimonialDB, error)
	GetApproved(ctx context.Context) ([]models.TestimonialDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TestimonialDB, error)
	Update(ctx context.Context, id uuid.UUID, content string, rating int, designation string, approved bool) (*models.TestimonialDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasTestimonial(ctx context.Context, userID uuid.UUID) (bool, error)
}

// TestimonialRequest represents the JSON body for creating or updating a testimonial
// swagger:model TestimonialRequest
type TestimonialRequest struct {
	// Content
	// required: true
	// example: Great service, found a matching job in a week.
	Content string `json:"content"`

	// Rating between 1 and 5
	// required: true
	// example: 5
	Rating int `json:"rating"`

	// Author name for anonymous testimonials; ignored when authenticated
	// example: Jane Smith
	AuthorName string `json:"authorName"`

	// Designation
	// example: Software Engineer
	Designation string `json:"designation"`

	// Approved flag, only honored on update
	// example: false
	Approved bool `json:"approved"`
}

// TestimonialErrorResponse represents an error response for testimonial routes
// swagger:model TestimonialErrorResponse
type TestimonialErrorResponse struct {
	// Error message
	// example: Testimonial not found
	Error string `json:"error"`
}

// NewCreateTestimonialHandler returns an HTTP handler creating a testimonial.
// The authenticated user becomes the author; anonymous callers must supply
// an author name instead.
// @Summary Create a testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testimonialRequest body handlers.TestimonialRequest true "Testimonial"
// @Success 201 {object} models.TestimonialDB
// @Failure 400 {object} handlers.TestimonialErrorResponse "Missing author or invalid rating"
// @Router /testimonials [post]
func NewCreateTestimonialHandler(svc Testimonialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TestimonialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "invalid request body"})
			return
		}

		var authorID *uuid.UUID
		var authorName *string
		if userID, ok := middlewares.UserIDFromContext(r.Context()); ok {
			authorID = &userID
		} else if req.AuthorName != "" {
			authorName = &req.AuthorName
		}

		testimonial, err := svc.Create(r.Context(), authorID, authorName, req.Content, req.Rating, req.Designation)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoAuthor), errors.Is(err, services.ErrInvalidRating):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(testimonial)
	}
}

// NewListTestimonialsHandler returns an HTTP handler listing testimonials.
// With approvedOnly it serves the public, moderated subset.
// @Summary List testimonials
// @Tags testimonials
// @Produce json
// @Success 200 {array} models.TestimonialDB
// @Router /testimonials [get]
func NewListTestimonialsHandler(svc Testimonialer, approvedOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			testimonials []models.TestimonialDB
			err          error
		)
		if approvedOnly {
			testimonials, err = svc.GetApproved(r.Context())
		} else {
			testimonials, err = svc.GetAll(r.Context())
		}
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(testimonials)
	}
}

// NewGetTestimonialHandler returns an HTTP handler serving one testimonial.
// @Summary Get a testimonial by ID
// @Tags testimonials
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} models.TestimonialDB
// @Failure 404 {object} handlers.TestimonialErrorResponse "Testimonial not found"
// @Router /testimonials/{id} [get]
func NewGetTestimonialHandler(svc Testimonialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "invalid testimonial id"})
			return
		}

		testimonial, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeTestimonialError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(testimonial)
	}
}

// NewUpdateTestimonialHandler returns an HTTP handler updating a testimonial.
// @Summary Update a testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param testimonialRequest body handlers.TestimonialRequest true "Testimonial"
// @Success 200 {object} models.TestimonialDB
// @Failure 404 {object} handlers.TestimonialErrorResponse "Testimonial not found"
// @Router /testimonials/{id} [put]
func NewUpdateTestimonialHandler(svc Testimonialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "invalid testimonial id"})
			return
		}

		var req TestimonialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "invalid request body"})
			return
		}

		testimonial, err := svc.Update(r.Context(), id, req.Content, req.Rating, req.Designation, req.Approved)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRating):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: err.Error()})
			default:
				writeTestimonialError(w, err)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(testimonial)
	}
}

// NewDeleteTestimonialHandler returns an HTTP handler deleting a testimonial.
// @Summary Delete a testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} handlers.LogoutResponse "Testimonial deleted"
// @Failure 404 {object} handlers.TestimonialErrorResponse "Testimonial not found"
// @Router /testimonials/{id} [delete]
func NewDeleteTestimonialHandler(svc Testimonialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "invalid testimonial id"})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeTestimonialError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"message": "Testimonial deleted"})
	}
}

// NewHasTestimonialHandler returns an HTTP handler reporting whether the
// authenticated user already wrote a testimonial.
// @Summary Check if the user has a testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router /testimonials/has-testimonial [get]
func NewHasTestimonialHandler(svc Testimonialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		has, err := svc.HasTestimonial(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]bool{"hasTestimonial": has})
	}
}

func writeTestimonialError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrTestimonialNotFound) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "Testimonial not found"})
		return
	}
	logger.Log.Errorw("internal server error", "err", err)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(TestimonialErrorResponse{Error: "Internal server error"})
}
