package models

import (
	"time"

	"github.com/google/uuid"
)

// TestimonialDB represents a testimonial record in the database.
// Exactly one of AuthorID and AuthorName is set: registered users are
// referenced by ID, anonymous authors by free-text name.
type TestimonialDB struct {
	TestimonialID uuid.UUID  `json:"id" db:"testimonial_id"`
	AuthorID      *uuid.UUID `json:"author_id,omitempty" db:"author_id"`
	AuthorName    *string    `json:"author_name,omitempty" db:"author_name"`
	Content       string     `json:"content" db:"content"`
	Rating        int        `json:"rating" db:"rating"`
	Designation   string     `json:"designation" db:"designation"`
	Approved      bool       `json:"approved" db:"approved"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
