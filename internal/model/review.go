package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a product. A user may review a product at
// most once; the product's rating aggregates are recomputed on every
// review write.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Ratings   float64   `json:"ratings" db:"ratings"`
	UserID    uuid.UUID `json:"user" db:"user_id"`
	ProductID uuid.UUID `json:"product" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ReviewRequest is the payload for creating or updating a review.
type ReviewRequest struct {
	Title     string    `json:"title"`
	Ratings   float64   `json:"ratings"`
	ProductID uuid.UUID `json:"product"`
}

// Validate checks the review payload.
func (r *ReviewRequest) Validate() error {
	if r.Ratings < 1 || r.Ratings > 5 {
		return ValidationError("ratings must be between 1.0 and 5.0")
	}
	return nil
}
