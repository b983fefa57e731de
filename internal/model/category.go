package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the catalogue.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Brand is an optional manufacturer label on products.
type Brand struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NameRequest is the shared payload for creating or renaming a category
// or a brand.
type NameRequest struct {
	Name string `json:"name"`
}

// Validate checks the payload.
func (r *NameRequest) Validate() error {
	if len(r.Name) < 2 || len(r.Name) > 32 {
		return ValidationError("name must be between 2 and 32 characters")
	}
	return nil
}
