package model

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a named, time-bounded percentage discount.
type Coupon struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Discount  float64   `json:"discount" db:"discount"`
	Expire    time.Time `json:"expire" db:"expire"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CouponRequest is the payload for creating or updating a coupon.
type CouponRequest struct {
	Name     string    `json:"name"`
	Discount float64   `json:"discount"`
	Expire   time.Time `json:"expire"`
}

// Validate checks the coupon payload.
func (r *CouponRequest) Validate() error {
	if r.Name == "" {
		return ValidationError("coupon name is required")
	}
	if r.Discount < 0 || r.Discount > 100 {
		return ValidationError("coupon discount must be between 0 and 100")
	}
	if r.Expire.IsZero() {
		return ValidationError("coupon expiry is required")
	}
	return nil
}
