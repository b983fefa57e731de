package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Address is a named shipping address on a user's address book.
type Address struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"-" db:"user_id"`
	Alias      string    `json:"alias" db:"alias"`
	Details    string    `json:"details" db:"details"`
	Phone      string    `json:"phone" db:"phone"`
	City       string    `json:"city" db:"city"`
	PostalCode string    `json:"postalCode" db:"postal_code"`
}

// SignupRequest is the payload for registering a new account.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signup payload.
func (r *SignupRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return ValidationError("username is required")
	}
	if !strings.Contains(r.Email, "@") {
		return ValidationError("a valid email is required")
	}
	if len(r.Password) < 6 {
		return ValidationError("password must be at least 6 characters")
	}
	return nil
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload for changing the current password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// AddressRequest is the payload for adding an address.
type AddressRequest struct {
	Alias      string `json:"alias"`
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// WishlistRequest is the payload for adding a product to the wishlist.
type WishlistRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

// AuthResponse carries the signed token and the authenticated user.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
