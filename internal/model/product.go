package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is one stored image for a product.
type ProductImage struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Product is a purchasable item in the catalogue. Quantity is remaining
// stock; Sold counts units moved through placed orders.
type Product struct {
	ID                 uuid.UUID      `json:"id" db:"id"`
	Title              string         `json:"title" db:"title"`
	Slug               string         `json:"slug" db:"slug"`
	Description        string         `json:"description" db:"description"`
	Quantity           int            `json:"quantity" db:"quantity"`
	Sold               int            `json:"sold" db:"sold"`
	Price              float64        `json:"price" db:"price"`
	PriceAfterDiscount *float64       `json:"priceAfterDiscount,omitempty" db:"price_after_discount"`
	Colors             []string       `json:"colors"`
	Images             []ProductImage `json:"images"`
	CategoryID         uuid.UUID      `json:"category" db:"category_id"`
	BrandID            *uuid.UUID     `json:"brand,omitempty" db:"brand_id"`
	RatingsAverage     *float64       `json:"ratingsAverage,omitempty" db:"ratings_average"`
	RatingsQuantity    int            `json:"ratingsQuantity" db:"ratings_quantity"`
	CreatedAt          time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time      `json:"updatedAt" db:"updated_at"`
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Quantity           int        `json:"quantity"`
	Price              float64    `json:"price"`
	PriceAfterDiscount *float64   `json:"priceAfterDiscount,omitempty"`
	Colors             []string   `json:"colors"`
	CategoryID         uuid.UUID  `json:"category"`
	BrandID            *uuid.UUID `json:"brand,omitempty"`
}

// Validate checks the product payload against the catalogue rules.
func (r *ProductRequest) Validate() error {
	if len(r.Title) < 3 || len(r.Title) > 100 {
		return ValidationError("product title must be between 3 and 100 characters")
	}
	if len(r.Description) < 20 {
		return ValidationError("product description must be at least 20 characters")
	}
	if r.Quantity < 0 {
		return ValidationError("product quantity cannot be negative")
	}
	if r.Price <= 0 {
		return ValidationError("product price must be greater than zero")
	}
	if r.PriceAfterDiscount != nil && *r.PriceAfterDiscount >= r.Price {
		return ValidationError("discounted price must be lower than the price")
	}
	if r.CategoryID == uuid.Nil {
		return ValidationError("product must belong to a category")
	}
	return nil
}
