package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CartItem is one line item in a cart. Price is snapshotted from the product
// at the time the item is added and is never refreshed afterwards.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Color     string    `json:"color" db:"color"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
}

// Cart is a user's in-progress selection of items. Each user owns at most one
// cart, looked up by user id. Items keep insertion order.
type Cart struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	UserID                  uuid.UUID  `json:"user" db:"user_id"`
	Items                   []CartItem `json:"cartItems"`
	TotalCartPrice          float64    `json:"totalCartPrice" db:"total_cart_price"`
	TotalPriceAfterDiscount *float64   `json:"totalPriceAfterDiscount,omitempty" db:"total_price_after_discount"`
	CreatedAt               time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt               time.Time  `json:"updatedAt" db:"updated_at"`
}

// Recalculate overwrites TotalCartPrice with the sum of quantity*price over
// all items and discards any applied discount. Every cart mutation must go
// through this so a stale discount cannot survive a cart edit.
func (c *Cart) Recalculate() {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.Price
	}
	c.TotalCartPrice = Round2(total)
	c.TotalPriceAfterDiscount = nil
}

// FindItem returns the index of the item matching (productID, color),
// or -1 if no such item exists.
func (c *Cart) FindItem(productID uuid.UUID, color string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Color == color {
			return i
		}
	}
	return -1
}

// FindItemByID returns the index of the item with the given id, or -1.
func (c *Cart) FindItemByID(itemID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// ApplyDiscount sets TotalPriceAfterDiscount from the given percentage,
// rounded to two decimal places. TotalCartPrice is left untouched.
func (c *Cart) ApplyDiscount(percent float64) {
	discounted := Round2(c.TotalCartPrice - (c.TotalCartPrice*percent)/100)
	c.TotalPriceAfterDiscount = &discounted
}

// EffectivePrice returns the discounted total when a coupon has been applied,
// otherwise the raw cart total.
func (c *Cart) EffectivePrice() float64 {
	if c.TotalPriceAfterDiscount != nil {
		return *c.TotalPriceAfterDiscount
	}
	return c.TotalCartPrice
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Color     string    `json:"color"`
}

// UpdateItemQuantityRequest is the payload for updating a cart item quantity.
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest is the payload for applying a coupon to the cart.
type ApplyCouponRequest struct {
	Coupon string `json:"coupon"`
}
