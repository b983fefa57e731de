package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment method types recorded on an order.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// ShippingAddress is the delivery address snapshotted onto an order.
type ShippingAddress struct {
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// OrderItem is one line item snapshotted from the cart at checkout time.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Color     string    `json:"color" db:"color"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
}

// Order is an immutable record created from a cart at the moment of purchase.
// The paid and delivered flags are set at most once each; re-stamping only
// advances the timestamp.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user" db:"user_id"`
	Items           []OrderItem     `json:"cartItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TaxPrice        float64         `json:"taxPrice" db:"tax_price"`
	ShippingPrice   float64         `json:"shippingPrice" db:"shipping_price"`
	TotalOrderPrice float64         `json:"totalOrderPrice" db:"total_order_price"`
	PaymentMethod   string          `json:"paymentMethodType" db:"payment_method"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	IsDelivered     bool            `json:"isDelivered" db:"is_delivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// PlaceOrderRequest is the payload for creating a cash order or a checkout
// session from an existing cart.
type PlaceOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}
