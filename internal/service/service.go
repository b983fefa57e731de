package service

import (
	"context"
	"io"

	"shopcore/internal/model"
	"shopcore/internal/payment"
	"shopcore/internal/query"

	"github.com/google/uuid"
)

// CartService defines operations on the logged-in user's cart.
type CartService interface {
	// AddItem adds one unit of a product variant to the user's cart,
	// creating the cart when none exists. The unit price is snapshotted
	// from the product at add time.
	AddItem(ctx context.Context, userID uuid.UUID, req *model.AddItemRequest) (*model.Cart, error)

	// UpdateItemQuantity overwrites the quantity of one cart item.
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.Cart, error)

	// RemoveItem removes one cart item. Removing an item that is not in
	// the cart leaves the item set unchanged but still recomputes and
	// saves the cart.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error)

	// Clear deletes the user's cart entirely. Idempotent.
	Clear(ctx context.Context, userID uuid.UUID) error

	// GetCart returns the user's cart.
	GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// ApplyCoupon applies a named, unexpired coupon to the cart's total.
	ApplyCoupon(ctx context.Context, userID uuid.UUID, couponName string) (*model.Cart, error)
}

// OrderService defines order materialization and status operations.
type OrderService interface {
	// PlaceCashOrder converts the cart into an immutable order, adjusts
	// inventory and deletes the cart.
	PlaceCashOrder(ctx context.Context, userID, cartID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error)

	// CreateCheckoutSession computes the same total as PlaceCashOrder but
	// requests a payment-provider session instead of materializing an order.
	CreateCheckoutSession(ctx context.Context, userID, cartID uuid.UUID, req *model.PlaceOrderRequest) (*payment.Session, error)

	// GetByID retrieves an order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves the user's orders.
	ListByUser(ctx context.Context, userID uuid.UUID, params query.Params) ([]model.Order, error)

	// List retrieves all orders.
	List(ctx context.Context, params query.Params) ([]model.Order, error)

	// MarkPaid sets the paid flag and stamps the payment time.
	MarkPaid(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// MarkDelivered sets the delivered flag and stamps the delivery time.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// ProductService defines operations for catalogue management.
type ProductService interface {
	List(ctx context.Context, params query.Params) ([]model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadImage stores an image and attaches it to the product.
	UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*model.Product, error)

	// RemoveImage detaches and deletes a stored image.
	RemoveImage(ctx context.Context, id uuid.UUID, key string) (*model.Product, error)
}

// CouponService defines admin operations on coupons.
type CouponService interface {
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)
	List(ctx context.Context, params query.Params) ([]model.Coupon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService defines operations on categories.
type CategoryService interface {
	List(ctx context.Context, params query.Params) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req *model.NameRequest) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *model.NameRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandService defines operations on brands.
type BrandService interface {
	List(ctx context.Context, params query.Params) ([]model.Brand, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	Create(ctx context.Context, req *model.NameRequest) (*model.Brand, error)
	Update(ctx context.Context, id uuid.UUID, req *model.NameRequest) (*model.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewService defines operations on product reviews.
type ReviewService interface {
	List(ctx context.Context, productID *uuid.UUID, params query.Params) ([]model.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Create(ctx context.Context, userID uuid.UUID, req *model.ReviewRequest) (*model.Review, error)

	// Update lets the review's author change title and ratings.
	Update(ctx context.Context, id, requesterID uuid.UUID, req *model.ReviewRequest) (*model.Review, error)

	// Delete lets the author or a privileged role remove a review.
	Delete(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) error
}

// UserService defines account, address book and wishlist operations.
type UserService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, params query.Params) ([]model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, password string) error

	AddAddress(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) ([]model.Address, error)
	RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) ([]model.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	AddToWishlist(ctx context.Context, userID, productID uuid.UUID) ([]model.Product, error)
	RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) ([]model.Product, error)
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
}
