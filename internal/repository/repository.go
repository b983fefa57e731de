package repository

import (
	"context"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/query"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the given list parameters.
	List(ctx context.Context, params query.Params) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil) when
	// no product exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites the mutable fields of a product. Returns false when
	// no product exists.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false when no product exists.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AppendImage adds an image to the product's image list.
	AppendImage(ctx context.Context, id uuid.UUID, image model.ProductImage) (bool, error)

	// RemoveImage removes the image with the given storage key.
	RemoveImage(ctx context.Context, id uuid.UUID, key string) (bool, error)
}

// CartRepository defines the interface for cart data access operations.
// A user owns at most one cart, enforced by a unique index on user_id.
type CartRepository interface {
	// GetByUserID retrieves the user's cart with its items in insertion
	// order. Returns (nil, nil) when the user has no cart.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetByID retrieves a cart by its ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error)

	// Save upserts the cart row keyed by user_id and replaces its items,
	// all within one transaction. When a concurrent request created the
	// user's cart first, the existing row wins and cart.ID is updated to
	// the stored id.
	Save(ctx context.Context, cart *model.Cart) error

	// DeleteByUserID removes the user's cart. Deleting a non-existent cart
	// is not an error.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetValidByName retrieves the coupon with the given name whose expiry
	// is strictly after now. Returns (nil, nil) when no such coupon exists;
	// an unknown name and an expired coupon are indistinguishable.
	GetValidByName(ctx context.Context, name string, now time.Time) (*model.Coupon, error)

	// List retrieves coupons matching the given list parameters.
	List(ctx context.Context, params query.Params) ([]model.Coupon, error)

	// GetByID retrieves a coupon by its ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// Create inserts a new coupon.
	Create(ctx context.Context, coupon *model.Coupon) error

	// Update overwrites a coupon. Returns false when no coupon exists.
	Update(ctx context.Context, coupon *model.Coupon) (bool, error)

	// Delete removes a coupon. Returns false when no coupon exists.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// CreateFromCart inserts the order with its items, decrements each
	// product's stock while incrementing its sold count, and deletes the
	// source cart, all within a single transaction. On any failure nothing
	// is applied.
	CreateFromCart(ctx context.Context, order *model.Order, cartID uuid.UUID) error

	// GetByID retrieves an order with its items. Returns (nil, nil) when
	// absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, params query.Params) ([]model.Order, error)

	// List retrieves all orders, newest first.
	List(ctx context.Context, params query.Params) ([]model.Order, error)

	// MarkPaid stamps the paid flag and timestamp. Returns false when no
	// order exists.
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// MarkDelivered stamps the delivered flag and timestamp. Returns false
	// when no order exists.
	MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// UserRepository defines the interface for user, address book and wishlist
// data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// List retrieves users matching the given list parameters.
	List(ctx context.Context, params query.Params) ([]model.User, error)

	// Update overwrites a user's profile fields. Returns false when no user
	// exists.
	Update(ctx context.Context, user *model.User) (bool, error)

	// UpdatePassword replaces the stored password hash. Returns false when
	// no user exists.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error)

	// AddAddress appends an address to the user's address book.
	AddAddress(ctx context.Context, address *model.Address) error

	// RemoveAddress removes an address. Removal of a non-existent address
	// is not an error.
	RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// ListAddresses retrieves the user's addresses.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	// AddToWishlist adds a product to the user's wishlist (set semantics).
	AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveFromWishlist removes a product from the user's wishlist.
	RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error

	// ListWishlist retrieves the products on the user's wishlist.
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
}

// CategoryRepository defines CRUD for categories.
type CategoryRepository interface {
	List(ctx context.Context, params query.Params) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BrandRepository defines CRUD for brands.
type BrandRepository interface {
	List(ctx context.Context, params query.Params) ([]model.Brand, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	Create(ctx context.Context, brand *model.Brand) error
	Update(ctx context.Context, brand *model.Brand) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReviewRepository defines the interface for review data access operations.
// Every write also recomputes the product's rating aggregates in the same
// transaction.
type ReviewRepository interface {
	// List retrieves reviews, optionally restricted to one product.
	List(ctx context.Context, productID *uuid.UUID, params query.Params) ([]model.Review, error)

	// GetByID retrieves a review by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// Create inserts a new review. Returns model.ErrReviewExists when the
	// user already reviewed the product.
	Create(ctx context.Context, review *model.Review) error

	// Update overwrites a review's title and ratings. Returns false when no
	// review exists.
	Update(ctx context.Context, review *model.Review) (bool, error)

	// Delete removes a review. Returns false when no review exists.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
