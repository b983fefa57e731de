package service

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService. All mutations funnel through
// Cart.Recalculate before saving, so the running total always matches the
// item set and any applied discount is discarded on edit.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// AddItem adds one unit of (product, color) to the user's cart. An existing
// matching item has its quantity incremented; its snapshotted price is NOT
// refreshed even if the product's live price has changed since.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *model.AddItemRequest) (*model.Cart, error) {
	if req.ProductID == uuid.Nil {
		return nil, model.ValidationError("productId is required")
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		s.logger.Warn().Str("product_id", req.ProductID.String()).Msg("add to cart for unknown product")
		return nil, model.ErrProductNotFound
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if cart == nil {
		cart = &model.Cart{
			ID:     uuid.New(),
			UserID: userID,
		}
	}

	if idx := cart.FindItem(req.ProductID, req.Color); idx >= 0 {
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			Color:     req.Color,
			Quantity:  1,
			Price:     product.Price,
		})
	}

	return s.saveRecalculated(ctx, cart)
}

// UpdateItemQuantity overwrites the quantity of one cart item. The quantity
// is stored as given; stock is not consulted here.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	idx := cart.FindItemByID(itemID)
	if idx < 0 {
		s.logger.Warn().Str("item_id", itemID.String()).Msg("quantity update for unknown cart item")
		return nil, model.ErrCartItemNotFound
	}
	cart.Items[idx].Quantity = quantity

	return s.saveRecalculated(ctx, cart)
}

// RemoveItem removes one cart item. Absence of the item is not an error;
// the cart is recomputed and saved either way.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	if idx := cart.FindItemByID(itemID); idx >= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}

	return s.saveRecalculated(ctx, cart)
}

// Clear deletes the user's cart. Deleting a non-existent cart is not an
// error.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.Debug().Str("user_id", userID.String()).Msg("cart cleared")
	return nil
}

// GetCart returns the stored cart for the user.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}
	return cart, nil
}

// ApplyCoupon resolves a named, unexpired coupon and stores the discounted
// total beside the raw total. An unknown name and an expired coupon produce
// the same error.
func (s *cartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, couponName string) (*model.Cart, error) {
	coupon, err := s.couponRepo.GetValidByName(ctx, couponName, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve coupon: %w", err)
	}
	if coupon == nil {
		s.logger.Warn().Str("coupon", couponName).Msg("coupon invalid or expired")
		return nil, model.ErrCouponInvalidOrExpired
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	cart.ApplyDiscount(coupon.Discount)
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("coupon", coupon.Name).
		Float64("discount", coupon.Discount).
		Msg("coupon applied to cart")

	return cart, nil
}

// saveRecalculated enforces the totals invariant and persists the cart.
func (s *cartService) saveRecalculated(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Int("item_count", len(cart.Items)).
		Float64("total", cart.TotalCartPrice).
		Msg("cart saved")

	return cart, nil
}
