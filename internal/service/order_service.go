package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/payment"
	"shopcore/internal/query"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// App-level pricing settings. Both are currently fixed at zero.
const (
	taxPrice      = 0
	shippingPrice = 0
)

// CheckoutConfig holds the static parts of a checkout session request.
type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	provider  payment.Provider
	checkout  CheckoutConfig
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	provider payment.Provider,
	checkout CheckoutConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		provider:  provider,
		checkout:  checkout,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// PlaceCashOrder converts the cart into an immutable order. The effective
// price is the discounted total when a coupon was applied, else the raw
// total. Order creation, inventory adjustment and cart deletion are applied
// atomically; on failure the cart and inventory are untouched.
func (s *orderService) PlaceCashOrder(ctx context.Context, userID, cartID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.NotFoundError(fmt.Sprintf("There is no such cart with id %s", cartID))
	}

	totalOrderPrice := cart.EffectivePrice() + taxPrice + shippingPrice

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalOrderPrice: totalOrderPrice,
		PaymentMethod:   model.PaymentMethodCash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	order.Items = make([]model.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		order.Items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, cart.ID); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to place order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Float64("total", totalOrderPrice).
		Msg("cash order placed")

	return order, nil
}

// CreateCheckoutSession computes the order total the same way as
// PlaceCashOrder and asks the payment provider for a hosted session. The
// cart id travels as the session reference and the shipping address as
// opaque metadata for webhook reconciliation.
func (s *orderService) CreateCheckoutSession(ctx context.Context, userID, cartID uuid.UUID, req *model.PlaceOrderRequest) (*payment.Session, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.NotFoundError(fmt.Sprintf("There is no such cart with id %s", cartID))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	totalOrderPrice := cart.EffectivePrice() + taxPrice + shippingPrice

	address, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		Amount:            int64(math.Round(totalOrderPrice * 100)),
		Currency:          s.checkout.Currency,
		Description:       fmt.Sprintf("Order from %s", user.Username),
		CustomerEmail:     user.Email,
		ClientReferenceID: cart.ID.String(),
		SuccessURL:        s.checkout.SuccessURL,
		CancelURL:         s.checkout.CancelURL,
		Metadata: map[string]string{
			"shipping_address": string(address),
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session, nil
}

// GetByID retrieves an order.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListByUser retrieves the user's orders.
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID, params query.Params) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, params)
}

// List retrieves all orders.
func (s *orderService) List(ctx context.Context, params query.Params) ([]model.Order, error) {
	return s.orderRepo.List(ctx, params)
}

// MarkPaid sets the paid flag and stamps the payment time. Repeat calls
// keep the flag true and advance the timestamp.
func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.stamp(ctx, id, s.orderRepo.MarkPaid, "order marked paid")
}

// MarkDelivered sets the delivered flag and stamps the delivery time.
func (s *orderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.stamp(ctx, id, s.orderRepo.MarkDelivered, "order marked delivered")
}

func (s *orderService) stamp(
	ctx context.Context,
	id uuid.UUID,
	mark func(context.Context, uuid.UUID, time.Time) (bool, error),
	msg string,
) (*model.Order, error) {
	found, err := mark(ctx, id, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if !found {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg(msg)
	return order, nil
}
