package handler

import (
	"context"
	"net/http"

	"shopcore/internal/middleware"
	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var orderQueryOptions = query.Options{
	SortFields: map[string]string{
		"createdAt":       "created_at",
		"totalOrderPrice": "total_order_price",
	},
	DefaultSort: "created_at",
}

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// PlaceCashOrder handles POST /api/v1/orders/{cartId} requests.
func (h *OrderHandler) PlaceCashOrder(w http.ResponseWriter, r *http.Request) {
	cartID, err := pathID(r, "cartId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.PlaceOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.PlaceCashOrder(r.Context(), middleware.UserIDFromContext(r.Context()), cartID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, order)
}

// CreateCheckoutSession handles POST /api/v1/orders/checkout-session/{cartId}
// requests. The shipping address rides in the body so the webhook can later
// reconstruct the order.
func (h *OrderHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	cartID, err := pathID(r, "cartId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.PlaceOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	session, err := h.service.CreateCheckoutSession(r.Context(), middleware.UserIDFromContext(r.Context()), cartID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, session)
}

// List handles GET /api/v1/orders requests. Plain users see their own
// orders; managers and admins see everything.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), orderQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())

	var orders []model.Order
	if claims != nil && claims.Role != model.RoleUser {
		orders, err = h.service.List(r.Context(), params)
	} else {
		orders, err = h.service.ListByUser(r.Context(), middleware.UserIDFromContext(r.Context()), params)
	}
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(orders), orders)
}

// GetByID handles GET /api/v1/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	// Plain users may only read their own orders.
	claims, _ := middleware.ClaimsFromContext(r.Context())
	if claims != nil && claims.Role == model.RoleUser && order.UserID != middleware.UserIDFromContext(r.Context()) {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

// MarkPaid handles PUT /api/v1/orders/{id}/pay requests.
func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.stamp(w, r, h.service.MarkPaid)
}

// MarkDelivered handles PUT /api/v1/orders/{id}/deliver requests.
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	h.stamp(w, r, h.service.MarkDelivered)
}

func (h *OrderHandler) stamp(w http.ResponseWriter, r *http.Request, mark func(context.Context, uuid.UUID) (*model.Order, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := mark(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}
