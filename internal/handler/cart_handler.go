package handler

import (
	"net/http"

	"shopcore/internal/middleware"
	"shopcore/internal/model"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// AddItem handles POST /api/v1/cart requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), middleware.UserIDFromContext(r.Context()), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, cart)
}

// GetCart handles GET /api/v1/cart requests.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, cart)
}

// UpdateItemQuantity handles PUT /api/v1/cart/{itemId} requests.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.UpdateItemQuantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.UpdateItemQuantity(r.Context(), middleware.UserIDFromContext(r.Context()), itemID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/v1/cart/{itemId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), middleware.UserIDFromContext(r.Context()), itemID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/v1/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyCoupon handles PUT /api/v1/cart/applyCoupon requests.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyCouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.ApplyCoupon(r.Context(), middleware.UserIDFromContext(r.Context()), req.Coupon)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, cart)
}
