package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

var couponQueryOptions = query.Options{
	SortFields: map[string]string{
		"createdAt": "created_at",
		"expire":    "expire",
		"discount":  "discount",
	},
	DefaultSort: "created_at",
}

// CouponHandler handles coupon administration HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// List handles GET /api/v1/coupons requests.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), couponQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupons, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(coupons), coupons)
}

// GetByID handles GET /api/v1/coupons/{id} requests.
func (h *CouponHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, coupon)
}

// Create handles POST /api/v1/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, coupon)
}

// Update handles PUT /api/v1/coupons/{id} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.CouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, coupon)
}

// Delete handles DELETE /api/v1/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
