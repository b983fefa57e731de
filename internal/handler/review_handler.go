package handler

import (
	"net/http"

	"shopcore/internal/middleware"
	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var reviewQueryOptions = query.Options{
	SortFields: map[string]string{
		"createdAt": "created_at",
		"ratings":   "ratings",
	},
	DefaultSort: "created_at",
}

// ReviewHandler handles review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// List handles GET /api/v1/reviews and GET /api/v1/products/{productId}/reviews
// requests. The nested form restricts results to one product.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), reviewQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var productID *uuid.UUID
	if raw := chi.URLParam(r, "productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, model.ValidationError("productId must be a valid id"), h.logger)
			return
		}
		productID = &id
	}

	reviews, err := h.service.List(r.Context(), productID, params)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(reviews), reviews)
}

// GetByID handles GET /api/v1/reviews/{id} requests.
func (h *ReviewHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	review, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, review)
}

// Create handles POST /api/v1/reviews and
// POST /api/v1/products/{productId}/reviews requests.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	// The nested route carries the product in the path.
	if raw := chi.URLParam(r, "productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, model.ValidationError("productId must be a valid id"), h.logger)
			return
		}
		req.ProductID = id
	}

	review, err := h.service.Create(r.Context(), middleware.UserIDFromContext(r.Context()), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, review)
}

// Update handles PUT /api/v1/reviews/{id} requests.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.ReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	review, err := h.service.Update(r.Context(), id, middleware.UserIDFromContext(r.Context()), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, review)
}

// Delete handles DELETE /api/v1/reviews/{id} requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())
	role := ""
	if claims != nil {
		role = claims.Role
	}

	if err := h.service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()), role); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
