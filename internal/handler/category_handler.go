package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

var nameQueryOptions = query.Options{
	SortFields: map[string]string{
		"createdAt": "created_at",
		"name":      "name",
	},
	DefaultSort: "created_at",
}

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/v1/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), nameQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	categories, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(categories), categories)
}

// GetByID handles GET /api/v1/categories/{id} requests.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, category)
}

// Create handles POST /api/v1/categories requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, category)
}

// Update handles PUT /api/v1/categories/{id} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.NameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, category)
}

// Delete handles DELETE /api/v1/categories/{id} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
