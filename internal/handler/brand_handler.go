package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

// BrandHandler handles brand HTTP requests.
type BrandHandler struct {
	service service.BrandService
	logger  zerolog.Logger
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(service service.BrandService, logger zerolog.Logger) *BrandHandler {
	return &BrandHandler{
		service: service,
		logger:  logger.With().Str("handler", "brand").Logger(),
	}
}

// List handles GET /api/v1/brands requests.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), nameQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	brands, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(brands), brands)
}

// GetByID handles GET /api/v1/brands/{id} requests.
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	brand, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, brand)
}

// Create handles POST /api/v1/brands requests.
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	brand, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, brand)
}

// Update handles PUT /api/v1/brands/{id} requests.
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	brand, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, brand)
}

// Delete handles DELETE /api/v1/brands/{id} requests.
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
