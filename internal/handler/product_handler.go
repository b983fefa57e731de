package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxImageSize caps multipart image uploads at 5 MiB.
const maxImageSize = 5 << 20

var productQueryOptions = query.Options{
	SortFields: map[string]string{
		"createdAt":      "created_at",
		"price":          "price",
		"sold":           "sold",
		"ratingsAverage": "ratings_average",
	},
	DefaultSort: "created_at",
	RangeFields: map[string]string{
		"price":          "price",
		"ratingsAverage": "ratings_average",
		"quantity":       "quantity",
	},
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/v1/products requests with pagination, sorting,
// keyword search and range filters such as price[gte]=100.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), productQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	products, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(products), products)
}

// GetByID handles GET /api/v1/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, product)
}

// Create handles POST /api/v1/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, product)
}

// Update handles PUT /api/v1/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.ProductRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// UploadImage handles POST /api/v1/products/{id}/images requests with a
// multipart "image" part.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, model.ValidationError("image upload must be multipart form data"), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, model.ValidationError("an image file part named \"image\" is required"), h.logger)
		return
	}
	defer file.Close()

	product, err := h.service.UploadImage(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, product)
}

// RemoveImage handles DELETE /api/v1/products/{id}/images/{key} requests.
func (h *ProductHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	key := chi.URLParam(r, "*")
	if key == "" {
		writeError(w, model.ValidationError("image key is required"), h.logger)
		return
	}

	product, err := h.service.RemoveImage(r.Context(), id, key)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, product)
}
