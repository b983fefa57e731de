package handler

import (
	"net/http"

	"shopcore/internal/middleware"
	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

var userQueryOptions = query.Options{
	SortFields: map[string]string{
		"createdAt": "created_at",
		"username":  "username",
		"email":     "email",
	},
	DefaultSort: "created_at",
}

// UserHandler handles account, address book and wishlist HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Signup handles POST /api/v1/auth/signup requests.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	auth, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, auth)
}

// Login handles POST /api/v1/auth/login requests.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, auth)
}

// GetMe handles GET /api/v1/users/me requests.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// UpdateMe handles PUT /api/v1/users/me requests. Only profile fields can
// change; role and password have their own paths.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.service.GetByID(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	updated, err := h.service.Update(r.Context(), user)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, updated)
}

// ChangePassword handles PUT /api/v1/users/me/password requests.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if len(req.Password) < 6 {
		writeError(w, model.ValidationError("password must be at least 6 characters"), h.logger)
		return
	}

	if err := h.service.ChangePassword(r.Context(), middleware.UserIDFromContext(r.Context()), req.Password); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query(), userQueryOptions)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	users, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(users), users)
}

// GetByID handles GET /api/v1/users/{id} requests.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// AddAddress handles POST /api/v1/addresses requests.
func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req model.AddressRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	addresses, err := h.service.AddAddress(r.Context(), middleware.UserIDFromContext(r.Context()), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(addresses), addresses)
}

// RemoveAddress handles DELETE /api/v1/addresses/{id} requests.
func (h *UserHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	addresses, err := h.service.RemoveAddress(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(addresses), addresses)
}

// ListAddresses handles GET /api/v1/addresses requests.
func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.service.ListAddresses(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(addresses), addresses)
}

// AddToWishlist handles POST /api/v1/wishlist requests.
func (h *UserHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req model.WishlistRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	products, err := h.service.AddToWishlist(r.Context(), middleware.UserIDFromContext(r.Context()), req.ProductID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(products), products)
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/{productId} requests.
func (h *UserHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	products, err := h.service.RemoveFromWishlist(r.Context(), middleware.UserIDFromContext(r.Context()), productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(products), products)
}

// ListWishlist handles GET /api/v1/wishlist requests.
func (h *UserHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListWishlist(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, len(products), products)
}
