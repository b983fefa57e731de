package router

import (
	"net/http"

	"shopcore/internal/auth"
	"shopcore/internal/handler"
	"shopcore/internal/middleware"
	"shopcore/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Brand    *handler.BrandHandler
	Review   *handler.ReviewHandler
	Coupon   *handler.CouponHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens *auth.TokenService, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	authed := middleware.Authenticate(tokens, logger)
	staff := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
	admin := middleware.RequireRole(model.RoleAdmin)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.User.Signup)
		r.Post("/auth/login", h.User.Login)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/{id}", h.Product.GetByID)
			r.Get("/{productId}/reviews", h.Review.List)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/{productId}/reviews", h.Review.Create)
			})

			r.Group(func(r chi.Router) {
				r.Use(authed, staff)
				r.Post("/", h.Product.Create)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
				r.Post("/{id}/images", h.Product.UploadImage)
				r.Delete("/{id}/images/*", h.Product.RemoveImage)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.List)
			r.Get("/{id}", h.Category.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authed, staff)
				r.Post("/", h.Category.Create)
				r.Put("/{id}", h.Category.Update)
				r.Delete("/{id}", h.Category.Delete)
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", h.Brand.List)
			r.Get("/{id}", h.Brand.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authed, staff)
				r.Post("/", h.Brand.Create)
				r.Put("/{id}", h.Brand.Update)
				r.Delete("/{id}", h.Brand.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.Review.List)
			r.Get("/{id}", h.Review.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", h.Review.Create)
				r.Put("/{id}", h.Review.Update)
				r.Delete("/{id}", h.Review.Delete)
			})
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Use(authed, staff)
			r.Get("/", h.Coupon.List)
			r.Get("/{id}", h.Coupon.GetByID)
			r.Post("/", h.Coupon.Create)
			r.Put("/{id}", h.Coupon.Update)
			r.Delete("/{id}", h.Coupon.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authed)
			r.Post("/", h.Cart.AddItem)
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.Clear)
			r.Put("/applyCoupon", h.Cart.ApplyCoupon)
			r.Put("/{itemId}", h.Cart.UpdateItemQuantity)
			r.Delete("/{itemId}", h.Cart.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", h.Order.List)
			r.Get("/{id}", h.Order.GetByID)
			r.Post("/{cartId}", h.Order.PlaceCashOrder)
			r.Post("/checkout-session/{cartId}", h.Order.CreateCheckoutSession)

			r.Group(func(r chi.Router) {
				r.Use(staff)
				r.Put("/{id}/pay", h.Order.MarkPaid)
				r.Put("/{id}/deliver", h.Order.MarkDelivered)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authed)
			r.Get("/me", h.User.GetMe)
			r.Put("/me", h.User.UpdateMe)
			r.Put("/me/password", h.User.ChangePassword)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.GetByID)
			})
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", h.User.ListAddresses)
			r.Post("/", h.User.AddAddress)
			r.Delete("/{id}", h.User.RemoveAddress)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", h.User.ListWishlist)
			r.Post("/", h.User.AddToWishlist)
			r.Delete("/{productId}", h.User.RemoveFromWishlist)
		})
	})

	return r
}
