package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopcore/internal/auth"
	"shopcore/internal/config"
	"shopcore/internal/database"
	"shopcore/internal/handler"
	"shopcore/internal/payment"
	"shopcore/internal/repository"
	"shopcore/internal/router"
	"shopcore/internal/service"
	"shopcore/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopcore API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	brandRepo := repository.NewBrandRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize the image store. When disabled, product image endpoints
	// report the store as unconfigured.
	var images storage.ImageStore
	if cfg.S3.Enabled {
		images, err = storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize image store: %w", err)
		}
	} else {
		logger.Info().Msg("image storage disabled (S3_ENABLED=false)")
	}

	// Initialize token signing and payment provider
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	provider := payment.NewStripeProvider(cfg.Stripe.SecretKey, logger)

	checkout := service.CheckoutConfig{
		Currency:   cfg.Stripe.Currency,
		SuccessURL: cfg.Server.BaseURL + "/orders",
		CancelURL:  cfg.Server.BaseURL + "/cart",
	}

	// Initialize services
	userService := service.NewUserService(userRepo, tokens, logger)
	productService := service.NewProductService(productRepo, categoryRepo, brandRepo, images, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	brandService := service.NewBrandService(brandRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, couponRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, provider, checkout, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		User:     handler.NewUserHandler(userService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Category: handler.NewCategoryHandler(categoryService, logger),
		Brand:    handler.NewBrandHandler(brandService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Coupon:   handler.NewCouponHandler(couponService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}

	// Initialize router
	mux := router.New(handlers, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
