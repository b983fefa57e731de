package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/repository"
	"shopcore/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	images       storage.ImageStore
	logger       zerolog.Logger
}

// NewProductService creates a new product service. The image store may be
// nil when image storage is disabled; image operations then fail cleanly.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	images storage.ImageStore,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		images:       images,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the given list parameters.
func (s *productService) List(ctx context.Context, params query.Params) ([]model.Product, error) {
	return s.productRepo.List(ctx, params)
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create inserts a new product after checking its category and brand exist.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:                 uuid.New(),
		Title:              req.Title,
		Slug:               slugify(req.Title),
		Description:        req.Description,
		Quantity:           req.Quantity,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		Colors:             req.Colors,
		Images:             []model.ProductImage{},
		CategoryID:         req.CategoryID,
		BrandID:            req.BrandID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID.String()).Str("title", product.Title).Msg("product created")
	return product, nil
}

// Update overwrites the mutable fields of a product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.Title = req.Title
	product.Slug = slugify(req.Title)
	product.Description = req.Description
	product.Quantity = req.Quantity
	product.Price = req.Price
	product.PriceAfterDiscount = req.PriceAfterDiscount
	product.Colors = req.Colors
	product.CategoryID = req.CategoryID
	product.BrandID = req.BrandID
	product.UpdatedAt = time.Now()

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}
	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// UploadImage stores an image and attaches it to the product.
func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*model.Product, error) {
	if s.images == nil {
		return nil, model.NewDomainError(model.ErrCodeInternalError, "image storage is not configured")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	key := fmt.Sprintf("%s/%s%s", id, uuid.New(), path.Ext(filename))
	url, err := s.images.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	if _, err := s.productRepo.AppendImage(ctx, id, model.ProductImage{URL: url, Key: key}); err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}

	s.logger.Info().Str("product_id", id.String()).Str("key", key).Msg("product image uploaded")
	return s.GetByID(ctx, id)
}

// RemoveImage detaches and deletes a stored image.
func (s *productService) RemoveImage(ctx context.Context, id uuid.UUID, key string) (*model.Product, error) {
	if s.images == nil {
		return nil, model.NewDomainError(model.ErrCodeInternalError, "image storage is not configured")
	}

	found, err := s.productRepo.RemoveImage(ctx, id, key)
	if err != nil {
		return nil, fmt.Errorf("failed to detach image: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	if err := s.images.Delete(ctx, key); err != nil {
		// The database no longer references the object; log and carry on.
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to delete stored image")
	}

	return s.GetByID(ctx, id)
}

func (s *productService) checkRefs(ctx context.Context, req *model.ProductRequest) error {
	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return model.ErrCategoryNotFound
	}

	if req.BrandID != nil {
		brand, err := s.brandRepo.GetByID(ctx, *req.BrandID)
		if err != nil {
			return fmt.Errorf("failed to load brand: %w", err)
		}
		if brand == nil {
			return model.ErrBrandNotFound
		}
	}
	return nil
}
