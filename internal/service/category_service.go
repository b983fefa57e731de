package service

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	repo   repository.CategoryRepository
	logger zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		repo:   repo,
		logger: logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context, params query.Params) ([]model.Category, error) {
	return s.repo.List(ctx, params)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, req *model.NameRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &model.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      slugify(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info().Str("category", category.Name).Msg("category created")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.NameRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:        id,
		Name:      req.Name,
		Slug:      slugify(req.Name),
		UpdatedAt: time.Now(),
	}

	found, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrCategoryNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrCategoryNotFound
	}
	return nil
}

// brandService implements BrandService.
type brandService struct {
	repo   repository.BrandRepository
	logger zerolog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(repo repository.BrandRepository, logger zerolog.Logger) BrandService {
	return &brandService{
		repo:   repo,
		logger: logger.With().Str("service", "brand").Logger(),
	}
}

func (s *brandService) List(ctx context.Context, params query.Params) ([]model.Brand, error) {
	return s.repo.List(ctx, params)
}

func (s *brandService) GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}
	if brand == nil {
		return nil, model.ErrBrandNotFound
	}
	return brand, nil
}

func (s *brandService) Create(ctx context.Context, req *model.NameRequest) (*model.Brand, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	brand := &model.Brand{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      slugify(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	s.logger.Info().Str("brand", brand.Name).Msg("brand created")
	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req *model.NameRequest) (*model.Brand, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	brand := &model.Brand{
		ID:        id,
		Name:      req.Name,
		Slug:      slugify(req.Name),
		UpdatedAt: time.Now(),
	}

	found, err := s.repo.Update(ctx, brand)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrBrandNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrBrandNotFound
	}
	return nil
}
