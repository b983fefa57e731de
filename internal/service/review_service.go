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

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

func (s *reviewService) List(ctx context.Context, productID *uuid.UUID, params query.Params) ([]model.Review, error) {
	return s.reviewRepo.List(ctx, productID, params)
}

func (s *reviewService) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	now := time.Now()
	review := &model.Review{
		ID:        uuid.New(),
		Title:     req.Title,
		Ratings:   req.Ratings,
		UserID:    userID,
		ProductID: req.ProductID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("product_id", req.ProductID.String()).
		Msg("review created")
	return review, nil
}

// Update allows only the review's author to change it.
func (s *reviewService) Update(ctx context.Context, id, requesterID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}
	if review.UserID != requesterID {
		return nil, model.NewDomainError(model.ErrCodeForbidden, "you can only update your own reviews")
	}

	review.Title = req.Title
	review.Ratings = req.Ratings
	review.UpdatedAt = time.Now()

	found, err := s.reviewRepo.Update(ctx, review)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrReviewNotFound
	}
	return review, nil
}

// Delete allows the author, a manager or an admin to remove a review.
func (s *reviewService) Delete(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return model.ErrReviewNotFound
	}

	privileged := requesterRole == model.RoleManager || requesterRole == model.RoleAdmin
	if review.UserID != requesterID && !privileged {
		return model.NewDomainError(model.ErrCodeForbidden, "you can only delete your own reviews")
	}

	found, err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrReviewNotFound
	}

	s.logger.Info().Str("review_id", id.String()).Msg("review deleted")
	return nil
}
