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

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	coupon := &model.Coupon{
		ID:        uuid.New(),
		Name:      req.Name,
		Discount:  req.Discount,
		Expire:    req.Expire,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.Info().Str("coupon", coupon.Name).Float64("discount", coupon.Discount).Msg("coupon created")
	return coupon, nil
}

func (s *couponService) List(ctx context.Context, params query.Params) ([]model.Coupon, error) {
	return s.couponRepo.List(ctx, params)
}

func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}
	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:        id,
		Name:      req.Name,
		Discount:  req.Discount,
		Expire:    req.Expire,
		UpdatedAt: time.Now(),
	}

	found, err := s.couponRepo.Update(ctx, coupon)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrCouponNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.couponRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrCouponNotFound
	}
	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")
	return nil
}
