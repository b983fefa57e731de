package service

import (
	"context"
	"testing"
	"time"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCouponService_Create(t *testing.T) {
	ctx := context.Background()

	couponRepo := new(MockCouponRepository)
	service := NewCouponService(couponRepo, zerolog.Nop())

	couponRepo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Return(nil)

	coupon, err := service.Create(ctx, &model.CouponRequest{
		Name:     "SAVE20",
		Discount: 20,
		Expire:   time.Now().Add(24 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, "SAVE20", coupon.Name)
	assert.Equal(t, 20.0, coupon.Discount)
	assert.NotEqual(t, uuid.Nil, coupon.ID)
}

func TestCouponService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	couponRepo := new(MockCouponRepository)
	service := NewCouponService(couponRepo, zerolog.Nop())

	tests := []struct {
		name string
		req  *model.CouponRequest
	}{
		{name: "Missing name", req: &model.CouponRequest{Discount: 20, Expire: time.Now().Add(time.Hour)}},
		{name: "Negative discount", req: &model.CouponRequest{Name: "X", Discount: -1, Expire: time.Now().Add(time.Hour)}},
		{name: "Discount above 100", req: &model.CouponRequest{Name: "X", Discount: 101, Expire: time.Now().Add(time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon, err := service.Create(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, coupon)
		})
	}

	couponRepo.AssertNotCalled(t, "Create")
}

func TestCouponService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	couponRepo := new(MockCouponRepository)
	service := NewCouponService(couponRepo, zerolog.Nop())

	couponRepo.On("Delete", ctx, id).Return(false, nil)

	err := service.Delete(ctx, id)
	assert.Equal(t, model.ErrCouponNotFound, err)
}
