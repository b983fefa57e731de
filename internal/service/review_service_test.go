package service

import (
	"context"
	"errors"
	"testing"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	service := NewReviewService(reviewRepo, productRepo, zerolog.Nop())

	productRepo.On("GetByID", ctx, productID).Return(&model.Product{ID: productID}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*model.Review")).Return(nil)

	review, err := service.Create(ctx, userID, &model.ReviewRequest{
		Title:     "Solid pieces",
		Ratings:   4,
		ProductID: productID,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, review.UserID)
	assert.Equal(t, productID, review.ProductID)
	assert.NotEqual(t, uuid.Nil, review.ID)

	reviewRepo.AssertExpectations(t)
}

func TestReviewService_Create_RatingsOutOfRange(t *testing.T) {
	ctx := context.Background()

	reviewRepo := new(MockReviewRepository)
	service := NewReviewService(reviewRepo, new(MockProductRepository), zerolog.Nop())

	for _, ratings := range []float64{0, 0.9, 5.1, -2} {
		review, err := service.Create(ctx, uuid.New(), &model.ReviewRequest{
			Ratings:   ratings,
			ProductID: uuid.New(),
		})
		require.Error(t, err)
		assert.Nil(t, review)
	}

	reviewRepo.AssertNotCalled(t, "Create")
}

func TestReviewService_Create_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	service := NewReviewService(reviewRepo, productRepo, zerolog.Nop())

	productRepo.On("GetByID", ctx, productID).Return(nil, nil)

	review, err := service.Create(ctx, uuid.New(), &model.ReviewRequest{Ratings: 4, ProductID: productID})

	assert.Equal(t, model.ErrProductNotFound, err)
	assert.Nil(t, review)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestReviewService_Create_AlreadyReviewed(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	service := NewReviewService(reviewRepo, productRepo, zerolog.Nop())

	productRepo.On("GetByID", ctx, productID).Return(&model.Product{ID: productID}, nil)
	reviewRepo.On("Create", ctx, mock.Anything).Return(model.ErrReviewExists)

	review, err := service.Create(ctx, uuid.New(), &model.ReviewRequest{Ratings: 4, ProductID: productID})

	assert.Equal(t, model.ErrReviewExists, err)
	assert.Nil(t, review)
}

func TestReviewService_Update_AuthorOnly(t *testing.T) {
	ctx := context.Background()
	reviewID := uuid.New()
	author := uuid.New()
	stranger := uuid.New()

	stored := &model.Review{ID: reviewID, UserID: author, ProductID: uuid.New(), Ratings: 3}

	reviewRepo := new(MockReviewRepository)
	service := NewReviewService(reviewRepo, new(MockProductRepository), zerolog.Nop())

	reviewRepo.On("GetByID", ctx, reviewID).Return(stored, nil)

	review, err := service.Update(ctx, reviewID, stranger, &model.ReviewRequest{Ratings: 1})

	require.Error(t, err)
	assert.Nil(t, review)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeForbidden, domainErr.Code)

	reviewRepo.AssertNotCalled(t, "Update")
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	reviewID := uuid.New()
	author := uuid.New()

	stored := &model.Review{ID: reviewID, UserID: author, ProductID: uuid.New(), Ratings: 3, Title: "OK"}

	reviewRepo := new(MockReviewRepository)
	service := NewReviewService(reviewRepo, new(MockProductRepository), zerolog.Nop())

	reviewRepo.On("GetByID", ctx, reviewID).Return(stored, nil)
	reviewRepo.On("Update", ctx, mock.AnythingOfType("*model.Review")).Return(true, nil)

	review, err := service.Update(ctx, reviewID, author, &model.ReviewRequest{Title: "Better than OK", Ratings: 5})

	require.NoError(t, err)
	assert.Equal(t, "Better than OK", review.Title)
	assert.Equal(t, 5.0, review.Ratings)
}

func TestReviewService_Delete_Permissions(t *testing.T) {
	ctx := context.Background()
	author := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name        string
		requesterID uuid.UUID
		role        string
		allowed     bool
	}{
		{name: "Author deletes own review", requesterID: author, role: model.RoleUser, allowed: true},
		{name: "Manager deletes any review", requesterID: stranger, role: model.RoleManager, allowed: true},
		{name: "Admin deletes any review", requesterID: stranger, role: model.RoleAdmin, allowed: true},
		{name: "Stranger cannot delete", requesterID: stranger, role: model.RoleUser, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviewID := uuid.New()
			stored := &model.Review{ID: reviewID, UserID: author, ProductID: uuid.New(), Ratings: 4}

			reviewRepo := new(MockReviewRepository)
			service := NewReviewService(reviewRepo, new(MockProductRepository), zerolog.Nop())

			reviewRepo.On("GetByID", ctx, reviewID).Return(stored, nil)
			if tt.allowed {
				reviewRepo.On("Delete", ctx, reviewID).Return(true, nil)
			}

			err := service.Delete(ctx, reviewID, tt.requesterID, tt.role)

			if tt.allowed {
				require.NoError(t, err)
				reviewRepo.AssertExpectations(t)
			} else {
				require.Error(t, err)
				reviewRepo.AssertNotCalled(t, "Delete")
			}
		})
	}
}

func TestReviewService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	reviewID := uuid.New()

	reviewRepo := new(MockReviewRepository)
	service := NewReviewService(reviewRepo, new(MockProductRepository), zerolog.Nop())

	reviewRepo.On("GetByID", ctx, reviewID).Return(nil, nil)

	err := service.Delete(ctx, reviewID, uuid.New(), model.RoleAdmin)
	assert.Equal(t, model.ErrReviewNotFound, err)
}
