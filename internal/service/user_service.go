package service

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/auth"
	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Signup registers a new account and returns a signed token for it.
func (s *userService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("user registered")
	return s.issueToken(user)
}

// Login checks credentials and returns a signed token. Wrong email and
// wrong password yield the same error.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, model.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *userService) issueToken(user *model.User) (*model.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &model.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params query.Params) ([]model.User, error) {
	return s.userRepo.List(ctx, params)
}

func (s *userService) Update(ctx context.Context, user *model.User) (*model.User, error) {
	user.UpdatedAt = time.Now()
	found, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrUserNotFound
	}
	return s.GetByID(ctx, user.ID)
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	found, err := s.userRepo.UpdatePassword(ctx, id, hash)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Msg("password changed")
	return nil
}

func (s *userService) AddAddress(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) ([]model.Address, error) {
	address := &model.Address{
		ID:         uuid.New(),
		UserID:     userID,
		Alias:      req.Alias,
		Details:    req.Details,
		Phone:      req.Phone,
		City:       req.City,
		PostalCode: req.PostalCode,
	}

	if err := s.userRepo.AddAddress(ctx, address); err != nil {
		return nil, err
	}
	return s.userRepo.ListAddresses(ctx, userID)
}

func (s *userService) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) ([]model.Address, error) {
	if err := s.userRepo.RemoveAddress(ctx, userID, addressID); err != nil {
		return nil, err
	}
	return s.userRepo.ListAddresses(ctx, userID)
}

func (s *userService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return s.userRepo.ListAddresses(ctx, userID)
}

func (s *userService) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) ([]model.Product, error) {
	if err := s.userRepo.AddToWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.userRepo.ListWishlist(ctx, userID)
}

func (s *userService) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) ([]model.Product, error) {
	if err := s.userRepo.RemoveFromWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.userRepo.ListWishlist(ctx, userID)
}

func (s *userService) ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	return s.userRepo.ListWishlist(ctx, userID)
}
