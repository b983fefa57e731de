package repository

import (
	"context"
	"fmt"

	"shopcore/internal/model"
	"shopcore/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id, username, email, phone, password_hash, role, active, created_at, updated_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	q := `
		INSERT INTO users (id, username, email, phone, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err := r.pool.Exec(ctx, q,
		user.ID, user.Username, user.Email, user.Phone, user.PasswordHash,
		user.Role, user.Active, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user created")
	return nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// List retrieves users matching the given list parameters.
func (r *userRepository) List(ctx context.Context, params query.Params) ([]model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		q += ` WHERE username ILIKE $1 OR email ILIKE $1`
	}
	args = append(args, params.Limit, params.Offset())
	q += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, params.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// Update overwrites a user's profile fields.
func (r *userRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	q := `
		UPDATE users
		SET username = $2, email = $3, phone = $4, role = $5, active = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q,
		user.ID, user.Username, user.Email, user.Phone, user.Role, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to update user")
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error) {
	q := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update password")
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddAddress appends an address to the user's address book.
func (r *userRepository) AddAddress(ctx context.Context, address *model.Address) error {
	q := `
		INSERT INTO addresses (id, user_id, alias, details, phone, city, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, q,
		address.ID, address.UserID, address.Alias, address.Details,
		address.Phone, address.City, address.PostalCode,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", address.UserID.String()).Msg("failed to add address")
		return fmt.Errorf("failed to add address: %w", err)
	}
	return nil
}

// RemoveAddress removes an address. Removing a non-existent address is a
// no-op.
func (r *userRepository) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", addressID.String()).Msg("failed to remove address")
		return fmt.Errorf("failed to remove address: %w", err)
	}
	return nil
}

// ListAddresses retrieves the user's addresses.
func (r *userRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	q := `
		SELECT id, user_id, alias, details, phone, city, postal_code
		FROM addresses
		WHERE user_id = $1
		ORDER BY alias
	`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Alias, &a.Details, &a.Phone, &a.City, &a.PostalCode); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan address row")
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}
	return addresses, nil
}

// AddToWishlist adds a product to the user's wishlist. Adding a product
// twice is a no-op.
func (r *userRepository) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	q := `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, q, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to add to wishlist")
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

// RemoveFromWishlist removes a product from the user's wishlist.
func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`, userID, productID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to remove from wishlist")
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return nil
}

// ListWishlist retrieves the products on the user's wishlist.
func (r *userRepository) ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id IN (SELECT product_id FROM wishlists WHERE user_id = $1)
		ORDER BY title
	`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist product row")
			return nil, fmt.Errorf("failed to scan wishlist product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist products: %w", err)
	}
	return products, nil
}
