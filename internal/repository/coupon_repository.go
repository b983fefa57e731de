package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, name, discount, expire, created_at, updated_at`

// GetValidByName retrieves the coupon with the given name whose expiry is
// strictly after now. The predicate folds "unknown name" and "expired" into
// the same no-row outcome.
func (r *couponRepository) GetValidByName(ctx context.Context, name string, now time.Time) (*model.Coupon, error) {
	q := `SELECT ` + couponColumns + ` FROM coupons WHERE name = $1 AND expire > $2`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, q, name, now).Scan(
		&c.ID, &c.Name, &c.Discount, &c.Expire, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("name", name).Msg("no valid coupon for name")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query coupon by name")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}
	return &c, nil
}

// List retrieves coupons matching the given list parameters.
func (r *couponRepository) List(ctx context.Context, params query.Params) ([]model.Coupon, error) {
	q := `SELECT ` + couponColumns + ` FROM coupons ORDER BY ` + params.OrderBy() + ` LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, q, params.Limit, params.Offset())
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.Name, &c.Discount, &c.Expire, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	q := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.Discount, &c.Expire, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}
	return &c, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	q := `
		INSERT INTO coupons (id, name, discount, expire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`

	_, err := r.pool.Exec(ctx, q, coupon.ID, coupon.Name, coupon.Discount, coupon.Expire, coupon.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDomainError(model.ErrCodeDuplicate, "A coupon with this name already exists")
		}
		r.logger.Error().Err(err).Str("name", coupon.Name).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// Update overwrites a coupon.
func (r *couponRepository) Update(ctx context.Context, coupon *model.Coupon) (bool, error) {
	q := `
		UPDATE coupons
		SET name = $2, discount = $3, expire = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q, coupon.ID, coupon.Name, coupon.Discount, coupon.Expire, coupon.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, model.NewDomainError(model.ErrCodeDuplicate, "A coupon with this name already exists")
		}
		r.logger.Error().Err(err).Str("coupon_id", coupon.ID.String()).Msg("failed to update coupon")
		return false, fmt.Errorf("failed to update coupon: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a coupon.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return false, fmt.Errorf("failed to delete coupon: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
