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

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

const reviewColumns = `id, title, ratings, user_id, product_id, created_at, updated_at`

// refreshRatings recomputes the product's rating aggregates from its
// reviews. AVG over zero rows is NULL, which clears the average.
const refreshRatings = `
	UPDATE products
	SET ratings_average = sub.avg, ratings_quantity = sub.count
	FROM (
		SELECT AVG(ratings) AS avg, COUNT(*) AS count
		FROM reviews
		WHERE product_id = $1
	) AS sub
	WHERE id = $1
`

// List retrieves reviews, optionally restricted to one product.
func (r *reviewRepository) List(ctx context.Context, productID *uuid.UUID, params query.Params) ([]model.Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews`
	args := []any{}
	if productID != nil {
		args = append(args, *productID)
		q += ` WHERE product_id = $1`
	}
	args = append(args, params.Limit, params.Offset())
	q += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, params.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Title, &rv.Ratings, &rv.UserID, &rv.ProductID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// GetByID retrieves a review by ID.
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var rv model.Review
	err := r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id).
		Scan(&rv.ID, &rv.Title, &rv.Ratings, &rv.UserID, &rv.ProductID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}
	return &rv, nil
}

// Create inserts a new review and refreshes the product's rating aggregates
// in the same transaction.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `
		INSERT INTO reviews (id, title, ratings, user_id, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`

	_, err = tx.Exec(ctx, q,
		review.ID, review.Title, review.Ratings, review.UserID, review.ProductID, review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrReviewExists
		}
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	if _, err := tx.Exec(ctx, refreshRatings, review.ProductID); err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to refresh ratings")
		return fmt.Errorf("failed to refresh ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update overwrites a review's title and ratings and refreshes the product's
// rating aggregates.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `UPDATE reviews SET title = $2, ratings = $3, updated_at = $4 WHERE id = $1`

	tag, err := tx.Exec(ctx, q, review.ID, review.Title, review.Ratings, review.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("failed to update review")
		return false, fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, refreshRatings, review.ProductID); err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to refresh ratings")
		return false, fmt.Errorf("failed to refresh ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to update review: %w", err)
	}
	return true, nil
}

// Delete removes a review and refreshes the product's rating aggregates.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID uuid.UUID
	err = tx.QueryRow(ctx, `DELETE FROM reviews WHERE id = $1 RETURNING product_id`, id).Scan(&productID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return false, fmt.Errorf("failed to delete review: %w", err)
	}

	if _, err := tx.Exec(ctx, refreshRatings, productID); err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to refresh ratings")
		return false, fmt.Errorf("failed to refresh ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return true, nil
}
