package repository

import (
	"context"
	"fmt"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const cartItemsQuery = `
	SELECT id, product_id, color, quantity, price
	FROM cart_items
	WHERE cart_id = $1
	ORDER BY position
`

// GetByUserID retrieves the user's cart with its items in insertion order.
func (r *cartRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, total_cart_price, total_price_after_discount, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`
	return r.getCart(ctx, query, userID)
}

// GetByID retrieves a cart by its ID.
func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, total_cart_price, total_price_after_discount, created_at, updated_at
		FROM carts
		WHERE id = $1
	`
	return r.getCart(ctx, query, id)
}

func (r *cartRepository) getCart(ctx context.Context, query string, key uuid.UUID) (*model.Cart, error) {
	var c model.Cart
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&c.ID,
		&c.UserID,
		&c.TotalCartPrice,
		&c.TotalPriceAfterDiscount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("key", key.String()).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("key", key.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	rows, err := r.pool.Query(ctx, cartItemsQuery, c.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", c.ID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Color, &item.Quantity, &item.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		c.Items = append(c.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &c, nil
}

// Save upserts the cart row keyed by user_id and replaces its items within
// one transaction. The ON CONFLICT clause closes the race where two first
// AddItem calls both observe no cart: whichever insert lands second updates
// the surviving row instead of creating a duplicate.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO carts (id, user_id, total_cart_price, total_price_after_discount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			total_cart_price = EXCLUDED.total_cart_price,
			total_price_after_discount = EXCLUDED.total_price_after_discount,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, upsert,
		cart.ID,
		cart.UserID,
		cart.TotalCartPrice,
		cart.TotalPriceAfterDiscount,
		cart.UpdatedAt,
	).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", cart.UserID.String()).Msg("failed to upsert cart")
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to clear cart items")
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	if len(cart.Items) > 0 {
		insert := `
			INSERT INTO cart_items (id, cart_id, product_id, color, quantity, price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		batch := &pgx.Batch{}
		for i, item := range cart.Items {
			batch.Queue(insert, item.ID, cart.ID, item.ProductID, item.Color, item.Quantity, item.Price, i)
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < len(cart.Items); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.Error().
					Err(err).
					Str("cart_id", cart.ID.String()).
					Str("product_id", cart.Items[i].ProductID.String()).
					Msg("failed to insert cart item")
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to insert cart items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to commit cart save")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Int("item_count", len(cart.Items)).
		Msg("cart saved")

	return nil
}

// DeleteByUserID removes the user's cart. Items go with it via ON DELETE
// CASCADE. Deleting a non-existent cart is a no-op.
func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
