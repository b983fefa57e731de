package repository

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, user_id, shipping_address, tax_price, shipping_price, total_order_price,
	payment_method, is_paid, paid_at, is_delivered, delivered_at, created_at, updated_at
`

// CreateFromCart inserts the order and its items, adjusts inventory for
// every line item and deletes the source cart, all in one transaction. The
// inventory updates and the order stand or fall together; there is no
// partially applied state to compensate for.
func (r *orderRepository) CreateFromCart(ctx context.Context, order *model.Order, cartID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertOrder := `
		INSERT INTO orders (
			id, user_id, shipping_address, tax_price, shipping_price, total_order_price,
			payment_method, is_paid, is_delivered, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, false, $8, $8)
	`

	_, err = tx.Exec(ctx, insertOrder,
		order.ID,
		order.UserID,
		order.ShippingAddress,
		order.TaxPrice,
		order.ShippingPrice,
		order.TotalOrderPrice,
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (id, order_id, product_id, color, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	adjustStock := `
		UPDATE products
		SET quantity = quantity - $2, sold = sold + $2
		WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(insertItem, item.ID, order.ID, item.ProductID, item.Color, item.Quantity, item.Price)
		batch.Queue(adjustStock, item.ProductID, item.Quantity)
	}
	batch.Queue(`DELETE FROM carts WHERE id = $1`, cartID)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("failed to materialise order")
			return fmt.Errorf("failed to materialise order: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to materialise order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order created from cart")

	return nil
}

// GetByID retrieves an order with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o model.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.UserID, &o.ShippingAddress, &o.TaxPrice, &o.ShippingPrice, &o.TotalOrderPrice,
		&o.PaymentMethod, &o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, params query.Params) ([]model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listOrders(ctx, q, userID, params.Limit, params.Offset())
}

// List retrieves all orders, newest first.
func (r *orderRepository) List(ctx context.Context, params query.Params) ([]model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listOrders(ctx, q, params.Limit, params.Offset())
}

func (r *orderRepository) listOrders(ctx context.Context, q string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.UserID, &o.ShippingAddress, &o.TaxPrice, &o.ShippingPrice, &o.TotalOrderPrice,
			&o.PaymentMethod, &o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		items, err := r.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) itemsFor(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	q := `
		SELECT id, order_id, product_id, color, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Color, &item.Quantity, &item.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// MarkPaid stamps the paid flag and timestamp. Calling it again re-stamps
// the timestamp; the flag is already true.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	q := `UPDATE orders SET is_paid = true, paid_at = $2, updated_at = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, id, at)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkDelivered stamps the delivered flag and timestamp.
func (r *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	q := `UPDATE orders SET is_delivered = true, delivered_at = $2, updated_at = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, id, at)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order delivered")
		return false, fmt.Errorf("failed to mark order delivered: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
