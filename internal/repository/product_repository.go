package repository

import (
	"context"
	"fmt"
	"strings"

	"shopcore/internal/model"
	"shopcore/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `
	id, title, slug, description, quantity, sold, price, price_after_discount,
	colors, images, category_id, brand_id, ratings_average, ratings_quantity,
	created_at, updated_at
`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Quantity, &p.Sold, &p.Price, &p.PriceAfterDiscount,
		&p.Colors, &p.Images, &p.CategoryID, &p.BrandID, &p.RatingsAverage, &p.RatingsQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// List retrieves products matching the given list parameters. Keyword search
// covers title and description; range filters apply to whitelisted numeric
// columns resolved by the query package.
func (r *productRepository) List(ctx context.Context, params query.Params) ([]model.Product, error) {
	var (
		conds []string
		args  []any
	)

	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		n := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", n, n))
	}

	for _, rg := range params.Ranges {
		args = append(args, rg.Value)
		conds = append(conds, fmt.Sprintf("%s %s $%d", rg.Column, rg.Op, len(args)))
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, params.Limit, params.Offset())
	q += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, params.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, q, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	q := `
		INSERT INTO products (
			id, title, slug, description, quantity, sold, price, price_after_discount,
			colors, images, category_id, brand_id, ratings_quantity, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10, $11, 0, $12, $12)
	`

	_, err := r.pool.Exec(ctx, q,
		product.ID, product.Title, product.Slug, product.Description, product.Quantity,
		product.Price, product.PriceAfterDiscount, product.Colors, product.Images,
		product.CategoryID, product.BrandID, product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("title", product.Title).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created")
	return nil
}

// Update overwrites the mutable fields of a product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (bool, error) {
	q := `
		UPDATE products
		SET title = $2, slug = $3, description = $4, quantity = $5, price = $6,
			price_after_discount = $7, colors = $8, category_id = $9, brand_id = $10,
			updated_at = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q,
		product.ID, product.Title, product.Slug, product.Description, product.Quantity,
		product.Price, product.PriceAfterDiscount, product.Colors, product.CategoryID,
		product.BrandID, product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AppendImage adds an image to the product's image list.
func (r *productRepository) AppendImage(ctx context.Context, id uuid.UUID, image model.ProductImage) (bool, error) {
	q := `
		UPDATE products
		SET images = images || $2::jsonb, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q, id, []model.ProductImage{image})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to append product image")
		return false, fmt.Errorf("failed to append product image: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveImage removes the image with the given storage key.
func (r *productRepository) RemoveImage(ctx context.Context, id uuid.UUID, key string) (bool, error) {
	q := `
		UPDATE products
		SET images = COALESCE(
			(SELECT jsonb_agg(img) FROM jsonb_array_elements(images) AS img WHERE img->>'key' <> $2),
			'[]'::jsonb
		),
		updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q, id, key)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to remove product image")
		return false, fmt.Errorf("failed to remove product image: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
