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

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) List(ctx context.Context, params query.Params) ([]model.Category, error) {
	q := `SELECT id, name, slug, created_at, updated_at FROM categories`
	args := []any{}
	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		q += ` WHERE name ILIKE $1`
	}
	args = append(args, params.Limit, params.Offset())
	q += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, params.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	q := `INSERT INTO categories (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`
	_, err := r.pool.Exec(ctx, q, category.ID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDomainError(model.ErrCodeDuplicate, "A category with this name already exists")
		}
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (bool, error) {
	q := `UPDATE categories SET name = $2, slug = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, category.ID, category.Name, category.Slug, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, model.NewDomainError(model.ErrCodeDuplicate, "A category with this name already exists")
		}
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to update category")
		return false, fmt.Errorf("failed to update category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// brandRepository implements the BrandRepository interface using PostgreSQL.
type brandRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool *pgxpool.Pool, logger zerolog.Logger) BrandRepository {
	return &brandRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "brand").Logger(),
	}
}

func (r *brandRepository) List(ctx context.Context, params query.Params) ([]model.Brand, error) {
	q := `SELECT id, name, slug, created_at, updated_at FROM brands`
	args := []any{}
	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		q += ` WHERE name ILIKE $1`
	}
	args = append(args, params.Limit, params.Offset())
	q += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, params.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query brands")
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt, &b.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan brand row")
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}
	return brands, nil
}

func (r *brandRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var b model.Brand
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM brands WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("brand_id", id.String()).Msg("failed to query brand")
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}
	return &b, nil
}

func (r *brandRepository) Create(ctx context.Context, brand *model.Brand) error {
	q := `INSERT INTO brands (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`
	_, err := r.pool.Exec(ctx, q, brand.ID, brand.Name, brand.Slug, brand.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDomainError(model.ErrCodeDuplicate, "A brand with this name already exists")
		}
		r.logger.Error().Err(err).Str("name", brand.Name).Msg("failed to create brand")
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (r *brandRepository) Update(ctx context.Context, brand *model.Brand) (bool, error) {
	q := `UPDATE brands SET name = $2, slug = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, brand.ID, brand.Name, brand.Slug, brand.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, model.NewDomainError(model.ErrCodeDuplicate, "A brand with this name already exists")
		}
		r.logger.Error().Err(err).Str("brand_id", brand.ID.String()).Msg("failed to update brand")
		return false, fmt.Errorf("failed to update brand: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *brandRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("brand_id", id.String()).Msg("failed to delete brand")
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
