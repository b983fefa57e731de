package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, connects a pool and applies
// the schema from scripts/schema.sql.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	applySchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: container,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// applySchema runs scripts/schema.sql against the test database.
func applySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	schema, err := os.ReadFile("../../scripts/schema.sql")
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}

	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}

// CleanupDB truncates all tables between tests.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE order_items, orders, cart_items, carts, wishlists, addresses,
			reviews, coupons, products, brands, categories, users CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, role, active)
		VALUES ($1, $2, $3, 'not-a-real-hash', 'user', true)
	`, id, "user-"+id.String()[:8], email)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO categories (id, name, slug)
		VALUES ($1, $2, lower($2))
	`, id, name)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return id
}

// SeedProduct inserts a product and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, title string, price float64, quantity int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (id, title, slug, description, quantity, price, colors, category_id)
		VALUES ($1, $2, lower($2), '', $3, $4, '{}', $5)
	`, id, title, quantity, price, categoryID)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return id
}

// SeedCoupon inserts a coupon with the given expiry.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, name string, discount float64, expire time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO coupons (id, name, discount, expire)
		VALUES ($1, $2, $3, $4)
	`, id, name, discount, expire)
	if err != nil {
		t.Fatalf("failed to seed coupon: %v", err)
	}
	return id
}
