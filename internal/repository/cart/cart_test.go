package cart

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestPostgres_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var userID string
	err := pool.QueryRow(ctx, `
INSERT INTO users (name, email, password_hash, role)
VALUES ('Test', gen_random_uuid()::text || '@example.com', 'x', 'customer')
RETURNING id::text`).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	var productID string
	err = pool.QueryRow(ctx, `
INSERT INTO products (name, price_cents, currency, count_in_stock, images)
VALUES ('Mug', 1000, 'usd', 10, '[]'::jsonb)
RETURNING id::text`).Scan(&productID)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	repo := NewPostgres(pool, nil)
	if _, err := repo.GetByUser(ctx, userID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before create, got %v", err)
	}

	created, err := repo.Create(ctx, userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UserID != userID || len(created.Items) != 0 {
		t.Fatalf("unexpected cart %+v", created)
	}

	created.Items = []domain.CartItem{{
		ProductID:      productID,
		Name:           "Mug",
		UnitPriceCents: 1000,
		Quantity:       3,
		TotalCents:     3000,
	}}
	created.TotalCents = 3000
	if err := repo.Save(ctx, created); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fetched, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].Quantity != 3 || fetched.TotalCents != 3000 {
		t.Fatalf("fetched mismatch %+v", fetched)
	}

	fetched.Items = nil
	fetched.TotalCents = 0
	if err := repo.Save(ctx, fetched); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	fetched, err = repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser after clear: %v", err)
	}
	if len(fetched.Items) != 0 || fetched.TotalCents != 0 {
		t.Fatalf("cart not cleared %+v", fetched)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE cart_items, carts, order_items, orders, reviews, products, tokens, users CASCADE`)
	if err != nil {
		t.Fatalf("reset tables: %v", err)
	}
}
