package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, user_id::text, total_cents, created_at, updated_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.TotalCents,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("cart repo: get", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	const itemsQ = `
SELECT id::text, product_id::text, name, COALESCE(image, ''), unit_price_cents, quantity, total_cents, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQ, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Name,
			&item.Image,
			&item.UnitPriceCents,
			&item.Quantity,
			&item.TotalCents,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) Create(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id, total_cents)
VALUES ($1, 0)
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING id::text, user_id::text, total_cents, created_at, updated_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.TotalCents,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	); err != nil {
		r.logger.Error("cart repo: create", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) Save(ctx context.Context, cart *domain.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return err
	}

	for _, item := range cart.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, name, image, unit_price_cents, quantity, total_cents)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
`, cart.ID, item.ProductID, item.Name, item.Image, item.UnitPriceCents, item.Quantity, item.TotalCents); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
UPDATE carts
SET total_cents = $2, updated_at = now()
WHERE id = $1
`, cart.ID, cart.TotalCents); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
