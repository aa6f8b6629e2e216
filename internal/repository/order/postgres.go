package order

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

const orderColumns = `id::text, user_id::text, status,
shipping_address, shipping_city, shipping_postal_code, shipping_country,
payment_method, items_cents, tax_cents, shipping_cents, total_cents,
paid_at, payment_intent_id, payment_status, delivered_at, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (user_id, status, shipping_address, shipping_city, shipping_postal_code, shipping_country,
                    payment_method, items_cents, tax_cents, shipping_cents, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + orderColumns
	created, err := scanOrder(tx.QueryRow(ctx, q,
		o.UserID, o.Status,
		o.Shipping.Address, o.Shipping.City, o.Shipping.PostalCode, o.Shipping.Country,
		o.PaymentMethod, o.ItemsCents, o.TaxCents, o.ShippingCents, o.TotalCents))
	if err != nil {
		r.logger.Error("order repo: create", zap.String("user_id", o.UserID), zap.Error(err))
		return nil, err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, name, image, unit_price_cents, quantity, total_cents)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
`, created.ID, item.ProductID, item.Name, item.Image, item.UnitPriceCents, item.Quantity, item.TotalCents); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, created.ID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("order repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, o *domain.Order) error {
	const q = `
UPDATE orders
SET status = $2,
    paid_at = $3,
    payment_intent_id = $4,
    payment_status = $5,
    delivered_at = $6
WHERE id = $1
`
	var intentID, paymentStatus *string
	if o.Payment != nil {
		intentID = &o.Payment.IntentID
		paymentStatus = &o.Payment.Status
	}
	cmd, err := r.pool.Exec(ctx, q, o.ID, o.Status, o.PaidAt, intentID, paymentStatus, o.DeliveredAt)
	if err != nil {
		r.logger.Error("order repo: update status", zap.String("id", o.ID), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("order repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT id::text, product_id::text, name, COALESCE(image, ''), unit_price_cents, quantity, total_cents
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Name,
			&item.Image,
			&item.UnitPriceCents,
			&item.Quantity,
			&item.TotalCents,
		); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var intentID, paymentStatus *string
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.Shipping.Address,
		&o.Shipping.City,
		&o.Shipping.PostalCode,
		&o.Shipping.Country,
		&o.PaymentMethod,
		&o.ItemsCents,
		&o.TaxCents,
		&o.ShippingCents,
		&o.TotalCents,
		&o.PaidAt,
		&intentID,
		&paymentStatus,
		&o.DeliveredAt,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	if intentID != nil || paymentStatus != nil {
		o.Payment = &domain.PaymentResult{}
		if intentID != nil {
			o.Payment.IntentID = *intentID
		}
		if paymentStatus != nil {
			o.Payment.Status = *paymentStatus
		}
	}
	return &o, nil
}
