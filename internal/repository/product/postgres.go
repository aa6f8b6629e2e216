package product

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const productColumns = `id::text, name, COALESCE(description, ''), COALESCE(brand, ''), COALESCE(category, ''),
price_cents, currency, count_in_stock, images, featured, rating, num_reviews, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	const reviewsQ = `
SELECT id::text, product_id::text, user_id::text, user_name, rating, COALESCE(comment, ''), created_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, reviewsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		p.Reviews = append(p.Reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, brand, category, price_cents, currency, count_in_stock, images, featured)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8::jsonb, $9)
RETURNING ` + productColumns
	images, err := imagesJSON(p.Images)
	if err != nil {
		return nil, err
	}
	out, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Name, p.Description, p.Brand, p.Category, p.PriceCents, p.Currency, p.CountInStock, images, p.Featured))
	if err != nil {
		r.logger.Error("product repo: create", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    brand = NULLIF($4, ''),
    category = NULLIF($5, ''),
    price_cents = $6,
    currency = $7,
    count_in_stock = $8,
    images = $9::jsonb,
    featured = $10
WHERE id = $1
RETURNING ` + productColumns
	images, err := imagesJSON(p.Images)
	if err != nil {
		return nil, err
	}
	out, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Brand, p.Category, p.PriceCents, p.Currency, p.CountInStock, images, p.Featured))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: update", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("product repo: delete", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AddReview(ctx context.Context, review domain.Review, rating float64, numReviews int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
INSERT INTO reviews (product_id, user_id, user_name, rating, comment)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
`, review.ProductID, review.UserID, review.UserName, review.Rating, review.Comment)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
UPDATE products
SET rating = $2, num_reviews = $3
WHERE id = $1
`, review.ProductID, rating, numReviews); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func imagesJSON(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Brand,
		&p.Category,
		&p.PriceCents,
		&p.Currency,
		&p.CountInStock,
		&p.Images,
		&p.Featured,
		&p.Rating,
		&p.NumReviews,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
