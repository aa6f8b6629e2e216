package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type productSeed struct {
	Name         string
	Description  string
	Brand        string
	Category     string
	PriceCents   int64
	CountInStock int
	Image        string
}

// Apply inserts basic seed data for manual testing. It is idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Name: "Admin", Email: "admin@example.com", Password: "Admin1234", Role: "admin"},
		{Name: "Demo Customer", Email: "customer@example.com", Password: "Customer1", Role: "customer"},
	}
	for _, u := range users {
		if err := ensureUser(ctx, pool, u); err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
	}

	products := []productSeed{
		{
			Name:         "Wireless Headphones",
			Description:  "Over-ear wireless headphones with noise cancelling",
			Brand:        "Acme",
			Category:     "Electronics",
			PriceCents:   12999,
			CountInStock: 10,
			Image:        "/images/headphones.jpg",
		},
		{
			Name:         "Ceramic Mug",
			Description:  "Ceramic mug with demo logo",
			Brand:        "Acme",
			Category:     "Kitchen",
			PriceCents:   1299,
			CountInStock: 40,
			Image:        "/images/mug.jpg",
		},
		{
			Name:         "Cotton T-Shirt",
			Description:  "Soft cotton tee for demo purposes",
			Brand:        "Acme",
			Category:     "Apparel",
			PriceCents:   1999,
			CountInStock: 25,
			Image:        "/images/tshirt.jpg",
		},
	}
	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, u.Name, u.Email, string(hashed), u.Role)
	return err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, brand, category, price_cents, currency, count_in_stock, images)
SELECT $1, $2, $3, $4, $5, 'usd', $6, jsonb_build_array($7::text)
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Brand, p.Category, p.PriceCents, p.CountInStock, p.Image)
	return err
}
