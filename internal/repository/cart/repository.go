package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	// Save rewrites the cart's lines and derived total in one transaction,
	// the single-aggregate atomicity the storefront relies on.
	Save(ctx context.Context, cart *domain.Cart) error
}
