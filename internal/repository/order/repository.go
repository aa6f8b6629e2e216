package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus persists a status transition together with its
	// paid/delivered timestamps and payment result. Order items are
	// immutable and never rewritten.
	UpdateStatus(ctx context.Context, o *domain.Order) error
}
