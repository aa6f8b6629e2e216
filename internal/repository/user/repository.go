package user

import (
	"context"

	"storefront/internal/domain"
)

type UpdateInput struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, in UpdateInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}
