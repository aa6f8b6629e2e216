package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

// Service owns cart mutations: every operation loads the user's cart (lazily
// creating it), validates against current stock, applies the change through
// the aggregate and persists the whole cart in one transaction. Stock checks
// are reads, not reservations; two concurrent adds can both pass them.
type Service struct {
	repo     cartrepo.Repository
	products productRepo
	logger   *zap.Logger
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, products: products, logger: logger}
}

// Get fetches the user's cart, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.getOrCreate(ctx, userID)
}

// AddItem merges (productID, quantity) into the cart after checking the
// product exists and has enough stock for the requested quantity.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CountInStock < quantity {
		return nil, domain.ErrOutOfStock
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(*product, quantity)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Debug("cart item added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return s.repo.GetByUser(ctx, userID)
}

// SetQuantity replaces an existing line's quantity (not incremented).
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CountInStock < quantity {
		return nil, domain.ErrOutOfStock
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// RemoveItem filters the line out of the cart and recomputes the total.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// Clear empties the cart and zeroes the total.
func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) getOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.Create(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}
