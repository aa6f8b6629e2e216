package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type fakeCartRepo struct {
	carts   map[string]*domain.Cart
	saveErr error
	saves   int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) GetByUser(_ context.Context, userID string) (*domain.Cart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone, nil
}

func (f *fakeCartRepo) Create(_ context.Context, userID string) (*domain.Cart, error) {
	if _, ok := f.carts[userID]; !ok {
		f.carts[userID] = &domain.Cart{ID: "cart-" + userID, UserID: userID}
	}
	return f.carts[userID], nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	clone := *cart
	clone.Items = append([]domain.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &clone
	return nil
}

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func newService(products ...*domain.Product) (*Service, *fakeCartRepo) {
	repo := newFakeCartRepo()
	catalog := &fakeProductRepo{products: map[string]*domain.Product{}}
	for _, p := range products {
		catalog.products[p.ID] = p
	}
	return New(repo, catalog, nil), repo
}

func TestGetCreatesEmptyCartOnFirstAccess(t *testing.T) {
	svc, repo := newService()

	cart, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.EqualValues(t, 0, cart.TotalCents)
	require.Contains(t, repo.carts, "u1")
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, _ := newService(&domain.Product{ID: "p1", Name: "Mug", PriceCents: 1000, CountInStock: 10})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
	require.EqualValues(t, 5000, cart.TotalCents)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AddItem(context.Background(), "u1", "ghost", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc, repo := newService(&domain.Product{ID: "p1", Name: "Mug", PriceCents: 1000, CountInStock: 2})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	require.ErrorIs(t, err, domain.ErrOutOfStock)
	require.Zero(t, repo.saves)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newService(&domain.Product{ID: "p1", CountInStock: 5})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 0)
	require.Error(t, err)
}

func TestSetQuantityReplacesLine(t *testing.T) {
	svc, _ := newService(&domain.Product{ID: "p1", Name: "Mug", PriceCents: 1000, CountInStock: 10})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(context.Background(), "u1", "p1", 7)
	require.NoError(t, err)
	require.Equal(t, 7, cart.Items[0].Quantity)
	require.EqualValues(t, 7000, cart.TotalCents)
}

func TestSetQuantityMissingLine(t *testing.T) {
	svc, _ := newService(&domain.Product{ID: "p1", CountInStock: 10})

	_, err := svc.SetQuantity(context.Background(), "u1", "p1", 2)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItemLeavesEmptyCart(t *testing.T) {
	svc, _ := newService(&domain.Product{ID: "p1", Name: "Mug", PriceCents: 1000, CountInStock: 10})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.EqualValues(t, 0, cart.TotalCents)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	svc, _ := newService(&domain.Product{ID: "p1", Name: "Mug", PriceCents: 1000, CountInStock: 10})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "u1", "ghost")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.EqualValues(t, 2000, cart.TotalCents)
}

func TestClearEmptiesCart(t *testing.T) {
	svc, _ := newService(
		&domain.Product{ID: "p1", Name: "Mug", PriceCents: 1000, CountInStock: 10},
		&domain.Product{ID: "p2", Name: "Tee", PriceCents: 2000, CountInStock: 10},
	)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "u1", "p2", 1)
	require.NoError(t, err)

	cart, err := svc.Clear(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.EqualValues(t, 0, cart.TotalCents)
}

func TestAddItemSaveError(t *testing.T) {
	svc, repo := newService(&domain.Product{ID: "p1", CountInStock: 10})
	repo.saveErr = errors.New("boom")

	_, err := svc.AddItem(context.Background(), "u1", "p1", 1)
	require.EqualError(t, err, "boom")
}
