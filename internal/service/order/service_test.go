package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	f.nextID++
	o.ID = fmt.Sprintf("o%d", f.nextID)
	o.CreatedAt = time.Now()
	f.orders[o.ID] = &o
	clone := o
	return &clone, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, o *domain.Order) error {
	stored, ok := f.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = o.Status
	stored.PaidAt = o.PaidAt
	stored.Payment = o.Payment
	stored.DeliveredAt = o.DeliveredAt
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		Items: []ItemInput{
			{ProductID: "p1", Name: "Mug", UnitPriceCents: 1000, Quantity: 2},
			{ProductID: "p2", Name: "Tee", UnitPriceCents: 2000, Quantity: 1},
		},
		Shipping: domain.ShippingAddress{
			Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
		},
		PaymentMethod: "stripe",
		ItemsCents:    4000,
		TaxCents:      400,
		ShippingCents: 500,
		TotalCents:    4900,
	}
}

func TestCreateOrder(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)

	o, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)
	require.Equal(t, domain.OrderCreated, o.Status)
	require.Equal(t, "u1", o.UserID)
	require.Len(t, o.Items, 2)
	require.EqualValues(t, 2000, o.Items[0].TotalCents)
	require.EqualValues(t, 4900, o.TotalCents)
	require.False(t, o.IsPaid())
}

func TestCreateEmptyOrder(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)

	in := validInput()
	in.Items = nil
	_, err := svc.Create(context.Background(), "u1", in)
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestCreateItemsPriceMismatch(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)

	in := validInput()
	in.ItemsCents = 3999
	_, err := svc.Create(context.Background(), "u1", in)
	require.ErrorIs(t, err, ErrPriceMismatch)
}

func TestCreateTotalMismatch(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)

	in := validInput()
	in.TotalCents = 5000
	_, err := svc.Create(context.Background(), "u1", in)
	require.ErrorIs(t, err, ErrPriceMismatch)
}

func TestCreateMissingShipping(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)

	in := validInput()
	in.Shipping.City = ""
	_, err := svc.Create(context.Background(), "u1", in)
	require.Error(t, err)
}

func TestGetOwnerAndAdmin(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)
	o, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)

	owner := domain.User{ID: "u1", Role: domain.RoleCustomer}
	admin := domain.User{ID: "boss", Role: domain.RoleAdmin}
	stranger := domain.User{ID: "u2", Role: domain.RoleCustomer}

	_, err = svc.Get(context.Background(), owner, o.ID)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), admin, o.ID)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), stranger, o.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPayOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := New(repo, nil)
	paidAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return paidAt }

	o, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)

	owner := domain.User{ID: "u1"}
	paid, err := svc.Pay(context.Background(), owner, o.ID, domain.PaymentResult{IntentID: "pi_1", Status: "succeeded"})
	require.NoError(t, err)
	require.True(t, paid.IsPaid())
	require.Equal(t, paidAt, *paid.PaidAt)
	require.Equal(t, "pi_1", paid.Payment.IntentID)

	stored, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPaid, stored.Status)
}

func TestPayTwiceFails(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)
	o, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)

	owner := domain.User{ID: "u1"}
	_, err = svc.Pay(context.Background(), owner, o.ID, domain.PaymentResult{IntentID: "pi_1"})
	require.NoError(t, err)
	_, err = svc.Pay(context.Background(), owner, o.ID, domain.PaymentResult{IntentID: "pi_2"})
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestDeliverRequiresPaid(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := New(repo, nil)
	o, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)

	_, err = svc.Deliver(context.Background(), o.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.MarkPaid(context.Background(), o.ID, domain.PaymentResult{IntentID: "pi_1"})
	require.NoError(t, err)

	delivered, err := svc.Deliver(context.Background(), o.ID)
	require.NoError(t, err)
	require.True(t, delivered.IsDelivered())
	require.NotNil(t, delivered.DeliveredAt)

	_, err = svc.Deliver(context.Background(), o.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListMine(t *testing.T) {
	svc := New(newFakeOrderRepo(), nil)
	_, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "u2", validInput())
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "u1", mine[0].UserID)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}
