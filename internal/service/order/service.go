package order

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// ErrPriceMismatch is returned when the submitted items price does not equal
// the sum of the submitted lines.
var ErrPriceMismatch = errors.New("items price does not match order items")

// Service creates immutable order snapshots and drives status transitions.
type Service struct {
	repo   orderrepo.Repository
	logger *zap.Logger
	now    func() time.Time
}

func New(repo orderrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

type ItemInput struct {
	ProductID      string
	Name           string
	Image          string
	UnitPriceCents int64
	Quantity       int
}

type CreateInput struct {
	Items         []ItemInput
	Shipping      domain.ShippingAddress
	PaymentMethod string
	ItemsCents    int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
}

// Create persists an order snapshot for the submitting user. The items price
// is re-derived from the submitted lines and must match the claimed value;
// tax and shipping are trusted from the caller. Line unit prices are the
// add-time snapshots and are deliberately not checked against the catalog.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if in.PaymentMethod == "" {
		return nil, errors.New("payment method required")
	}
	if in.Shipping.Address == "" || in.Shipping.City == "" || in.Shipping.Country == "" {
		return nil, errors.New("shipping address incomplete")
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, errors.New("item quantity must be at least 1")
		}
		items = append(items, domain.OrderItem{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Image:          item.Image,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			TotalCents:     item.UnitPriceCents * int64(item.Quantity),
		})
	}

	derived := domain.ItemsTotalCents(items)
	if derived != in.ItemsCents {
		return nil, ErrPriceMismatch
	}
	if in.ItemsCents+in.TaxCents+in.ShippingCents != in.TotalCents {
		return nil, ErrPriceMismatch
	}

	created, err := s.repo.Create(ctx, domain.Order{
		UserID:        userID,
		Status:        domain.OrderCreated,
		Items:         items,
		Shipping:      in.Shipping,
		PaymentMethod: in.PaymentMethod,
		ItemsCents:    in.ItemsCents,
		TaxCents:      in.TaxCents,
		ShippingCents: in.ShippingCents,
		TotalCents:    in.TotalCents,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("user_id", userID),
		zap.Int64("total_cents", created.TotalCents))
	return created, nil
}

// Get returns an order to its owner or an admin.
func (s *Service) Get(ctx context.Context, caller domain.User, id string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != caller.ID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// ListMine returns the caller's orders.
func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every order. Admin only, enforced at the route.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// Pay records a payment result on behalf of the owner or an admin.
func (s *Service) Pay(ctx context.Context, caller domain.User, id string, result domain.PaymentResult) (*domain.Order, error) {
	o, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, o, result)
}

// MarkPaid flips an order to paid from a provider callback, where there is
// no authenticated caller.
func (s *Service) MarkPaid(ctx context.Context, id string, result domain.PaymentResult) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, o, result)
}

// Deliver transitions paid -> delivered. Admin only, enforced at the route.
func (s *Service) Deliver(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.MarkDelivered(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order delivered", zap.String("order_id", o.ID))
	return o, nil
}

func (s *Service) markPaid(ctx context.Context, o *domain.Order, result domain.PaymentResult) (*domain.Order, error) {
	if err := o.MarkPaid(s.now(), result); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order paid",
		zap.String("order_id", o.ID),
		zap.String("intent_id", result.IntentID))
	return o, nil
}
