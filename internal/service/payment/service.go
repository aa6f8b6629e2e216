package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

// IntentClient creates payment intents with the external provider. It is an
// interface so tests can run without Stripe credentials.
type IntentClient interface {
	NewIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type orders interface {
	Get(ctx context.Context, caller domain.User, id string) (*domain.Order, error)
	MarkPaid(ctx context.Context, id string, result domain.PaymentResult) (*domain.Order, error)
}

// Service is the bridge between orders and the payment provider: it turns an
// order total into a provider-side payment intent and relays the provider's
// signed webhook back onto the order. There is no reconciliation of missed
// webhooks; a lost event leaves the order unpaid here.
type Service struct {
	orders        orders
	intents       IntentClient
	webhookSecret string
	currency      string
	logger        *zap.Logger
}

func New(orders orders, intents IntentClient, webhookSecret, currency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		orders:        orders,
		intents:       intents,
		webhookSecret: webhookSecret,
		currency:      currency,
		logger:        logger,
	}
}

// CreateIntent reserves a charge for the order total (already in minor
// units) tagged with the order and user ids, and returns the client secret
// the browser continues the payment with.
func (s *Service) CreateIntent(ctx context.Context, caller domain.User, orderID string) (string, error) {
	o, err := s.orders.Get(ctx, caller, orderID)
	if err != nil {
		return "", err
	}
	if o.IsPaid() {
		return "", domain.ErrAlreadyPaid
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(o.TotalCents),
		Currency: stripe.String(s.currency),
	}
	params.AddMetadata("orderId", o.ID)
	params.AddMetadata("userId", caller.ID)
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := s.intents.NewIntent(params)
	if err != nil {
		s.logger.Error("create payment intent",
			zap.String("order_id", o.ID),
			zap.Error(err))
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	s.logger.Info("payment intent created",
		zap.String("order_id", o.ID),
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_cents", o.TotalCents))
	return intent.ClientSecret, nil
}

// Status reports payment state of an order to its owner or an admin.
func (s *Service) Status(ctx context.Context, caller domain.User, orderID string) (*domain.Order, error) {
	return s.orders.Get(ctx, caller, orderID)
}

// HandleWebhook verifies the provider's signature and, on a successful
// payment event, marks the referenced order paid. Unknown orders and
// already-paid orders are acknowledged so the provider stops redelivering;
// signature failures are not, so it retries.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		s.logger.Warn("webhook signature verification failed", zap.Error(err))
		return domain.ErrInvalidSignature
	}

	if event.Type != "payment_intent.succeeded" {
		s.logger.Debug("ignoring webhook event", zap.String("event_type", string(event.Type)))
		return nil
	}

	var intent stripe.PaymentIntent
	if err := intent.UnmarshalJSON(event.Data.Raw); err != nil {
		return fmt.Errorf("unmarshal payment intent: %w", err)
	}

	orderID := intent.Metadata["orderId"]
	if orderID == "" {
		s.logger.Warn("payment intent event without orderId metadata", zap.String("intent_id", intent.ID))
		return nil
	}

	_, err = s.orders.MarkPaid(ctx, orderID, domain.PaymentResult{
		IntentID: intent.ID,
		Status:   string(intent.Status),
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAlreadyPaid):
		// Acknowledge: redelivery cannot make these succeed.
		s.logger.Warn("webhook for unusable order",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil
	default:
		return err
	}
}
