package payment

import (
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

type stripeClient struct{}

// NewStripeClient configures the global Stripe key and returns the real
// intent client.
func NewStripeClient(secretKey string) IntentClient {
	stripe.Key = secretKey
	return stripeClient{}
}

func (stripeClient) NewIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}
