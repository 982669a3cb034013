package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// IntentClient requests a charge authorization from the payment provider and
// hands back the secret the browser uses to complete the payment. The server
// never sees card data.
type IntentClient interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type StripeIntents struct{ api *client.API }

func NewStripeIntents(secretKey string) *StripeIntents {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeIntents{api: api}
}

func (s *StripeIntents) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	pi, err := s.api.PaymentIntents.New(&stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	})
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
