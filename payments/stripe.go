package payments

import (
	"food-order-api/config"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Init wires the Stripe SDK to the configured secret key.
func Init() {
	stripe.Key = config.Cfg.StripeSecretKey
}

// CreateCheckoutSession creates a hosted checkout session for the cart.
func CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

// ConstructEvent verifies the webhook signature and parses the event.
func ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, config.Cfg.StripeWebhookSecret)
}
