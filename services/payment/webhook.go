package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// WebhookVerifier authenticates incoming processor events. Verification is
// mandatory; an event that fails it must never reach fulfillment.
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (stripe.Event, error)
}

// StripeWebhookVerifier checks the Stripe-Signature header against the
// endpoint's shared secret.
type StripeWebhookVerifier struct {
	Secret string
}

func (v StripeWebhookVerifier) Verify(payload []byte, signatureHeader string) (stripe.Event, error) {
	if v.Secret == "" {
		return stripe.Event{}, fmt.Errorf("webhook secret not configured")
	}
	event, err := webhook.ConstructEvent(payload, signatureHeader, v.Secret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return event, nil
}
