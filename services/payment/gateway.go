// Package payment wraps the Stripe API behind a narrow gateway so the
// booking flow can be exercised against fakes.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// DepositIntentParams describes the payment intent for a booking deposit.
type DepositIntentParams struct {
	AmountCents int64
	Currency    string
	CustomerID  string
	Description string
	// Metadata carries the booking reference, the CRM deal id and the entire
	// flattened draft. It is the only per-guest record inside Stripe and is
	// used for manual reconciliation if the CRM write partially failed.
	Metadata map[string]string
}

// DepositIntent is the subset of a created payment intent the flow needs.
type DepositIntent struct {
	ID           string
	ClientSecret string
}

// Gateway is the payment-processor surface the booking intent service uses.
type Gateway interface {
	// EnsureCustomer returns an existing customer id for the email, creating
	// one when none exists. Read-then-create, not atomic; two simultaneous
	// bookings from one email can create two customers, which is accepted.
	EnsureCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error)
	// CreateDepositIntent creates a payment intent that retains the payment
	// method for later off-session use, so the balance can be charged
	// without the guest re-entering a card.
	CreateDepositIntent(ctx context.Context, p DepositIntentParams) (*DepositIntent, error)
}

// CheckoutSessionParams describes a hosted checkout page for a one-off
// purchase (gift voucher or adoption package).
type CheckoutSessionParams struct {
	AmountCents int64
	Currency    string
	ProductName string
	Description string
	ImageURL    string
	SuccessURL  string
	CancelURL   string
	// CollectBillingAddress makes Stripe ask for full billing details,
	// including the buyer's name.
	CollectBillingAddress bool
	Metadata              map[string]string
}

// CheckoutSession is the subset of a created session the caller needs: the
// hosted page URL the guest is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutGateway opens hosted checkout sessions.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*CheckoutSession, error)
}

// StripeGateway implements Gateway against the live Stripe API.
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, logger: logger}
}

func (g *StripeGateway) EnsureCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := g.api.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("stripe customer lookup failed: %w", err)
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
		Phone: stripe.String(phone),
	}
	createParams.Context = ctx
	for k, v := range metadata {
		createParams.AddMetadata(k, v)
	}
	cust, err := g.api.Customers.New(createParams)
	if err != nil {
		return "", fmt.Errorf("stripe customer creation failed: %w", err)
	}
	g.logger.Info("created stripe customer", zap.String("customerId", cust.ID))
	return cust.ID, nil
}

func (g *StripeGateway) CreateDepositIntent(ctx context.Context, p DepositIntentParams) (*DepositIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:           stripe.Int64(p.AmountCents),
		Currency:         stripe.String(p.Currency),
		Customer:         stripe.String(p.CustomerID),
		SetupFutureUsage: stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession)),
		Description:      stripe.String(p.Description),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent creation failed: %w", err)
	}
	return &DepositIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*CheckoutSession, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(p.ProductName),
	}
	if p.Description != "" {
		product.Description = stripe.String(p.Description)
	}
	if p.ImageURL != "" {
		product.Images = stripe.StringSlice([]string{p.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(p.Currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(p.AmountCents),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	if p.CollectBillingAddress {
		params.BillingAddressCollection = stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired))
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}
	g.logger.Info("created checkout session", zap.String("sessionId", session.ID))
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

var _ Gateway = (*StripeGateway)(nil)
var _ CheckoutGateway = (*StripeGateway)(nil)
