// Package handlers holds the gin endpoints. Service dependencies are
// package-level so main can wire the live clients and tests can drop in
// fakes.
package handlers

import (
	"context"

	"zagroda/services/booking"
	"zagroda/services/fulfillment"
	"zagroda/services/payment"
	"zagroda/services/pms"
	"zagroda/services/purchase"
)

// CancelCRM is the slice of the CRM cancellation needs.
type CancelCRM interface {
	UpdateBookingStatus(ctx context.Context, dealID, status string) error
}

var (
	PMS           pms.Gateway
	Validator     *booking.VoucherValidator
	IntentService *booking.IntentService
	Sessions      *booking.SessionStore
	Engine        *booking.Engine
	Fulfillment   *fulfillment.Handler
	Purchases     *purchase.Service
	Verifier      payment.WebhookVerifier
	CRM           CancelCRM
)
