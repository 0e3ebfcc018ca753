// Package analytics is the one narrow seam through which the booking flow
// reports funnel events. Emission is fire-and-forget: it never blocks and
// never fails a transition.
package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Emitter reports a funnel event with its parameters, best-effort.
type Emitter interface {
	Emit(event string, params map[string]any)
}

// Funnel event names, aligned with the GA4 ecommerce vocabulary.
const (
	EventBeginCheckout    = "begin_checkout"
	EventSelectRoom       = "select_room"
	EventAddToCart        = "add_to_cart"
	EventVoucherApplied   = "voucher_applied"
	EventAddPaymentInfo   = "add_payment_info"
	EventBookingConfirmed = "booking_confirmed"
	EventPaymentFailed    = "payment_failed"
)

// Noop swallows all events. Used in tests and when GA4 is not configured.
type Noop struct{}

func (Noop) Emit(string, map[string]any) {}

// GA4Emitter posts events to the GA4 Measurement Protocol.
type GA4Emitter struct {
	MeasurementID string
	APISecret     string
	HTTPClient    *http.Client
	Logger        *zap.Logger

	clientID string
}

func NewGA4Emitter(measurementID, apiSecret string, logger *zap.Logger) *GA4Emitter {
	return &GA4Emitter{
		MeasurementID: measurementID,
		APISecret:     apiSecret,
		HTTPClient:    &http.Client{Timeout: 5 * time.Second},
		Logger:        logger,
		clientID:      uuid.New().String(),
	}
}

type mpEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type mpPayload struct {
	ClientID string    `json:"client_id"`
	Events   []mpEvent `json:"events"`
}

// Emit sends the event in a goroutine. Failures are logged at debug and
// otherwise ignored.
func (g *GA4Emitter) Emit(event string, params map[string]any) {
	go func() {
		payload, err := json.Marshal(mpPayload{
			ClientID: g.clientID,
			Events:   []mpEvent{{Name: event, Params: params}},
		})
		if err != nil {
			return
		}
		endpoint := fmt.Sprintf(
			"https://www.google-analytics.com/mp/collect?measurement_id=%s&api_secret=%s",
			g.MeasurementID, g.APISecret,
		)
		resp, err := g.HTTPClient.Post(endpoint, "application/json", bytes.NewReader(payload))
		if err != nil {
			g.Logger.Debug("analytics emit failed", zap.String("event", event), zap.Error(err))
			return
		}
		resp.Body.Close()
	}()
}
