package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zagroda/services/documents"
	"zagroda/services/fulfillment"
	"zagroda/services/notification"
	"zagroda/services/zoho"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	event stripe.Event
	err   error
}

func (f fakeVerifier) Verify(payload []byte, sig string) (stripe.Event, error) {
	return f.event, f.err
}

type countingCRM struct {
	calls int
}

func (c *countingCRM) SyncVoucher(ctx context.Context, p zoho.SyncVoucherParams) error {
	c.calls++
	return nil
}
func (c *countingCRM) FindAdoptionBySessionID(ctx context.Context, id string) (*zoho.AdoptionSearchResult, error) {
	c.calls++
	return nil, nil
}
func (c *countingCRM) MarkAdoptionPaid(ctx context.Context, id string) error {
	c.calls++
	return nil
}
func (c *countingCRM) SyncAdoption(ctx context.Context, p zoho.SyncAdoptionParams) error {
	c.calls++
	return nil
}
func (c *countingCRM) RedeemVoucher(ctx context.Context, code, dealID string) error {
	c.calls++
	return nil
}

type silentEmail struct{}

func (silentEmail) Send(ctx context.Context, to, subject, html string, attachments []notification.Attachment) error {
	return nil
}

func webhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/stripe/webhook", StripeWebhook)
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	crm := &countingCRM{}
	Verifier = fakeVerifier{err: errors.New("signature mismatch")}
	Fulfillment = &fulfillment.Handler{
		CRM: crm, Documents: documents.NewService(), Email: silentEmail{},
		AdminEmail: "office@example.com", Logger: zap.NewNop(),
	}

	rec := postWebhook(webhookRouter(), `{"id":"evt_1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, crm.calls, "rejected events must never reach fulfillment")
}

func TestWebhookUnconfiguredReturns500(t *testing.T) {
	Verifier = nil

	rec := postWebhook(webhookRouter(), `{"id":"evt_1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhookAcknowledgesVerifiedEvent(t *testing.T) {
	crm := &countingCRM{}
	Verifier = fakeVerifier{event: stripe.Event{ID: "evt_1", Type: "invoice.paid"}}
	Fulfillment = &fulfillment.Handler{
		CRM: crm, Documents: documents.NewService(), Email: silentEmail{},
		AdminEmail: "office@example.com", Logger: zap.NewNop(),
	}

	rec := postWebhook(webhookRouter(), `{"id":"evt_1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
}
