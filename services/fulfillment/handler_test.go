package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"zagroda/services/documents"
	"zagroda/services/notification"
	"zagroda/services/pms"
	"zagroda/services/zoho"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type fakeFulfillmentCRM struct {
	syncVoucherCalls  int
	syncVoucherErr    error
	lastVoucher       zoho.SyncVoucherParams
	redeemCalls       int
	lastRedeemCode    string
	lastRedeemDeal    string
	adoption          *zoho.AdoptionSearchResult
	findErr           error
	markPaidCalls     int
	syncAdoptionCalls int
	lastAdoption      zoho.SyncAdoptionParams
}

func (f *fakeFulfillmentCRM) RedeemVoucher(ctx context.Context, code, dealID string) error {
	f.redeemCalls++
	f.lastRedeemCode = code
	f.lastRedeemDeal = dealID
	return nil
}

func (f *fakeFulfillmentCRM) SyncVoucher(ctx context.Context, p zoho.SyncVoucherParams) error {
	f.syncVoucherCalls++
	f.lastVoucher = p
	return f.syncVoucherErr
}

func (f *fakeFulfillmentCRM) FindAdoptionBySessionID(ctx context.Context, sessionID string) (*zoho.AdoptionSearchResult, error) {
	return f.adoption, f.findErr
}

func (f *fakeFulfillmentCRM) MarkAdoptionPaid(ctx context.Context, adoptionID string) error {
	f.markPaidCalls++
	return nil
}

func (f *fakeFulfillmentCRM) SyncAdoption(ctx context.Context, p zoho.SyncAdoptionParams) error {
	f.syncAdoptionCalls++
	f.lastAdoption = p
	return nil
}

type fakeEmail struct {
	calls       int
	lastTo      string
	lastSubject string
	attachments []notification.Attachment
	err         error
}

func (f *fakeEmail) Send(ctx context.Context, to, subject, html string, attachments []notification.Attachment) error {
	f.calls++
	f.lastTo = to
	f.lastSubject = subject
	f.attachments = attachments
	return f.err
}

func checkoutEvent(t *testing.T, metadata map[string]string, email string) stripe.Event {
	t.Helper()
	session := map[string]any{
		"id":           "cs_test_1",
		"amount_total": 50000,
		"currency":     "pln",
		"metadata":     metadata,
	}
	if email != "" {
		session["customer_details"] = map[string]any{"email": email, "name": "Jan Nowak"}
	}
	raw, err := json.Marshal(session)
	if err != nil {
		t.Fatal(err)
	}
	return stripe.Event{
		ID:      "evt_1",
		Type:    "checkout.session.completed",
		Created: 1788264000,
		Data:    &stripe.EventData{Raw: raw},
	}
}

func newHandler(crm *fakeFulfillmentCRM, email *fakeEmail) *Handler {
	return &Handler{
		CRM:        crm,
		PMS:        pms.NewBeds24Gateway("https://example.invalid", "", zap.NewNop()),
		Documents:  documents.NewService(),
		Email:      email,
		AdminEmail: "vouchers@zagrodaalpakoterapii.com",
		Logger:     zap.NewNop(),
	}
}

func depositEvent(t *testing.T, metadata map[string]string) stripe.Event {
	t.Helper()
	intent := map[string]any{
		"id":       "pi_dep_1",
		"metadata": metadata,
	}
	raw, err := json.Marshal(intent)
	if err != nil {
		t.Fatal(err)
	}
	return stripe.Event{
		ID:      "evt_2",
		Type:    "payment_intent.succeeded",
		Created: 1788264000,
		Data:    &stripe.EventData{Raw: raw},
	}
}

func TestDispatchBookingDepositRedeemsVoucher(t *testing.T) {
	crm := &fakeFulfillmentCRM{}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), depositEvent(t, map[string]string{
		"type":              "booking_deposit",
		"bookingRef":        "ZAP-000123",
		"zohoBookingDealId": "deal-1",
		"roomId":            "room-garden",
		"checkIn":           "2026-09-10",
		"checkOut":          "2026-09-13",
		"voucherCode":       "ALPACA-X7K2P9",
		"childrenJson":      `[{"age":5}]`,
	}))

	assert.Equal(t, 1, crm.redeemCalls)
	assert.Equal(t, "ALPACA-X7K2P9", crm.lastRedeemCode)
	assert.Equal(t, "deal-1", crm.lastRedeemDeal)
	assert.Zero(t, email.calls, "deposit fulfillment sends no email")
}

func TestDispatchBookingDepositWithoutVoucherSkipsRedemption(t *testing.T) {
	crm := &fakeFulfillmentCRM{}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), depositEvent(t, map[string]string{
		"type":       "booking_deposit",
		"bookingRef": "ZAP-000124",
		"checkIn":    "2026-09-10",
		"checkOut":   "2026-09-13",
	}))

	assert.Zero(t, crm.redeemCalls)
}

func TestDispatchVoucherPurchase(t *testing.T) {
	crm := &fakeFulfillmentCRM{}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), checkoutEvent(t,
		map[string]string{"voucherCode": "ALPACA-X7K2P9"}, "jan@example.com"))

	assert.Equal(t, 1, crm.syncVoucherCalls)
	assert.Equal(t, "ALPACA-X7K2P9", crm.lastVoucher.Code)
	assert.Equal(t, 500.0, crm.lastVoucher.Amount)
	assert.Equal(t, "Active", crm.lastVoucher.Status)
	assert.Equal(t, "jan@example.com", crm.lastVoucher.BuyerEmail)
	// Vouchers expire 12 months after sale.
	soldAt := time.Unix(1788264000, 0)
	assert.Equal(t, soldAt.AddDate(1, 0, 0).Format("2006-01-02"), crm.lastVoucher.ExpiresOn.Format("2006-01-02"))

	assert.Equal(t, 1, email.calls)
	assert.Equal(t, "vouchers@zagrodaalpakoterapii.com", email.lastTo)
	assert.Len(t, email.attachments, 1)
	assert.NotEmpty(t, email.attachments[0].Content)
}

func TestDispatchVoucherEmailStillSentWhenCRMFails(t *testing.T) {
	crm := &fakeFulfillmentCRM{syncVoucherErr: errors.New("zoho down")}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), checkoutEvent(t,
		map[string]string{"voucherCode": "ALPACA-X7K2P9"}, "jan@example.com"))

	assert.Equal(t, 1, crm.syncVoucherCalls)
	assert.Equal(t, 1, email.calls, "CRM failure must not block the voucher email")
}

func TestDispatchAdoptionMarksExistingRecordPaid(t *testing.T) {
	crm := &fakeFulfillmentCRM{adoption: &zoho.AdoptionSearchResult{ID: "adopt-1", Status: "Pending"}}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), checkoutEvent(t,
		map[string]string{"alpaca": "Misia", "tier": "premium"}, "jan@example.com"))

	assert.Equal(t, 1, crm.markPaidCalls)
	assert.Zero(t, crm.syncAdoptionCalls)
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, "jan@example.com", email.lastTo)
}

func TestDispatchAdoptionSelfHealsMissingRecord(t *testing.T) {
	crm := &fakeFulfillmentCRM{}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), checkoutEvent(t,
		map[string]string{"alpaca": "Misia", "tier": "basic"}, ""))

	assert.Zero(t, crm.markPaidCalls)
	assert.Equal(t, 1, crm.syncAdoptionCalls)
	assert.Equal(t, "Misia", crm.lastAdoption.Alpaca)
	assert.Equal(t, "Paid", crm.lastAdoption.Status)
	// No customer details yet; placeholder keeps the record creatable.
	assert.Equal(t, "pending@stripe.com", crm.lastAdoption.Email)
}

func TestDispatchSessionWithBothMarkersRunsBothBranches(t *testing.T) {
	crm := &fakeFulfillmentCRM{adoption: &zoho.AdoptionSearchResult{ID: "adopt-1", Status: "Pending"}}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), checkoutEvent(t,
		map[string]string{"alpaca": "Misia", "tier": "gold", "voucherCode": "ALPACA-X7K2P9"},
		"jan@example.com"))

	assert.Equal(t, 1, crm.markPaidCalls, "adoption branch must run")
	assert.Equal(t, 1, crm.syncVoucherCalls, "voucher branch must run too")
	assert.Equal(t, 2, email.calls, "certificate and voucher emails both go out")
}

func TestDispatchIgnoresUnknownEvents(t *testing.T) {
	crm := &fakeFulfillmentCRM{}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), stripe.Event{Type: "invoice.paid"})

	assert.Zero(t, crm.syncVoucherCalls)
	assert.Zero(t, email.calls)
}

func TestDispatchIgnoresSessionWithoutMetadata(t *testing.T) {
	crm := &fakeFulfillmentCRM{}
	email := &fakeEmail{}
	h := newHandler(crm, email)

	h.Dispatch(context.Background(), checkoutEvent(t, map[string]string{}, "jan@example.com"))

	assert.Zero(t, crm.syncVoucherCalls)
	assert.Zero(t, crm.syncAdoptionCalls)
	assert.Zero(t, email.calls)
}
