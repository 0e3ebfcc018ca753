// Package fulfillment turns verified Stripe events into CRM records,
// documents and email. Every branch is best-effort: a failure in one leg is
// logged and never blocks the others, because by the time an event arrives
// here the guest has already paid.
package fulfillment

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"zagroda/models"
	"zagroda/services/documents"
	"zagroda/services/notification"
	"zagroda/services/pms"
	"zagroda/services/zoho"
	"zagroda/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// FulfillmentCRM is the slice of the CRM the webhook needs.
type FulfillmentCRM interface {
	SyncVoucher(ctx context.Context, p zoho.SyncVoucherParams) error
	RedeemVoucher(ctx context.Context, code, dealID string) error
	FindAdoptionBySessionID(ctx context.Context, sessionID string) (*zoho.AdoptionSearchResult, error)
	MarkAdoptionPaid(ctx context.Context, adoptionID string) error
	SyncAdoption(ctx context.Context, p zoho.SyncAdoptionParams) error
}

// Handler dispatches verified webhook events to fulfillment branches.
type Handler struct {
	CRM        FulfillmentCRM
	PMS        pms.Gateway
	Documents  *documents.Service
	Email      notification.EmailSender
	AdminEmail string
	Logger     *zap.Logger
}

// Dispatch routes one verified event. It never returns an error: by webhook
// contract the caller acknowledges every verified event, and fulfillment
// problems are repaired from logs and Stripe metadata.
func (h *Handler) Dispatch(ctx context.Context, event stripe.Event) {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.Logger.Error("failed to decode checkout session", zap.String("eventId", event.ID), zap.Error(err))
			return
		}
		// A session can carry both markers; each branch runs on its own.
		handled := false
		if session.Metadata["alpaca"] != "" {
			h.fulfillAdoption(ctx, event, session)
			handled = true
		}
		if session.Metadata["voucherCode"] != "" {
			h.fulfillVoucher(ctx, event, session)
			handled = true
		}
		if !handled {
			h.Logger.Info("checkout session without fulfillment metadata, ignoring",
				zap.String("sessionId", session.ID))
		}
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.Logger.Error("failed to decode payment intent", zap.String("eventId", event.ID), zap.Error(err))
			return
		}
		if intent.Metadata["type"] == "booking_deposit" {
			h.fulfillBookingDeposit(ctx, &intent)
			return
		}
		h.Logger.Info("payment intent without booking metadata, ignoring",
			zap.String("paymentIntentId", intent.ID))
	default:
		h.Logger.Info("unhandled webhook event", zap.String("type", string(event.Type)))
	}
}

// fulfillBookingDeposit mirrors a paid booking into the property manager so
// the OTA calendar blocks, and redeems the voucher the deposit carried. The
// CRM deal already exists; both legs here are independent repairs on top.
func (h *Handler) fulfillBookingDeposit(ctx context.Context, intent *stripe.PaymentIntent) {
	meta := intent.Metadata
	bookingRef := meta["bookingRef"]

	h.Logger.Info("fulfilling booking deposit",
		zap.String("bookingRef", bookingRef),
		zap.String("paymentIntentId", intent.ID))

	payload := models.PMSBookingPayload{
		BookingRef:      bookingRef,
		CRMDealID:       meta["zohoBookingDealId"],
		RoomID:          meta["roomId"],
		CheckIn:         meta["checkIn"],
		CheckOut:        meta["checkOut"],
		GuestName:       meta["guestName"],
		GuestEmail:      meta["guestEmail"],
		GuestPhone:      meta["guestPhone"],
		SpecialRequests: meta["specialRequests"],
		NIPNumber:       meta["nipNumber"],
		VoucherCode:     meta["voucherCode"],
		StripeDepositID: intent.ID,
		Locale:          meta["locale"],
		Source:          "website",
	}
	payload.Adults, _ = strconv.Atoi(meta["adults"])
	payload.DepositAmount, _ = strconv.ParseFloat(meta["depositAmount"], 64)
	payload.BalanceAmount, _ = strconv.ParseFloat(meta["balanceAmount"], 64)
	payload.VoucherAmount, _ = strconv.ParseFloat(meta["voucherAmount"], 64)
	if meta["childrenJson"] != "" {
		if err := json.Unmarshal([]byte(meta["childrenJson"]), &payload.Children); err != nil {
			h.Logger.Warn("children metadata undecodable", zap.String("bookingRef", bookingRef), zap.Error(err))
		}
	}
	if intent.Customer != nil {
		payload.StripeCustomerID = intent.Customer.ID
	}
	if intent.PaymentMethod != nil {
		payload.StripePaymentMethodID = intent.PaymentMethod.ID
	}

	if result, err := h.PMS.CreateBooking(ctx, payload); err != nil {
		h.Logger.Error("PMS booking mirror failed", zap.String("bookingRef", bookingRef), zap.Error(err))
	} else {
		h.Logger.Info("booking mirrored to PMS",
			zap.String("bookingRef", bookingRef),
			zap.String("beds24BookingId", result.BedsBookingID))
	}

	if code := meta["voucherCode"]; code != "" {
		if err := h.CRM.RedeemVoucher(ctx, code, meta["zohoBookingDealId"]); err != nil {
			h.Logger.Error("voucher redemption failed",
				zap.String("code", code), zap.String("bookingRef", bookingRef), zap.Error(err))
		}
	}
}

// fulfillVoucher records the sold voucher in the CRM and mails the printable
// PDF to the office for fulfillment. The two legs run independently.
func (h *Handler) fulfillVoucher(ctx context.Context, event stripe.Event, session stripe.CheckoutSession) {
	code := session.Metadata["voucherCode"]
	email, name := buyerDetails(session)
	amount := float64(session.AmountTotal) / 100
	currency := string(session.Currency)
	soldAt := time.Unix(event.Created, 0)
	expiry := utils.VoucherExpiry(soldAt)

	h.Logger.Info("fulfilling voucher purchase",
		zap.String("code", code),
		zap.Float64("amount", amount),
		zap.String("buyerEmail", email))

	if err := h.CRM.SyncVoucher(ctx, zoho.SyncVoucherParams{
		Code:          code,
		Amount:        amount,
		Currency:      currency,
		Status:        "Active",
		BuyerEmail:    email,
		BuyerName:     name,
		RecipientName: session.Metadata["recipientName"],
		Phone:         session.Metadata["phone"],
		ExpiresOn:     expiry,
	}); err != nil {
		h.Logger.Error("voucher CRM sync failed", zap.String("code", code), zap.Error(err))
	}

	pdf, filename, err := h.Documents.VoucherPDF(documents.VoucherData{
		Code:          code,
		Amount:        amount,
		Currency:      currency,
		RecipientName: session.Metadata["recipientName"],
		BuyerName:     name,
		ExpiresOn:     expiry,
	})
	if err != nil {
		h.Logger.Error("voucher PDF render failed", zap.String("code", code), zap.Error(err))
		return
	}
	subject := "New gift voucher sold: " + code
	html := voucherAdminHTML(code, amount, currency, name, email)
	if err := h.Email.Send(ctx, h.AdminEmail, subject, html, []notification.Attachment{
		{Filename: filename, Content: pdf},
	}); err != nil {
		h.Logger.Error("voucher email failed", zap.String("code", code), zap.Error(err))
	}
}

// fulfillAdoption flips the pending adoption to paid, creating the record
// from metadata when the pending one is missing, then mails the certificate.
func (h *Handler) fulfillAdoption(ctx context.Context, event stripe.Event, session stripe.CheckoutSession) {
	alpaca := session.Metadata["alpaca"]
	tier := session.Metadata["tier"]
	email, name := buyerDetails(session)

	h.Logger.Info("fulfilling adoption purchase",
		zap.String("alpaca", alpaca),
		zap.String("tier", tier),
		zap.String("sessionId", session.ID))

	existing, err := h.CRM.FindAdoptionBySessionID(ctx, session.ID)
	switch {
	case err != nil:
		h.Logger.Error("adoption lookup failed", zap.String("sessionId", session.ID), zap.Error(err))
	case existing != nil:
		if err := h.CRM.MarkAdoptionPaid(ctx, existing.ID); err != nil {
			h.Logger.Error("adoption status update failed", zap.String("adoptionId", existing.ID), zap.Error(err))
		}
	default:
		// No pending record; recreate it from what the session carries.
		if err := h.CRM.SyncAdoption(ctx, zoho.SyncAdoptionParams{
			Email:           email,
			Alpaca:          alpaca,
			Tier:            tier,
			AmountCents:     session.AmountTotal,
			Status:          "Paid",
			StripeSessionID: session.ID,
		}); err != nil {
			h.Logger.Error("adoption CRM sync failed", zap.String("sessionId", session.ID), zap.Error(err))
		}
	}

	if name == "" {
		name = "Alpaca Friend"
	}
	pdf, filename, err := h.Documents.CertificatePDF(documents.CertificateData{
		AdopterName: name,
		AlpacaName:  alpaca,
		Tier:        tier,
		StartedOn:   time.Unix(event.Created, 0),
	})
	if err != nil {
		h.Logger.Error("certificate render failed", zap.String("alpaca", alpaca), zap.Error(err))
		return
	}
	subject := "Your alpaca adoption certificate"
	html := certificateHTML(name, alpaca)
	if err := h.Email.Send(ctx, email, subject, html, []notification.Attachment{
		{Filename: filename, Content: pdf},
	}); err != nil {
		h.Logger.Error("certificate email failed", zap.String("alpaca", alpaca), zap.Error(err))
	}
}

// buyerDetails pulls the buyer's email and name from the session. Stripe can
// deliver events before customer details settle, so a placeholder email keeps
// the CRM record creatable for later manual fixup.
func buyerDetails(session stripe.CheckoutSession) (email, name string) {
	if session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
		name = session.CustomerDetails.Name
	}
	if email == "" {
		email = "pending@stripe.com"
	}
	return email, name
}
