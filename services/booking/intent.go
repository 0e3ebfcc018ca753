package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"zagroda/models"
	"zagroda/services/payment"
	"zagroda/services/zoho"

	"go.uber.org/zap"
)

// BookingCRM is the slice of the CRM the intent service needs.
type BookingCRM interface {
	CreateBookingDeal(ctx context.Context, req models.BookingIntentRequest) (zoho.BookingDealResult, error)
}

// IntentService turns a completed draft into a CRM booking deal plus a Stripe
// payment intent for the deposit. Ordering is deliberate: the CRM record is
// created first, and a CRM failure aborts before any payment artifact exists.
type IntentService struct {
	CRM      BookingCRM
	Payments payment.Gateway
	Logger   *zap.Logger
}

// CreateIntent validates the request, writes the booking deal and opens the
// deposit payment intent. The returned client secret goes straight to the
// guest's browser.
func (s *IntentService) CreateIntent(ctx context.Context, req models.BookingIntentRequest) (*models.BookingIntentResult, error) {
	if req.RoomID == "" || req.CheckIn == "" || req.CheckOut == "" ||
		req.GuestName == "" || req.GuestEmail == "" {
		return nil, NewValidationError("Missing required fields")
	}
	if req.DepositAmount < 1 {
		return nil, NewValidationError("Deposit amount must be positive")
	}

	deal, err := s.CRM.CreateBookingDeal(ctx, req)
	if err != nil {
		s.Logger.Error("booking deal creation failed",
			zap.String("guestEmail", req.GuestEmail), zap.Error(err))
		// Surface the upstream message as-is; callers and support staff
		// diagnose from it, so it is never replaced with a canned string.
		return nil, NewUpstreamError(err.Error())
	}
	s.Logger.Info("booking deal created",
		zap.String("bookingRef", deal.BookingRef), zap.String("dealId", deal.DealID))

	customerID, err := s.Payments.EnsureCustomer(ctx, req.GuestEmail, req.GuestName, req.GuestPhone, map[string]string{
		"locale":     req.Locale,
		"bookingRef": deal.BookingRef,
	})
	if err != nil {
		s.Logger.Error("stripe customer setup failed",
			zap.String("bookingRef", deal.BookingRef), zap.Error(err))
		return nil, NewUpstreamError(err.Error())
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "pln"
	}

	intent, err := s.Payments.CreateDepositIntent(ctx, payment.DepositIntentParams{
		AmountCents: int64(math.Round(req.DepositAmount * 100)),
		Currency:    currency,
		CustomerID:  customerID,
		Description: fmt.Sprintf("Deposit: %s %s–%s [%s]", req.RoomName, req.CheckIn, req.CheckOut, deal.BookingRef),
		Metadata:    intentMetadata(req, deal),
	})
	if err != nil {
		s.Logger.Error("deposit intent creation failed",
			zap.String("bookingRef", deal.BookingRef), zap.Error(err))
		return nil, NewUpstreamError(err.Error())
	}

	s.Logger.Info("deposit intent created",
		zap.String("bookingRef", deal.BookingRef), zap.String("paymentIntentId", intent.ID))
	return &models.BookingIntentResult{
		ClientSecret: intent.ClientSecret,
		BookingRef:   deal.BookingRef,
	}, nil
}

// intentMetadata flattens the whole draft onto the payment intent. Stripe is
// the fallback system of record when a later CRM write fails, so everything a
// human needs to reconstruct the booking rides along.
func intentMetadata(req models.BookingIntentRequest, deal zoho.BookingDealResult) map[string]string {
	childrenJSON, _ := json.Marshal(req.Children)
	m := map[string]string{
		"type":              "booking_deposit",
		"bookingRef":        deal.BookingRef,
		"zohoBookingDealId": deal.DealID,
		"roomId":            req.RoomID,
		"roomName":          req.RoomName,
		"checkIn":           req.CheckIn,
		"checkOut":          req.CheckOut,
		"nights":            strconv.Itoa(req.Nights),
		"depositAmount":     strconv.FormatFloat(req.DepositAmount, 'f', -1, 64),
		"balanceAmount":     strconv.FormatFloat(req.BalanceAmount, 'f', -1, 64),
		"totalAmount":       strconv.FormatFloat(req.TotalAmount, 'f', -1, 64),
		"adults":            strconv.Itoa(req.Adults),
		"childrenJson":      string(childrenJSON),
		"guestName":         req.GuestName,
		"guestEmail":        req.GuestEmail,
		"guestPhone":        req.GuestPhone,
		"locale":            req.Locale,
	}
	if req.SpecialRequests != "" {
		m["specialRequests"] = req.SpecialRequests
	}
	if req.NIPNumber != "" {
		m["nipNumber"] = req.NIPNumber
	}
	if req.VoucherCode != "" {
		m["voucherCode"] = req.VoucherCode
		m["voucherAmount"] = strconv.FormatFloat(req.VoucherAmount, 'f', -1, 64)
	}
	return m
}
