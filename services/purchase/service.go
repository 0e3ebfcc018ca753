// Package purchase opens hosted Stripe Checkout sessions for gift vouchers
// and alpaca adoptions. Nothing is written to the CRM here: the voucher code
// is minted up front and rides the session metadata, and the webhook records
// it once the payment settles.
package purchase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"zagroda/models"
	"zagroda/services/booking"
	"zagroda/services/payment"
	"zagroda/utils"

	"go.uber.org/zap"
)

// voucherAmounts lists the sellable denominations in minor units.
var voucherAmounts = map[string][]int64{
	"EUR": {2000, 5000, 10000},
	"PLN": {10000, 20000, 50000},
}

// tierPrices is the annual adoption package pricing in grosze.
var tierPrices = map[string]int64{
	"bronze": 9900,
	"silver": 49900,
	"gold":   99900,
}

// Service opens checkout sessions. NewVoucherCode is a field so tests can
// pin the minted code.
type Service struct {
	Checkout       payment.CheckoutGateway
	Logger         *zap.Logger
	NewVoucherCode func() string
}

func NewService(checkout payment.CheckoutGateway, logger *zap.Logger) *Service {
	return &Service{
		Checkout:       checkout,
		Logger:         logger,
		NewVoucherCode: utils.GenerateVoucherCode,
	}
}

// PurchaseVoucher validates the denomination, mints the code and opens the
// hosted session. The code is not reserved anywhere at this point;
// uniqueness is handled by the CRM when the paid voucher is synced.
func (s *Service) PurchaseVoucher(ctx context.Context, origin string, req models.VoucherPurchaseRequest) (*models.VoucherPurchaseResult, error) {
	currency := strings.ToUpper(req.Currency)
	amounts, ok := voucherAmounts[currency]
	if !ok {
		return nil, booking.NewValidationError("Invalid currency")
	}
	valid := false
	for _, a := range amounts {
		if a == req.Amount {
			valid = true
			break
		}
	}
	if !valid {
		return nil, booking.NewValidationError("Invalid amount")
	}

	code := s.NewVoucherCode()
	s.Logger.Info("opening voucher checkout",
		zap.String("code", code),
		zap.Int64("amount", req.Amount),
		zap.String("currency", currency))

	description := "Redeemable for farm activities, stays, and adoptions"
	if req.RecipientName != "" {
		description = "For " + req.RecipientName
	}

	session, err := s.Checkout.CreateCheckoutSession(ctx, payment.CheckoutSessionParams{
		AmountCents: req.Amount,
		Currency:    strings.ToLower(currency),
		ProductName: fmt.Sprintf("Alpaca Farm Gift Voucher - %d %s", req.Amount/100, currency),
		Description: description,
		ImageURL:    origin + "/images/voucher-preview.jpg",
		SuccessURL: fmt.Sprintf("%s/%s/vouchers/success?session_id={CHECKOUT_SESSION_ID}&voucher_code=%s&amount=%d&currency=%s",
			origin, req.Locale, code, req.Amount, currency),
		CancelURL:             fmt.Sprintf("%s/%s/vouchers", origin, req.Locale),
		CollectBillingAddress: true,
		Metadata: map[string]string{
			"voucherCode":     code,
			"recipientEmail":  req.RecipientEmail,
			"recipientName":   req.RecipientName,
			"personalMessage": req.PersonalMessage,
			"amount":          strconv.FormatInt(req.Amount, 10),
			"currency":        currency,
		},
	})
	if err != nil {
		s.Logger.Error("voucher checkout session failed", zap.String("code", code), zap.Error(err))
		return nil, booking.NewUpstreamError(err.Error())
	}
	return &models.VoucherPurchaseResult{URL: session.URL, VoucherCode: code}, nil
}

// AdoptionCheckout opens a hosted session for an annual adoption package.
// The alpaca and tier ride the session metadata; the webhook picks them up
// to flip the pending CRM record to paid.
func (s *Service) AdoptionCheckout(ctx context.Context, origin string, req models.AdoptionCheckoutRequest) (*models.AdoptionCheckoutResult, error) {
	if req.Tier == "" || req.Alpaca == "" {
		return nil, booking.NewValidationError("Missing tier or alpaca")
	}
	price, ok := tierPrices[strings.ToLower(req.Tier)]
	if !ok {
		return nil, booking.NewValidationError("Invalid tier")
	}

	s.Logger.Info("opening adoption checkout",
		zap.String("alpaca", req.Alpaca),
		zap.String("tier", req.Tier))

	session, err := s.Checkout.CreateCheckoutSession(ctx, payment.CheckoutSessionParams{
		AmountCents: price,
		Currency:    "pln",
		ProductName: fmt.Sprintf("Alpaca Adoption - %s Package", strings.ToUpper(req.Tier)),
		Description: "Annual adoption of " + req.Alpaca,
		ImageURL:    fmt.Sprintf("%s/images/Alpacas/%s.jpg", origin, req.Alpaca),
		SuccessURL: fmt.Sprintf("%s/%s/adopt/success?session_id={CHECKOUT_SESSION_ID}&tier=%s&alpaca=%s",
			origin, req.Locale, req.Tier, req.Alpaca),
		CancelURL: fmt.Sprintf("%s/%s/adopt", origin, req.Locale),
		Metadata: map[string]string{
			"tier":   req.Tier,
			"alpaca": req.Alpaca,
		},
	})
	if err != nil {
		s.Logger.Error("adoption checkout session failed", zap.String("alpaca", req.Alpaca), zap.Error(err))
		return nil, booking.NewUpstreamError(err.Error())
	}
	return &models.AdoptionCheckoutResult{URL: session.URL}, nil
}
