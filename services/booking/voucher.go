package booking

import (
	"context"
	"strings"
	"time"

	"zagroda/models"
	"zagroda/services/zoho"

	"go.uber.org/zap"
)

// VoucherCRM is the slice of the CRM the validator needs.
type VoucherCRM interface {
	FindVoucherByCode(ctx context.Context, code string) (*zoho.VoucherSearchResult, error)
}

// VoucherValidator checks gift/promo codes against the CRM. It only ever
// reads; redemption happens in the CRM after payment, not here. When the CRM
// is unreachable the validator fails closed: no reachable CRM, no discount.
type VoucherValidator struct {
	CRM    VoucherCRM
	Logger *zap.Logger
	Now    func() time.Time
}

func (v *VoucherValidator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// Validate normalizes the code to uppercase and resolves it to a discount
// descriptor. Invalid codes come back as results with a guest-facing message,
// not as errors.
func (v *VoucherValidator) Validate(ctx context.Context, code string) models.VoucherValidation {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return models.VoucherValidation{Valid: false, Error: "No voucher code provided"}
	}

	voucher, err := v.CRM.FindVoucherByCode(ctx, normalized)
	if err != nil {
		v.Logger.Error("voucher validation unavailable", zap.String("code", normalized), zap.Error(err))
		return models.VoucherValidation{Valid: false, Code: normalized, Error: "Unable to validate voucher"}
	}
	if voucher == nil {
		return models.VoucherValidation{Valid: false, Code: normalized, Error: "Voucher code not found"}
	}

	if voucher.Status != "Active" {
		msg := "This voucher is no longer valid"
		if voucher.Status == "Redeemed" {
			msg = "This voucher has already been used"
		}
		return models.VoucherValidation{Valid: false, Code: normalized, Error: msg}
	}

	if voucher.ExpirationDate != "" {
		expiry, err := time.Parse("2006-01-02", voucher.ExpirationDate)
		if err == nil && expiry.Before(v.now()) {
			return models.VoucherValidation{Valid: false, Code: normalized, Error: "This voucher has expired"}
		}
	}

	discountType := models.DiscountType(voucher.DiscountType)
	if discountType != models.DiscountPercent && discountType != models.DiscountFixed {
		discountType = models.DiscountFixed
	}

	return models.VoucherValidation{
		Valid:         true,
		Code:          normalized,
		DiscountType:  discountType,
		DiscountValue: voucher.DiscountValue,
		Description:   voucher.Description,
	}
}
