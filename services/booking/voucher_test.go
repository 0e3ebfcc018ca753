package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"zagroda/models"
	"zagroda/services/zoho"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeVoucherCRM struct {
	voucher *zoho.VoucherSearchResult
	err     error
	queried string
}

func (f *fakeVoucherCRM) FindVoucherByCode(ctx context.Context, code string) (*zoho.VoucherSearchResult, error) {
	f.queried = code
	return f.voucher, f.err
}

func newValidator(crm *fakeVoucherCRM) *VoucherValidator {
	return &VoucherValidator{
		CRM:    crm,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestValidateEmptyCode(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{})

	result := v.Validate(context.Background(), "   ")

	assert.False(t, result.Valid)
	assert.Equal(t, "No voucher code provided", result.Error)
}

func TestValidateNormalizesCase(t *testing.T) {
	crm := &fakeVoucherCRM{voucher: &zoho.VoucherSearchResult{
		ID: "v1", VoucherCode: "ALPACA-X7K2P9", Status: "Active",
		DiscountType: "FIXED", DiscountValue: 200,
	}}
	v := newValidator(crm)

	result := v.Validate(context.Background(), "  alpaca-x7k2p9 ")

	assert.True(t, result.Valid)
	assert.Equal(t, "ALPACA-X7K2P9", crm.queried)
	assert.Equal(t, "ALPACA-X7K2P9", result.Code)
	assert.Equal(t, models.DiscountFixed, result.DiscountType)
	assert.Equal(t, 200.0, result.DiscountValue)
}

func TestValidateFailsClosedOnCRMError(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{err: errors.New("crm down")})

	result := v.Validate(context.Background(), "ALPACA-X7K2P9")

	assert.False(t, result.Valid)
	assert.Equal(t, "Unable to validate voucher", result.Error)
}

func TestValidateUnknownCode(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{})

	result := v.Validate(context.Background(), "NOPE-123")

	assert.False(t, result.Valid)
	assert.Equal(t, "Voucher code not found", result.Error)
}

func TestValidateRedeemedVoucher(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{voucher: &zoho.VoucherSearchResult{
		ID: "v1", Status: "Redeemed",
	}})

	result := v.Validate(context.Background(), "ALPACA-USED")

	assert.False(t, result.Valid)
	assert.Equal(t, "This voucher has already been used", result.Error)
}

func TestValidateInactiveVoucher(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{voucher: &zoho.VoucherSearchResult{
		ID: "v1", Status: "Expired",
	}})

	result := v.Validate(context.Background(), "ALPACA-OLD")

	assert.False(t, result.Valid)
	assert.Equal(t, "This voucher is no longer valid", result.Error)
}

func TestValidateExpiredByDate(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{voucher: &zoho.VoucherSearchResult{
		ID: "v1", Status: "Active", ExpirationDate: "2026-08-31",
	}})

	result := v.Validate(context.Background(), "ALPACA-LATE")

	assert.False(t, result.Valid)
	assert.Equal(t, "This voucher has expired", result.Error)
}

func TestValidateDefaultsToFixedDiscount(t *testing.T) {
	v := newValidator(&fakeVoucherCRM{voucher: &zoho.VoucherSearchResult{
		ID: "v1", Status: "Active", DiscountType: "weird", DiscountValue: 150,
	}})

	result := v.Validate(context.Background(), "ALPACA-ODD")

	assert.True(t, result.Valid)
	assert.Equal(t, models.DiscountFixed, result.DiscountType)
}
