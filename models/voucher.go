package models

// DiscountType distinguishes percentage vouchers from fixed-amount ones.
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// Discount is a validated voucher discount ready to feed into pricing.
type Discount struct {
	Type  DiscountType
	Value float64
}

// VoucherValidation is the result of checking a voucher code against the CRM.
// Invalid codes are results, not errors, so the wizard can render inline
// guidance instead of failing the step.
type VoucherValidation struct {
	Valid         bool         `json:"valid"`
	Code          string       `json:"code,omitempty"`
	DiscountType  DiscountType `json:"discountType,omitempty"`
	DiscountValue float64      `json:"discountValue,omitempty"`
	Description   string       `json:"description,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// Discount converts a successful validation into a Discount descriptor.
func (v VoucherValidation) Discount() *Discount {
	if !v.Valid {
		return nil
	}
	return &Discount{Type: v.DiscountType, Value: v.DiscountValue}
}
