package booking

import (
	"math"

	"zagroda/models"
)

// Deposit rates. A plain booking takes a 10% deposit; once a voucher has been
// applied the deposit is recomputed as 30% of the discounted total. The
// asymmetry is long-standing observed behaviour on the live site and is kept
// as-is pending a product decision.
const (
	baseDepositRate    = 0.10
	voucherDepositRate = 0.30
)

// PriceQuote is the money breakdown for a stay. All amounts are whole PLN;
// the only rounding applied is the single round on the deposit, so
// DepositAmount + BalanceAmount always equals DiscountedTotal exactly.
type PriceQuote struct {
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountedTotal float64 `json:"discountedTotal"`
	DepositAmount   float64 `json:"depositAmount"`
	BalanceAmount   float64 `json:"balanceAmount"`
	VoucherApplied  bool    `json:"voucherApplied"`
}

// Bookable reports whether the quote can proceed to payment. Zero or unknown
// totals (price-on-request rooms) block the flow.
func (q PriceQuote) Bookable() bool {
	return q.DiscountedTotal > 0 && q.DepositAmount >= 1
}

// Quote derives the deposit/balance split for a stay total and an optional
// validated voucher discount. Pure, no I/O.
func Quote(total float64, discount *models.Discount) PriceQuote {
	if total <= 0 {
		return PriceQuote{}
	}

	var discountAmount float64
	if discount != nil {
		switch discount.Type {
		case models.DiscountPercent:
			discountAmount = math.Round(total * discount.Value / 100)
		case models.DiscountFixed:
			discountAmount = discount.Value
		}
		// Clamp so the discounted total never goes negative.
		if discountAmount > total {
			discountAmount = total
		}
		if discountAmount < 0 {
			discountAmount = 0
		}
	}

	discounted := total - discountAmount

	var deposit float64
	if discount == nil {
		deposit = math.Round(total * baseDepositRate)
	} else {
		deposit = math.Round(discounted * voucherDepositRate)
	}
	if deposit > discounted {
		deposit = discounted
	}

	return PriceQuote{
		DiscountAmount:  discountAmount,
		DiscountedTotal: discounted,
		DepositAmount:   deposit,
		BalanceAmount:   discounted - deposit,
		VoucherApplied:  discount != nil,
	}
}
