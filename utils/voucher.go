package utils

import (
	"crypto/rand"
	"math/big"
	"time"
)

// Alphabet for voucher codes. Skips characters that read ambiguously
// on a printed voucher (0, O, I, 1).
const voucherAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const voucherPrefix = "ALPACA"

// GenerateVoucherCode mints a code of the form ALPACA-XXXXXX.
func GenerateVoucherCode() string {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(voucherAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a fixed character rather than panicking mid-checkout.
			buf[i] = voucherAlphabet[0]
			continue
		}
		buf[i] = voucherAlphabet[n.Int64()]
	}
	return voucherPrefix + "-" + string(buf)
}

// VoucherExpiry returns the expiration date for a voucher sold at the given
// time. Vouchers are valid for 12 months.
func VoucherExpiry(soldAt time.Time) time.Time {
	return soldAt.AddDate(1, 0, 0)
}
