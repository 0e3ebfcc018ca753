package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVoucherCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateVoucherCode()

		require.True(t, strings.HasPrefix(code, "ALPACA-"))
		suffix := strings.TrimPrefix(code, "ALPACA-")
		require.Len(t, suffix, 6)
		// Ambiguous characters are excluded from the alphabet.
		assert.NotContains(t, suffix, "0")
		assert.NotContains(t, suffix, "O")
		assert.NotContains(t, suffix, "I")
		assert.NotContains(t, suffix, "1")

		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be effectively unique")
}

func TestVoucherExpiry(t *testing.T) {
	soldAt := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 9, 1, 14, 30, 0, 0, time.UTC), VoucherExpiry(soldAt))
}
