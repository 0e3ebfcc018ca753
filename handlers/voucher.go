package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateVoucher checks a gift/promo code against the CRM.
// POST /api/booking/voucher/validate {"code": "ALPACA-X7K2P9"}
//
// Only a missing code is a client error. An unknown, used or expired code is
// a successful validation with valid:false and a guest-facing message.
func ValidateVoucher(c *gin.Context) {
	var input struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voucher code is required"})
		return
	}

	result := Validator.Validate(c.Request.Context(), input.Code)
	c.JSON(http.StatusOK, result)
}
