package handlers

import (
	"errors"
	"net/http"
	"strings"

	"zagroda/config"
	"zagroda/models"
	"zagroda/services/booking"

	"github.com/gin-gonic/gin"
)

// PurchaseVoucher mints a gift voucher code and opens a hosted checkout
// session for it. POST /api/vouchers/purchase
func PurchaseVoucher(c *gin.Context) {
	var req models.VoucherPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := Purchases.PurchaseVoucher(c.Request.Context(), requestOrigin(c), req)
	if err != nil {
		purchaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdoptionCheckout opens a hosted checkout session for an annual alpaca
// adoption package. POST /api/checkout
func AdoptionCheckout(c *gin.Context) {
	var req models.AdoptionCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := Purchases.AdoptionCheckout(c.Request.Context(), requestOrigin(c), req)
	if err != nil {
		purchaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// requestOrigin resolves the storefront base URL for redirect links. The
// Origin header points back to whichever site sent the guest; without it the
// first allowed origin serves as the default.
func requestOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	return strings.Split(config.AppConfig.AllowedOrigins, ",")[0]
}

func purchaseError(c *gin.Context, err error) {
	var fe *booking.FlowError
	switch {
	case booking.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(err)})
	case errors.As(err, &fe) && fe.Code == booking.CodeUpstream:
		c.JSON(http.StatusBadGateway, gin.H{"error": fe.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open checkout session"})
	}
}
