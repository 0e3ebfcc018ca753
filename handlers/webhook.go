package handlers

import (
	"net/http"

	"zagroda/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StripeWebhook receives processor events. POST /api/stripe/webhook
//
// Signature verification is the gate: a bad signature is rejected with 400,
// but once an event verifies the response is always 200 so Stripe stops
// retrying. Fulfillment failures are logged and repaired by hand.
func StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if Verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}
	event, err := Verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		utils.GetLogger().Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	Fulfillment.Dispatch(c.Request.Context(), event)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
