package handlers

import (
	"net/http"
	"strings"

	"zagroda/config"
	"zagroda/services/zoho"
	"zagroda/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CancelBooking releases the room calendar and marks the CRM deal cancelled.
// POST /api/booking/cancel, guarded by a shared bearer secret because it is
// called by the office, not by guests.
func CancelBooking(c *gin.Context) {
	secret := config.AppConfig.CancelSecret
	auth := c.GetHeader("Authorization")
	if secret == "" || auth != "Bearer "+secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input struct {
		BookingRef string `json:"bookingRef"`
		DealID     string `json:"dealId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.BookingRef) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingRef is required"})
		return
	}

	ctx := c.Request.Context()
	if err := PMS.CancelBooking(ctx, input.BookingRef); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to cancel in property manager", "details": err.Error()})
		return
	}

	if input.DealID != "" {
		if err := CRM.UpdateBookingStatus(ctx, input.DealID, zoho.BookingStatusCancelled); err != nil {
			// Calendar is already released; report partial success.
			utils.GetLogger().Error("CRM cancel update failed",
				zap.String("bookingRef", input.BookingRef), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"cancelled": true, "crmUpdated": false})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true, "crmUpdated": input.DealID != ""})
}
