package handlers

import (
	"errors"
	"net/http"

	"zagroda/models"
	"zagroda/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateBookingIntent creates the CRM booking deal and the Stripe deposit
// payment intent. POST /api/booking/intent
func CreateBookingIntent(c *gin.Context) {
	var req models.BookingIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := IntentService.CreateIntent(c.Request.Context(), req)
	if err != nil {
		var fe *booking.FlowError
		switch {
		case booking.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(err)})
		case errors.As(err, &fe) && fe.Code == booking.CodeUpstream:
			c.JSON(http.StatusBadGateway, gin.H{"error": fe.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking intent"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func errMessage(err error) string {
	var fe *booking.FlowError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
