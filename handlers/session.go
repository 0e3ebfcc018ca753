package handlers

import (
	"errors"
	"net/http"

	"zagroda/models"
	"zagroda/services/booking"

	"github.com/gin-gonic/gin"
)

// StartWizardSession opens a fresh booking wizard.
// POST /api/booking/session {"locale": "pl"}
func StartWizardSession(c *gin.Context) {
	var input struct {
		Locale string `json:"locale"`
	}
	// Body is optional; an empty one starts a default-locale wizard.
	_ = c.ShouldBindJSON(&input)
	if input.Locale == "" {
		input.Locale = "pl"
	}

	wizard := booking.NewWizard(input.Locale)
	id, err := Sessions.Create(c.Request.Context(), wizard)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": id, "wizard": wizard})
}

// GetWizardSession returns the current wizard state.
// GET /api/booking/session/:sessionId
func GetWizardSession(c *gin.Context) {
	wizard, err := Sessions.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": wizard})
}

// wizardEvent is one guest action against the wizard.
type wizardEvent struct {
	Action string `json:"action"`

	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`

	Room *models.SelectedRoom `json:"room,omitempty"`

	GuestName  string         `json:"guestName,omitempty"`
	GuestEmail string         `json:"guestEmail,omitempty"`
	GuestPhone string         `json:"guestPhone,omitempty"`
	Adults     int            `json:"adults,omitempty"`
	Children   []models.Child `json:"children,omitempty"`

	SpecialRequests string `json:"specialRequests,omitempty"`
	NIPNumber       string `json:"nipNumber,omitempty"`

	VoucherCode string `json:"voucherCode,omitempty"`

	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// WizardSessionEvent applies one action to the wizard and saves it back.
// POST /api/booking/session/:sessionId/event
func WizardSessionEvent(c *gin.Context) {
	sessionID := c.Param("sessionId")
	wizard, err := Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking session", "details": err.Error()})
		return
	}

	var event wizardEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event body", "details": err.Error()})
		return
	}

	var actionErr error
	var voucherResult *models.VoucherValidation
	switch event.Action {
	case "setDates":
		actionErr = Engine.SetDates(wizard, event.CheckIn, event.CheckOut)
	case "selectRoom":
		if event.Room == nil {
			actionErr = errors.New("room is required")
		} else {
			actionErr = Engine.SelectRoom(wizard, *event.Room)
		}
	case "setGuests":
		actionErr = Engine.SetGuests(wizard, event.GuestName, event.GuestEmail, event.GuestPhone, event.Adults, event.Children)
	case "setExtras":
		Engine.SetExtras(wizard, event.SpecialRequests, event.NIPNumber)
	case "applyVoucher":
		validation := Validator.Validate(c.Request.Context(), event.VoucherCode)
		voucherResult = &validation
		actionErr = Engine.ApplyVoucher(wizard, validation)
	case "clearVoucher":
		Engine.ClearVoucher(wizard)
	case "next":
		actionErr = Engine.Next(wizard)
	case "back":
		actionErr = Engine.Back(wizard)
	case "paymentSucceeded":
		actionErr = Engine.RecordPaymentSuccess(wizard, event.PaymentIntentID)
	case "paymentFailed":
		Engine.RecordPaymentFailure(wizard, event.Reason)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}

	if actionErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(actionErr), "wizard": wizard})
		return
	}
	if err := Sessions.Save(c.Request.Context(), sessionID, wizard); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save booking session", "details": err.Error()})
		return
	}

	resp := gin.H{"wizard": wizard}
	if voucherResult != nil {
		resp["voucher"] = voucherResult
	}
	c.JSON(http.StatusOK, resp)
}
