package booking

import (
	"fmt"
	"regexp"
	"time"

	"zagroda/models"
	"zagroda/services/analytics"
)

// Step is a wizard state. The flow is strictly linear going forward; going
// back is allowed from every step except Dates and Confirmed.
type Step int

const (
	StepDates Step = iota
	StepRoom
	StepGuests
	StepExtras
	StepSummary
	StepPayment
	StepConfirmed
)

var stepNames = [...]string{"dates", "room", "guests", "extras", "summary", "payment", "confirmed"}

func (s Step) String() string {
	if s < StepDates || s > StepConfirmed {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// Guest-input syntax rules, identical to the ones the site applies inline.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{7,20}$`)
)

const (
	minStayNights = 2
	maxChildren   = 4
	maxChildAge   = 15
	// Past this hour the earliest check-in moves one day further out,
	// giving the team lead time to prepare rooms.
	checkInCutoffHour = 13
)

// Wizard is the full serializable wizard state: current step plus the
// evolving draft. It round-trips through the session store as JSON.
type Wizard struct {
	Step      Step                `json:"step"`
	Draft     models.BookingDraft `json:"draft"`
	PaymentID string              `json:"paymentId,omitempty"`
}

// NewWizard starts an empty wizard at the Dates step.
func NewWizard(locale string) *Wizard {
	return &Wizard{
		Step: StepDates,
		Draft: models.BookingDraft{
			Adults:   2,
			Children: []models.Child{},
			Locale:   locale,
		},
	}
}

// Engine applies guarded transitions to wizards. It holds the injected
// clock and the analytics seam; the wizard itself stays pure data.
type Engine struct {
	Emitter analytics.Emitter
	Now     func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) emit(event string, params map[string]any) {
	if e.Emitter != nil {
		e.Emitter.Emit(event, params)
	}
}

// MinCheckIn returns the earliest selectable check-in date: tomorrow, or the
// day after when the current time is at or past the cutoff hour.
func (e *Engine) MinCheckIn() time.Time {
	now := e.now()
	lead := 1
	if now.Hour() >= checkInCutoffHour {
		lead = 2
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, lead)
}

func nightsBetween(checkIn, checkOut string) (int, error) {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0, NewValidationError("invalid check-in date")
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0, NewValidationError("invalid check-out date")
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// SetDates updates the stay dates. A check-out on or before check-in is
// auto-cleared rather than stored. If a room was already selected, any date
// change invalidates it: the room and all computed amounts are cleared and
// the wizard drops back to the Room step so availability is fetched again.
func (e *Engine) SetDates(w *Wizard, checkIn, checkOut string) error {
	if w.Step >= StepPayment {
		return NewValidationError("dates are locked once payment has started")
	}
	if checkIn == "" {
		return NewValidationError("check-in date is required")
	}
	if _, err := time.Parse("2006-01-02", checkIn); err != nil {
		return NewValidationError("invalid check-in date")
	}

	if checkOut != "" && checkOut <= checkIn {
		checkOut = ""
	}

	w.Draft.CheckIn = checkIn
	w.Draft.CheckOut = checkOut
	w.Draft.Nights = 0
	if checkOut != "" {
		nights, err := nightsBetween(checkIn, checkOut)
		if err != nil {
			return err
		}
		w.Draft.Nights = nights
	}

	if w.Draft.SelectedRoom != nil {
		e.invalidateRoom(w)
	}
	return nil
}

// invalidateRoom clears the selected room and everything derived from it.
func (e *Engine) invalidateRoom(w *Wizard) {
	w.Draft.SelectedRoom = nil
	w.Draft.TotalAmount = 0
	w.Draft.DepositAmount = 0
	w.Draft.BalanceAmount = 0
	e.clearVoucherFields(w)
	if w.Step > StepRoom {
		w.Step = StepRoom
	}
}

// SelectRoom records the guest's room choice and computes the baseline
// 10%-deposit split. Rooms without a resolved positive price cannot be
// selected; price-on-request inventory never reaches payment.
func (e *Engine) SelectRoom(w *Wizard, room models.SelectedRoom) error {
	if w.Step != StepRoom {
		return NewValidationError("room selection is only available on the room step")
	}
	if room.TotalPrice <= 0 {
		return NewValidationError("room price unavailable for these dates")
	}
	if room.MinNights > 0 && w.Draft.Nights < room.MinNights {
		return NewValidationError(fmt.Sprintf("this room requires a minimum stay of %d nights", room.MinNights))
	}

	w.Draft.SelectedRoom = &room
	w.Draft.TotalAmount = room.TotalPrice
	// A previously applied voucher belonged to the old price; drop it.
	e.clearVoucherFields(w)
	quote := Quote(room.TotalPrice, nil)
	w.Draft.DepositAmount = quote.DepositAmount
	w.Draft.BalanceAmount = quote.BalanceAmount

	e.emit(analytics.EventSelectRoom, map[string]any{
		"room_id":   room.ID,
		"room_name": room.Name,
		"price":     room.TotalPrice,
		"nights":    room.Nights,
	})
	return nil
}

// SetGuests stores the guest party details. Syntax rules are enforced by the
// Guests step's exit guard so the caller can save partial input.
func (e *Engine) SetGuests(w *Wizard, name, email, phone string, adults int, children []models.Child) error {
	if w.Step >= StepPayment {
		return NewValidationError("guest details are locked once payment has started")
	}
	if len(children) > maxChildren {
		return NewValidationError(fmt.Sprintf("at most %d children per room", maxChildren))
	}
	w.Draft.GuestName = name
	w.Draft.GuestEmail = email
	w.Draft.GuestPhone = phone
	w.Draft.Adults = adults
	if children == nil {
		children = []models.Child{}
	}
	w.Draft.Children = children
	return nil
}

// SetExtras stores the optional free-text fields.
func (e *Engine) SetExtras(w *Wizard, specialRequests, nipNumber string) {
	w.Draft.SpecialRequests = specialRequests
	w.Draft.NIPNumber = nipNumber
}

// ApplyVoucher folds a validated voucher into the draft and recomputes the
// deposit/balance split. An invalid validation clears any previous voucher
// so stale totals never linger on screen.
func (e *Engine) ApplyVoucher(w *Wizard, v models.VoucherValidation) error {
	if w.Draft.SelectedRoom == nil || w.Draft.TotalAmount <= 0 {
		return NewValidationError("select a room before applying a voucher")
	}
	if !v.Valid {
		e.clearVoucherFields(w)
		e.recompute(w)
		return nil
	}

	w.Draft.VoucherCode = v.Code
	w.Draft.VoucherValid = true
	w.Draft.VoucherDiscountType = v.DiscountType
	quote := Quote(w.Draft.TotalAmount, v.Discount())
	w.Draft.VoucherDiscount = quote.DiscountAmount
	w.Draft.DepositAmount = quote.DepositAmount
	w.Draft.BalanceAmount = quote.BalanceAmount

	e.emit(analytics.EventVoucherApplied, map[string]any{
		"code":     v.Code,
		"discount": quote.DiscountAmount,
	})
	return nil
}

// ClearVoucher removes an applied voucher and restores the baseline split.
func (e *Engine) ClearVoucher(w *Wizard) {
	e.clearVoucherFields(w)
	e.recompute(w)
}

func (e *Engine) clearVoucherFields(w *Wizard) {
	w.Draft.VoucherCode = ""
	w.Draft.VoucherValid = false
	w.Draft.VoucherDiscountType = ""
	w.Draft.VoucherDiscount = 0
}

func (e *Engine) recompute(w *Wizard) {
	if w.Draft.TotalAmount <= 0 {
		w.Draft.DepositAmount = 0
		w.Draft.BalanceAmount = 0
		return
	}
	var discount *models.Discount
	if w.Draft.VoucherValid {
		discount = &models.Discount{Type: w.Draft.VoucherDiscountType, Value: w.Draft.VoucherDiscount}
		if w.Draft.VoucherDiscountType == models.DiscountPercent {
			// VoucherDiscount already holds the computed amount; reapply as fixed.
			discount.Type = models.DiscountFixed
		}
	}
	quote := Quote(w.Draft.TotalAmount, discount)
	w.Draft.DepositAmount = quote.DepositAmount
	w.Draft.BalanceAmount = quote.BalanceAmount
}

// Next advances one step after checking the current step's exit guard.
// Forward transitions emit funnel analytics, best-effort.
func (e *Engine) Next(w *Wizard) error {
	switch w.Step {
	case StepDates:
		if err := e.guardDates(w); err != nil {
			return err
		}
		e.emit(analytics.EventBeginCheckout, map[string]any{
			"check_in":  w.Draft.CheckIn,
			"check_out": w.Draft.CheckOut,
			"nights":    w.Draft.Nights,
		})
	case StepRoom:
		if err := e.guardRoom(w); err != nil {
			return err
		}
		e.emit(analytics.EventAddToCart, map[string]any{
			"room_id":        w.Draft.SelectedRoom.ID,
			"room_name":      w.Draft.SelectedRoom.Name,
			"total_price":    w.Draft.TotalAmount,
			"deposit_amount": w.Draft.DepositAmount,
			"nights":         w.Draft.Nights,
		})
	case StepGuests:
		if err := e.guardGuests(w); err != nil {
			return err
		}
	case StepExtras:
		// No hard guard; voucher and special requests are optional.
	case StepSummary:
		if err := ValidateDraft(w.Draft); err != nil {
			return err
		}
		e.emit(analytics.EventAddPaymentInfo, map[string]any{
			"room_id":        w.Draft.SelectedRoom.ID,
			"room_name":      w.Draft.SelectedRoom.Name,
			"total_price":    w.Draft.TotalAmount,
			"deposit_amount": w.Draft.DepositAmount,
		})
	case StepPayment:
		return NewValidationError("payment must be confirmed by the processor, not skipped")
	case StepConfirmed:
		return NewValidationError("booking already confirmed")
	}
	w.Step++
	return nil
}

// Back steps backward. Dates has nothing before it and a confirmed booking
// is final.
func (e *Engine) Back(w *Wizard) error {
	if w.Step == StepDates || w.Step == StepConfirmed {
		return NewValidationError(fmt.Sprintf("cannot go back from the %s step", w.Step))
	}
	w.Step--
	return nil
}

// RecordPaymentSuccess moves Payment → Confirmed. Only a processor-confirmed
// charge, identified by its payment intent id, can drive this transition.
func (e *Engine) RecordPaymentSuccess(w *Wizard, paymentIntentID string) error {
	if w.Step != StepPayment {
		return NewValidationError("no payment in progress")
	}
	if paymentIntentID == "" {
		return NewValidationError("missing payment confirmation reference")
	}
	w.PaymentID = paymentIntentID
	w.Step = StepConfirmed

	params := map[string]any{
		"payment_id":     paymentIntentID,
		"total_price":    w.Draft.TotalAmount,
		"deposit_amount": w.Draft.DepositAmount,
		"nights":         w.Draft.Nights,
		"check_in":       w.Draft.CheckIn,
		"check_out":      w.Draft.CheckOut,
	}
	if w.Draft.SelectedRoom != nil {
		params["room_id"] = w.Draft.SelectedRoom.ID
		params["room_name"] = w.Draft.SelectedRoom.Name
	}
	e.emit(analytics.EventBookingConfirmed, params)
	return nil
}

// RecordPaymentFailure reports a declined or abandoned charge. The wizard
// stays on the Payment step with the guest's data intact.
func (e *Engine) RecordPaymentFailure(w *Wizard, reason string) {
	params := map[string]any{"error": reason}
	if w.Draft.SelectedRoom != nil {
		params["room_name"] = w.Draft.SelectedRoom.Name
	}
	e.emit(analytics.EventPaymentFailed, params)
}

func (e *Engine) guardDates(w *Wizard) error {
	if w.Draft.CheckIn == "" || w.Draft.CheckOut == "" {
		return NewValidationError("both check-in and check-out dates are required")
	}
	if w.Draft.Nights < minStayNights {
		return NewValidationError(fmt.Sprintf("minimum stay is %d nights", minStayNights))
	}
	in, err := time.Parse("2006-01-02", w.Draft.CheckIn)
	if err != nil {
		return NewValidationError("invalid check-in date")
	}
	if in.Before(e.MinCheckIn()) {
		return NewValidationError("check-in date is too soon")
	}
	return nil
}

func (e *Engine) guardRoom(w *Wizard) error {
	if w.Draft.SelectedRoom == nil {
		return NewValidationError("select a room to continue")
	}
	if w.Draft.SelectedRoom.TotalPrice <= 0 {
		return NewValidationError("room price unavailable for these dates")
	}
	return nil
}

func (e *Engine) guardGuests(w *Wizard) error {
	if w.Draft.GuestName == "" {
		return NewValidationError("guest name is required")
	}
	if !emailPattern.MatchString(w.Draft.GuestEmail) {
		return NewValidationError("invalid email address")
	}
	if !phonePattern.MatchString(w.Draft.GuestPhone) {
		return NewValidationError("invalid phone number")
	}
	if w.Draft.Adults < 1 {
		return NewValidationError("at least one adult is required")
	}
	for _, c := range w.Draft.Children {
		if c.Age < 0 || c.Age > maxChildAge {
			return NewValidationError(fmt.Sprintf("child ages must be between 0 and %d", maxChildAge))
		}
	}
	return nil
}

// ValidateDraft checks that a draft is complete enough to create a booking
// intent. Shared by the Summary exit guard and the intent endpoint.
func ValidateDraft(d models.BookingDraft) error {
	if d.SelectedRoom == nil || d.SelectedRoom.ID == "" ||
		d.CheckIn == "" || d.CheckOut == "" ||
		d.GuestName == "" || d.GuestEmail == "" {
		return NewValidationError("Missing required fields")
	}
	if d.DepositAmount < 1 {
		return NewValidationError("Deposit amount must be positive")
	}
	return nil
}
