package models

// PMSBookingPayload mirrors a paid booking into the property manager, which in
// turn blocks the OTA calendar. The bookingRef issued by the CRM is the join
// key shared across all three systems.
type PMSBookingPayload struct {
	BookingRef            string  `json:"bookingRef"`
	CRMDealID             string  `json:"zohoBookingDealId"`
	RoomID                string  `json:"roomId"`
	CheckIn               string  `json:"checkIn"`
	CheckOut              string  `json:"checkOut"`
	GuestName             string  `json:"guestName"`
	GuestEmail            string  `json:"guestEmail"`
	GuestPhone            string  `json:"guestPhone"`
	Adults                int     `json:"adults"`
	Children              []Child `json:"children"`
	SpecialRequests       string  `json:"specialRequests,omitempty"`
	NIPNumber             string  `json:"nipNumber,omitempty"`
	VoucherCode           string  `json:"voucherCode,omitempty"`
	VoucherAmount         float64 `json:"voucherAmount,omitempty"`
	DepositAmount         float64 `json:"depositAmount"`
	BalanceAmount         float64 `json:"balanceAmount"`
	StripeDepositID       string  `json:"stripeDepositId"`
	StripeCustomerID      string  `json:"stripeCustomerId"`
	StripePaymentMethodID string  `json:"stripePaymentMethodId"`
	Locale                string  `json:"locale"`
	Source                string  `json:"source"`
}

// PMSBookingResult is the property manager's acknowledgement.
// BedsBookingID may be empty when the upstream calendar was temporarily
// unreachable; that is non-fatal and reconciled manually.
type PMSBookingResult struct {
	BookingRef     string `json:"bookingRef"`
	BedsBookingID  string `json:"beds24BookingId"`
	Status         string `json:"status"`
	Nights         int    `json:"nights"`
	BalanceDueDate string `json:"balanceDueDate"` // checkIn - 3 days
}
