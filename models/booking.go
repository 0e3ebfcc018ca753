package models

// Child carries the age of a child travelling with the party. Ages drive both
// room capacity rules and the per-child pricing the farm applies on site.
type Child struct {
	Age int `json:"age"`
}

// BookingDraft is the evolving reservation a guest builds up in the wizard.
// It lives in the session store for the duration of the flow and is discarded
// once the booking completes or is abandoned; durability belongs to the CRM
// and the property manager.
type BookingDraft struct {
	CheckIn  string `json:"checkIn"`  // YYYY-MM-DD
	CheckOut string `json:"checkOut"` // YYYY-MM-DD
	Nights   int    `json:"nights"`

	SelectedRoom *SelectedRoom `json:"selectedRoom,omitempty"`

	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone string  `json:"guestPhone"`
	Adults     int     `json:"adults"`
	Children   []Child `json:"children"`

	SpecialRequests string `json:"specialRequests,omitempty"`
	NIPNumber       string `json:"nipNumber,omitempty"`

	VoucherCode         string       `json:"voucherCode,omitempty"`
	VoucherValid        bool         `json:"voucherValid"`
	VoucherDiscountType DiscountType `json:"voucherDiscountType,omitempty"`
	VoucherDiscount     float64      `json:"voucherDiscount"`

	DepositAmount float64 `json:"depositAmount"`
	BalanceAmount float64 `json:"balanceAmount"`
	TotalAmount   float64 `json:"totalAmount"`

	Locale string `json:"locale"`
}

// IntentRequest flattens the draft into the payload the booking intent
// endpoint accepts.
func (d BookingDraft) IntentRequest() BookingIntentRequest {
	req := BookingIntentRequest{
		CheckIn:         d.CheckIn,
		CheckOut:        d.CheckOut,
		Nights:          d.Nights,
		DepositAmount:   d.DepositAmount,
		BalanceAmount:   d.BalanceAmount,
		TotalAmount:     d.TotalAmount,
		Adults:          d.Adults,
		Children:        d.Children,
		GuestName:       d.GuestName,
		GuestEmail:      d.GuestEmail,
		GuestPhone:      d.GuestPhone,
		SpecialRequests: d.SpecialRequests,
		NIPNumber:       d.NIPNumber,
		Locale:          d.Locale,
	}
	if d.SelectedRoom != nil {
		req.RoomID = d.SelectedRoom.ID
		req.RoomName = d.SelectedRoom.Name
		req.Currency = d.SelectedRoom.Currency
	}
	if d.VoucherValid {
		req.VoucherCode = d.VoucherCode
		req.VoucherAmount = d.VoucherDiscount
	}
	return req
}

// BookingIntentRequest is the body of POST /api/booking/intent.
type BookingIntentRequest struct {
	RoomID          string  `json:"roomId"`
	RoomName        string  `json:"roomName"`
	CheckIn         string  `json:"checkIn"`
	CheckOut        string  `json:"checkOut"`
	Nights          int     `json:"nights"`
	DepositAmount   float64 `json:"depositAmount"`
	BalanceAmount   float64 `json:"balanceAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	Adults          int     `json:"adults"`
	Children        []Child `json:"children"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      string  `json:"guestPhone"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	NIPNumber       string  `json:"nipNumber,omitempty"`
	VoucherCode     string  `json:"voucherCode,omitempty"`
	VoucherAmount   float64 `json:"voucherAmount,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	Locale          string  `json:"locale"`
}

// BookingIntentResult is what the guest-facing client needs to take payment:
// the Stripe client secret and the human-readable booking reference minted by
// the CRM, shown to the guest before they ever enter a card.
type BookingIntentResult struct {
	ClientSecret string `json:"clientSecret"`
	BookingRef   string `json:"bookingRef"`
}
