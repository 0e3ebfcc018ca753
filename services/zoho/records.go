package zoho

import "fmt"

// CRM module API names. These are custom modules in the farm's Zoho account;
// if an account uses the auto-generated names (CustomModule5 etc.) only these
// constants change.
const (
	ModuleBookings  = "Bookings"
	ModuleContacts  = "Contacts"
	ModuleRooms     = "Rooms"
	ModuleVouchers  = "Vouchers"
	ModuleAdoptions = "Adoptions"
)

// Booking status values on the Bookings module. This service only ever writes
// DEPOSIT_PAID (at deal creation) and CANCELLED (via the cancel endpoint);
// the later transitions belong to the balance-collection process.
const (
	BookingStatusDepositPaid    = "DEPOSIT_PAID"
	BookingStatusBalancePending = "BALANCE_PENDING"
	BookingStatusFullyPaid      = "FULLY_PAID"
	BookingStatusPaymentFailed  = "PAYMENT_FAILED"
	BookingStatusCancelled      = "CANCELLED"
)

// ContactRecord is a person in the Contacts module.
type ContactRecord struct {
	Email     string `json:"Email"`
	FirstName string `json:"First_Name,omitempty"`
	LastName  string `json:"Last_Name,omitempty"`
	Phone     string `json:"Phone,omitempty"`
}

func (r ContactRecord) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("contact record requires an email")
	}
	return nil
}

// BookingRecord is a reservation in the Bookings module. It is the durable
// representation of a booking attempt; no local database mirrors it.
type BookingRecord struct {
	CheckIn          string  `json:"Check_In"`
	CheckOut         string  `json:"Check_Out"`
	BookingStatus    string  `json:"Booking_status"`
	PaymentStatus    string  `json:"Payment_status,omitempty"`
	Channel          string  `json:"Channel,omitempty"`
	PaymentMethod    string  `json:"Payment_Method,omitempty"`
	BookingNotes     string  `json:"Booking_Notes,omitempty"`
	ArrivalTime      string  `json:"Arrival_time,omitempty"`
	Email            string  `json:"Email"`
	NumberOfAdults   int     `json:"Number_of_Adults"`
	NumberOfChildren int     `json:"Number_of_Children"`
	GuestAges        string  `json:"Guest_Ages,omitempty"`
	TotalPrice       float64 `json:"Total_Price"`
	Locale           string  `json:"Locale,omitempty"`
	Nights           int     `json:"Nights"`
	NIPNumber        string  `json:"NIP_Number,omitempty"`
	DepositAmount    float64 `json:"Deposit_Amount"`
	BalanceAmount    float64 `json:"Balance_Amount"`
	Room             string  `json:"Room,omitempty"`  // Rooms record id
	Guest            string  `json:"Guest,omitempty"` // Contacts record id
	VoucherCode      string  `json:"Voucher_code,omitempty"`
	DiscountAmount   float64 `json:"Discount_amount,omitempty"`
	StripeDepositID  string  `json:"Stripe_Deposit_ID,omitempty"`
	StripeCustomerID string  `json:"Stripe_Customer_ID,omitempty"`
}

func (r BookingRecord) Validate() error {
	switch {
	case r.CheckIn == "" || r.CheckOut == "":
		return fmt.Errorf("booking record requires check-in and check-out dates")
	case r.Email == "":
		return fmt.Errorf("booking record requires a guest email")
	case r.BookingStatus == "":
		return fmt.Errorf("booking record requires a status")
	}
	return nil
}

// BookingStatusUpdate carries a status transition for an existing booking.
type BookingStatusUpdate struct {
	BookingStatus string `json:"Booking_status"`
	PaymentStatus string `json:"Payment_status,omitempty"`
	BedsBookingID string `json:"Beds24_Booking_ID,omitempty"`
}

// VoucherRecord is a gift voucher in the Vouchers module.
type VoucherRecord struct {
	Email          string  `json:"Email"`
	RecipientName  string  `json:"Recipient_Name"`
	ExpirationDate string  `json:"Expiration_Date"` // YYYY-MM-DD
	Status         string  `json:"Status"`
	Description    string  `json:"Description,omitempty"`
	VoucherCode    string  `json:"Voucher_Code,omitempty"`
	DiscountType   string  `json:"Discount_Type,omitempty"`
	DiscountValue  float64 `json:"Discount_Value,omitempty"`
	Buyer          string  `json:"Buyer,omitempty"` // Contacts record id
}

func (r VoucherRecord) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("voucher record requires a buyer email")
	}
	if r.Status == "" {
		return fmt.Errorf("voucher record requires a status")
	}
	return nil
}

// VoucherSearchResult is what a Vouchers search returns for validation.
type VoucherSearchResult struct {
	ID             string  `json:"id"`
	VoucherCode    string  `json:"Voucher_Code"`
	Status         string  `json:"Status"`
	ExpirationDate string  `json:"Expiration_Date"`
	DiscountType   string  `json:"Discount_Type"`
	DiscountValue  float64 `json:"Discount_Value"`
	Description    string  `json:"Description"`
}

// VoucherRedemption marks a voucher consumed by a booking.
type VoucherRedemption struct {
	Status        string `json:"Status"`
	RedeemedDate  string `json:"Redeemed_Date"`
	BookingDealID string `json:"Booking_Deal_ID"`
}

// AdoptionRecord is an alpaca adoption in the Adoptions module.
type AdoptionRecord struct {
	Name            string  `json:"Name"`
	Email           string  `json:"Email"`
	Alpaca          string  `json:"Alpaca"`
	Tier            string  `json:"Tier,omitempty"`
	AmountPaid      float64 `json:"Amount_Paid"`
	Status          string  `json:"Status"`
	StripeSessionID string  `json:"Stripe_Session_ID"`
	DateStarted     string  `json:"Date_Started"` // YYYY-MM-DD
	Client          string  `json:"Client,omitempty"`
}

func (r AdoptionRecord) Validate() error {
	if r.Alpaca == "" {
		return fmt.Errorf("adoption record requires an alpaca name")
	}
	if r.StripeSessionID == "" {
		return fmt.Errorf("adoption record requires the Stripe session id")
	}
	return nil
}

// AdoptionSearchResult is what an Adoptions search returns.
type AdoptionSearchResult struct {
	ID     string `json:"id"`
	Status string `json:"Status"`
	Alpaca string `json:"Alpaca"`
}

// contactSearchResult and roomSearchResult stay unexported; only ids are read.
type contactSearchResult struct {
	ID string `json:"id"`
}

type roomSearchResult struct {
	ID string `json:"id"`
}
