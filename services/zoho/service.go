package zoho

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zagroda/models"

	"go.uber.org/zap"
)

// Service implements the CRM operations the booking flow needs on top of the
// record-level API. All methods are safe for concurrent use; the service keeps
// no state of its own.
type Service struct {
	API    API
	Logger *zap.Logger
}

// BookingDealResult identifies a freshly created booking deal.
type BookingDealResult struct {
	BookingRef string
	DealID     string
}

// CreateOrFindContact returns the Contacts record id for the given email,
// creating the contact when none exists. A failure here returns an empty id,
// not an error — a booking without a contact link is still a valid booking.
func (s *Service) CreateOrFindContact(ctx context.Context, email, firstName, lastName, phone string) string {
	var found []contactSearchResult
	err := s.API.SearchRecords(ctx, ModuleContacts, fmt.Sprintf("(Email:equals:%s)", email), &found)
	if err == nil && len(found) > 0 {
		return found[0].ID
	}
	if err != nil {
		s.Logger.Warn("contact search failed, creating fresh", zap.String("email", email), zap.Error(err))
	}

	record := ContactRecord{Email: email, FirstName: firstName, LastName: lastName, Phone: phone}
	if err := record.Validate(); err != nil {
		s.Logger.Warn("contact record invalid", zap.Error(err))
		return ""
	}
	details, err := s.API.CreateRecord(ctx, ModuleContacts, record)
	if err != nil {
		s.Logger.Warn("contact creation failed", zap.String("email", email), zap.Error(err))
		return ""
	}
	return details.ID
}

// splitGuestName separates "Anna Kowalski" into first/last. A single-word
// name doubles as the last name so the CRM's mandatory field is satisfied.
func splitGuestName(full string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	first := parts[0]
	last := strings.Join(parts[1:], " ")
	if last == "" {
		last = first
	}
	return first, last
}

// CreateBookingDeal writes the durable booking record and mints the booking
// reference the guest will quote everywhere. It must succeed before any
// payment artifact exists: no CRM record, no charge.
func (s *Service) CreateBookingDeal(ctx context.Context, req models.BookingIntentRequest) (BookingDealResult, error) {
	firstName, lastName := splitGuestName(req.GuestName)
	contactID := s.CreateOrFindContact(ctx, req.GuestEmail, firstName, lastName, req.GuestPhone)

	// Room link is best-effort: a booking that only carries the room name is
	// still reconcilable by a human.
	var roomID string
	var rooms []roomSearchResult
	if err := s.API.SearchRecords(ctx, ModuleRooms, fmt.Sprintf("(Beds24_Room_ID:equals:%s)", req.RoomID), &rooms); err != nil {
		s.Logger.Warn("room lookup failed, storing name only",
			zap.String("beds24RoomId", req.RoomID), zap.Error(err))
	} else if len(rooms) > 0 {
		roomID = rooms[0].ID
	}

	record := BookingRecord{
		CheckIn:          req.CheckIn,
		CheckOut:         req.CheckOut,
		BookingStatus:    BookingStatusDepositPaid,
		PaymentStatus:    "Deposit Paid",
		Channel:          "Website",
		PaymentMethod:    "Stripe",
		BookingNotes:     req.SpecialRequests,
		ArrivalTime:      "15:00",
		Email:            req.GuestEmail,
		NumberOfAdults:   req.Adults,
		NumberOfChildren: len(req.Children),
		GuestAges:        childrenSummary(req.Children),
		TotalPrice:       req.TotalAmount,
		Locale:           req.Locale,
		Nights:           req.Nights,
		NIPNumber:        req.NIPNumber,
		DepositAmount:    req.DepositAmount,
		BalanceAmount:    req.BalanceAmount,
		Room:             roomID,
		Guest:            contactID,
	}
	if req.VoucherCode != "" {
		record.VoucherCode = req.VoucherCode
		record.DiscountAmount = req.VoucherAmount
	}
	if err := record.Validate(); err != nil {
		return BookingDealResult{}, fmt.Errorf("booking record invalid: %w", err)
	}

	details, err := s.API.CreateRecord(ctx, ModuleBookings, record)
	if err != nil {
		return BookingDealResult{}, fmt.Errorf("failed to create booking deal: %w", err)
	}

	ref := details.Name
	if ref == "" {
		// Fall back to a formatted ref derived from the deal id.
		tail := details.ID
		if len(tail) > 6 {
			tail = tail[len(tail)-6:]
		}
		ref = "ZAP-" + tail
	}
	return BookingDealResult{BookingRef: ref, DealID: details.ID}, nil
}

func childrenSummary(children []models.Child) string {
	if len(children) == 0 {
		return "No children"
	}
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = fmt.Sprintf("Child %d: %dy", i+1, c.Age)
	}
	return strings.Join(parts, ", ")
}

// UpdateBookingStatus moves a booking deal to a new status.
func (s *Service) UpdateBookingStatus(ctx context.Context, dealID, status string) error {
	return s.API.UpdateRecord(ctx, ModuleBookings, dealID, BookingStatusUpdate{BookingStatus: status})
}

// FindVoucherByCode looks a voucher up for validation. The code must already
// be normalized to uppercase. A nil result means the code is unknown.
func (s *Service) FindVoucherByCode(ctx context.Context, code string) (*VoucherSearchResult, error) {
	var found []VoucherSearchResult
	if err := s.API.SearchRecords(ctx, ModuleVouchers, fmt.Sprintf("(Voucher_Code:equals:%s)", code), &found); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// RedeemVoucher marks a voucher consumed and links it to the booking deal
// that used it. Missing vouchers are logged and skipped, not failed: the
// booking has already been paid for.
func (s *Service) RedeemVoucher(ctx context.Context, code, dealID string) error {
	voucher, err := s.FindVoucherByCode(ctx, code)
	if err != nil {
		return err
	}
	if voucher == nil {
		s.Logger.Warn("voucher not found in CRM, skipping redemption", zap.String("code", code))
		return nil
	}
	return s.API.UpdateRecord(ctx, ModuleVouchers, voucher.ID, VoucherRedemption{
		Status:        "Redeemed",
		RedeemedDate:  time.Now().Format("2006-01-02"),
		BookingDealID: dealID,
	})
}

// SyncVoucherParams carries a sold voucher into the CRM after payment.
type SyncVoucherParams struct {
	Code          string
	Amount        float64 // major units
	Currency      string
	Status        string
	BuyerEmail    string
	BuyerName     string
	RecipientName string
	Phone         string
	ExpiresOn     time.Time
}

// SyncVoucher upserts a purchased voucher as Active.
func (s *Service) SyncVoucher(ctx context.Context, p SyncVoucherParams) error {
	firstName, lastName := splitGuestName(p.BuyerName)
	contactID := s.CreateOrFindContact(ctx, p.BuyerEmail, firstName, lastName, p.Phone)

	record := VoucherRecord{
		Email:          p.BuyerEmail,
		RecipientName:  p.RecipientName,
		ExpirationDate: p.ExpiresOn.Format("2006-01-02"),
		Status:         p.Status,
		Description:    fmt.Sprintf("Voucher Code: %s", p.Code),
		VoucherCode:    p.Code,
		Buyer:          contactID,
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("voucher record invalid: %w", err)
	}
	if _, err := s.API.CreateRecord(ctx, ModuleVouchers, record); err != nil {
		return fmt.Errorf("failed to sync voucher %s: %w", p.Code, err)
	}
	return nil
}

// FindAdoptionBySessionID locates a pending adoption by the Stripe checkout
// session that paid for it. A nil result with nil error means no record.
func (s *Service) FindAdoptionBySessionID(ctx context.Context, sessionID string) (*AdoptionSearchResult, error) {
	var found []AdoptionSearchResult
	if err := s.API.SearchRecords(ctx, ModuleAdoptions, fmt.Sprintf("(Stripe_Session_ID:equals:%s)", sessionID), &found); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// MarkAdoptionPaid flips an existing adoption record to Paid.
func (s *Service) MarkAdoptionPaid(ctx context.Context, adoptionID string) error {
	return s.API.UpdateRecord(ctx, ModuleAdoptions, adoptionID, map[string]string{"Status": "Paid"})
}

// SyncAdoptionParams carries a paid adoption into the CRM.
type SyncAdoptionParams struct {
	Email           string
	Alpaca          string
	Tier            string
	AmountCents     int64
	Status          string
	StripeSessionID string
}

// SyncAdoption creates an adoption record directly. Used by the webhook as a
// self-heal when the pending record a checkout normally leaves behind is
// missing.
func (s *Service) SyncAdoption(ctx context.Context, p SyncAdoptionParams) error {
	contactID := s.CreateOrFindContact(ctx, p.Email, "", "", "")

	record := AdoptionRecord{
		Name:            fmt.Sprintf("Adoption - %s", p.Alpaca),
		Email:           p.Email,
		Alpaca:          p.Alpaca,
		Tier:            p.Tier,
		AmountPaid:      float64(p.AmountCents) / 100,
		Status:          p.Status,
		StripeSessionID: p.StripeSessionID,
		DateStarted:     time.Now().Format("2006-01-02"),
		Client:          contactID,
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("adoption record invalid: %w", err)
	}
	if _, err := s.API.CreateRecord(ctx, ModuleAdoptions, record); err != nil {
		return fmt.Errorf("failed to sync adoption for %s: %w", p.Alpaca, err)
	}
	return nil
}
