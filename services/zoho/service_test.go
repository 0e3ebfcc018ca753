package zoho

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"zagroda/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI scripts responses per module.
type fakeAPI struct {
	createDetails map[string]RecordDetails
	createErr     map[string]error
	created       []struct {
		Module string
		Record any
	}
	updated []struct {
		Module, ID string
		Record     any
	}
	searchResults map[string]string // criteria -> raw JSON array
	searchErr     error
}

func (f *fakeAPI) CreateRecord(ctx context.Context, module string, record any) (RecordDetails, error) {
	f.created = append(f.created, struct {
		Module string
		Record any
	}{module, record})
	if err := f.createErr[module]; err != nil {
		return RecordDetails{}, err
	}
	return f.createDetails[module], nil
}

func (f *fakeAPI) UpdateRecord(ctx context.Context, module, id string, record any) error {
	f.updated = append(f.updated, struct {
		Module, ID string
		Record     any
	}{module, id, record})
	return nil
}

func (f *fakeAPI) SearchRecords(ctx context.Context, module, criteria string, out any) error {
	if f.searchErr != nil {
		return f.searchErr
	}
	raw, ok := f.searchResults[criteria]
	if !ok {
		return nil
	}
	return decodeSearch(raw, out)
}

func decodeSearch(raw string, out any) error {
	switch v := out.(type) {
	case *[]contactSearchResult:
		*v = []contactSearchResult{{ID: raw}}
	case *[]roomSearchResult:
		*v = []roomSearchResult{{ID: raw}}
	case *[]VoucherSearchResult:
		*v = []VoucherSearchResult{{ID: raw, Status: "Active"}}
	case *[]AdoptionSearchResult:
		*v = []AdoptionSearchResult{{ID: raw, Status: "Pending"}}
	default:
		return fmt.Errorf("unexpected search target %T", out)
	}
	return nil
}

func intentRequest() models.BookingIntentRequest {
	return models.BookingIntentRequest{
		RoomID: "room-garden", RoomName: "Garden Room",
		CheckIn: "2026-09-10", CheckOut: "2026-09-13", Nights: 3,
		DepositAmount: 99, BalanceAmount: 891, TotalAmount: 990,
		Adults: 2, Children: []models.Child{{Age: 5}, {Age: 8}},
		GuestName: "Anna Kowalska", GuestEmail: "anna@example.com", GuestPhone: "+48 600 100 200",
		Locale: "pl",
	}
}

func TestCreateBookingDealUsesRecordName(t *testing.T) {
	api := &fakeAPI{
		createDetails: map[string]RecordDetails{
			ModuleContacts: {ID: "contact-1"},
			ModuleBookings: {ID: "deal-1", Name: "ZAP-000042"},
		},
	}
	svc := &Service{API: api, Logger: zap.NewNop()}

	result, err := svc.CreateBookingDeal(context.Background(), intentRequest())

	require.NoError(t, err)
	assert.Equal(t, "ZAP-000042", result.BookingRef)
	assert.Equal(t, "deal-1", result.DealID)
}

func TestCreateBookingDealRefFallback(t *testing.T) {
	api := &fakeAPI{
		createDetails: map[string]RecordDetails{
			ModuleContacts: {ID: "contact-1"},
			ModuleBookings: {ID: "4876543210987654"},
		},
	}
	svc := &Service{API: api, Logger: zap.NewNop()}

	result, err := svc.CreateBookingDeal(context.Background(), intentRequest())

	require.NoError(t, err)
	assert.Equal(t, "ZAP-987654", result.BookingRef)
}

func TestCreateBookingDealSurvivesContactFailure(t *testing.T) {
	api := &fakeAPI{
		createDetails: map[string]RecordDetails{
			ModuleBookings: {ID: "deal-1", Name: "ZAP-000043"},
		},
		createErr: map[string]error{ModuleContacts: errors.New("contacts module down")},
	}
	svc := &Service{API: api, Logger: zap.NewNop()}

	result, err := svc.CreateBookingDeal(context.Background(), intentRequest())

	require.NoError(t, err, "a booking without a contact link is still a booking")
	assert.Equal(t, "ZAP-000043", result.BookingRef)
}

func TestCreateBookingDealFailsWhenBookingCreateFails(t *testing.T) {
	api := &fakeAPI{
		createDetails: map[string]RecordDetails{ModuleContacts: {ID: "contact-1"}},
		createErr:     map[string]error{ModuleBookings: errors.New("bookings module down")},
	}
	svc := &Service{API: api, Logger: zap.NewNop()}

	_, err := svc.CreateBookingDeal(context.Background(), intentRequest())

	require.Error(t, err)
}

func TestChildrenSummary(t *testing.T) {
	assert.Equal(t, "No children", childrenSummary(nil))
	assert.Equal(t, "Child 1: 5y, Child 2: 8y",
		childrenSummary([]models.Child{{Age: 5}, {Age: 8}}))
}

func TestSplitGuestName(t *testing.T) {
	first, last := splitGuestName("Anna Maria Kowalska")
	assert.Equal(t, "Anna", first)
	assert.Equal(t, "Maria Kowalska", last)

	first, last = splitGuestName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "Cher", last)
}

func TestFindVoucherByCodeUnknown(t *testing.T) {
	svc := &Service{API: &fakeAPI{}, Logger: zap.NewNop()}

	voucher, err := svc.FindVoucherByCode(context.Background(), "ALPACA-NONE")

	require.NoError(t, err)
	assert.Nil(t, voucher)
}

func TestRedeemVoucherSkipsMissing(t *testing.T) {
	api := &fakeAPI{}
	svc := &Service{API: api, Logger: zap.NewNop()}

	err := svc.RedeemVoucher(context.Background(), "ALPACA-GONE", "deal-1")

	require.NoError(t, err)
	assert.Empty(t, api.updated)
}
