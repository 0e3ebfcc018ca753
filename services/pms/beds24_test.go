package pms

import (
	"context"
	"testing"

	"zagroda/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// No API key puts the gateway in fixture mode.
func fixtureGateway() *Beds24Gateway {
	return NewBeds24Gateway("https://example.invalid", "", zap.NewNop())
}

func TestFixtureAvailability(t *testing.T) {
	g := fixtureGateway()

	result, err := g.Availability(context.Background(), "2026-09-10", "2026-09-13")

	require.NoError(t, err)
	assert.Equal(t, 3, result.Nights)
	require.Len(t, result.AvailableRooms, 3)

	garden := result.AvailableRooms[0]
	assert.Equal(t, "room-garden", garden.ID)
	assert.Equal(t, 2, garden.MinNights)
	assert.Equal(t, 990.0, garden.Pricing.TotalPrice)
	assert.Equal(t, "PLN", garden.Pricing.Currency)

	forest := result.AvailableRooms[2]
	assert.Equal(t, 1230.0, forest.Pricing.TotalPrice)
}

func TestFixtureRoomImages(t *testing.T) {
	g := fixtureGateway()

	images, err := g.RoomImages(context.Background(), "room-garden", "")

	require.NoError(t, err)
	assert.NotEmpty(t, images)
}

func TestFixtureCreateBooking(t *testing.T) {
	g := fixtureGateway()

	result, err := g.CreateBooking(context.Background(), models.PMSBookingPayload{
		BookingRef: "ZAP-000123",
		CheckIn:    "2026-09-10",
		CheckOut:   "2026-09-13",
	})

	require.NoError(t, err)
	assert.Equal(t, "ZAP-000123", result.BookingRef)
	assert.Equal(t, "STUB-99999", result.BedsBookingID)
	assert.Equal(t, 3, result.Nights)
	// Balance falls due three days before arrival.
	assert.Equal(t, "2026-09-07", result.BalanceDueDate)
}

func TestFixtureCancelBooking(t *testing.T) {
	g := fixtureGateway()

	assert.NoError(t, g.CancelBooking(context.Background(), "ZAP-000123"))
}
