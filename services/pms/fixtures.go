package pms

import (
	"time"

	"zagroda/models"
)

// Fixture data matching the shape (and current rates) of the live Beds24
// responses, served whenever no API key is configured.

func fixtureRoom(id, name string, capacity, maxChildren int, basePrice float64, nights int, amenities []string) models.AvailableRoom {
	return models.AvailableRoom{
		ID:          id,
		Name:        name,
		Capacity:    capacity,
		MaxAdults:   2,
		MaxChildren: maxChildren,
		MinNights:   2,
		BasePrice:   basePrice,
		Amenities:   amenities,
		Pricing: models.RoomPricing{
			Nights:           nights,
			TotalPrice:       basePrice * float64(nights),
			AveragePerNight:  basePrice,
			Currency:         "PLN",
			NightlyBreakdown: []models.NightlyPrice{},
		},
	}
}

func fixtureAvailability(checkIn, checkOut string) *models.AvailabilityResult {
	nights := nightsBetween(checkIn, checkOut)
	return &models.AvailabilityResult{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   nights,
		AvailableRooms: []models.AvailableRoom{
			fixtureRoom("room-garden", "Garden Room", 3, 1, 330, nights,
				[]string{"WiFi", "Breakfast", "Private bathroom"}),
			fixtureRoom("room-jungle", "Jungle Room", 3, 1, 330, nights,
				[]string{"WiFi", "Breakfast", "Private bathroom"}),
			fixtureRoom("room-forest", "Forest Apartment", 5, 3, 410, nights,
				[]string{"WiFi", "Breakfast", "Kitchen", "Separate bedroom"}),
		},
	}
}

func fixtureImages() []models.RoomImage {
	return []models.RoomImage{
		{ID: "stub-1", URL: "/images/Rooms/garden1.jpg", Type: "HERO", AltText: "Room hero", SortOrder: 0},
		{ID: "stub-2", URL: "/images/Rooms/garden2.jpg", Type: "GALLERY", AltText: "Room gallery", SortOrder: 1},
	}
}

func fixtureBookingResult(payload models.PMSBookingPayload) *models.PMSBookingResult {
	nights := nightsBetween(payload.CheckIn, payload.CheckOut)
	balanceDue := ""
	if in, err := time.Parse("2006-01-02", payload.CheckIn); err == nil {
		balanceDue = in.AddDate(0, 0, -3).Format("2006-01-02")
	}
	return &models.PMSBookingResult{
		BookingRef:     payload.BookingRef,
		BedsBookingID:  "STUB-99999",
		Status:         "DEPOSIT_PAID",
		Nights:         nights,
		BalanceDueDate: balanceDue,
	}
}
