package models

// NightlyPrice is one night's rate inside a pricing breakdown.
type NightlyPrice struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// RoomPricing is the computed price for a room over a date range, as returned
// by the property manager.
type RoomPricing struct {
	Nights           int            `json:"nights"`
	TotalPrice       float64        `json:"totalPrice"`
	AveragePerNight  float64        `json:"averagePerNight"`
	Currency         string         `json:"currency"`
	NightlyBreakdown []NightlyPrice `json:"nightlyBreakdown"`
}

// AvailableRoom is a bookable room for a queried date range.
type AvailableRoom struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Capacity    int         `json:"capacity"`
	MaxAdults   int         `json:"maxAdults"`
	MaxChildren int         `json:"maxChildren"`
	MinNights   int         `json:"minNights"`
	BasePrice   float64     `json:"basePrice"`
	Amenities   []string    `json:"amenities"`
	Pricing     RoomPricing `json:"pricing"`
}

// AvailabilityResult is the property manager's answer to an availability query.
type AvailabilityResult struct {
	CheckIn        string          `json:"checkIn"`
	CheckOut       string          `json:"checkOut"`
	Nights         int             `json:"nights"`
	AvailableRooms []AvailableRoom `json:"availableRooms"`
}

// RoomImage is a photo attached to a room in the property manager.
type RoomImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Type      string `json:"type"` // HERO | GALLERY | THUMBNAIL | PROPERTY
	AltText   string `json:"altText,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

// SelectedRoom is the room a guest picked in the wizard, with its price
// resolved for their dates.
type SelectedRoom struct {
	ID            string  `json:"roomId"`
	Name          string  `json:"name"`
	MaxAdults     int     `json:"maxAdults"`
	MaxChildren   int     `json:"maxChildren"`
	MinNights     int     `json:"minNights"`
	TotalPrice    float64 `json:"totalPrice"`
	PricePerNight float64 `json:"pricePerNight"`
	Currency      string  `json:"currency"`
	Nights        int     `json:"nights"`
}
