// Package pms talks to the Beds24 property manager, which owns the real room
// calendar and mirrors bookings out to the OTA channels.
package pms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"zagroda/models"

	"go.uber.org/zap"
)

// Gateway is what the booking flow needs from the property manager.
type Gateway interface {
	Availability(ctx context.Context, checkIn, checkOut string) (*models.AvailabilityResult, error)
	RoomImages(ctx context.Context, roomID, imageType string) ([]models.RoomImage, error)
	CreateBooking(ctx context.Context, payload models.PMSBookingPayload) (*models.PMSBookingResult, error)
	CancelBooking(ctx context.Context, bookingRef string) error
}

// Beds24Gateway implements Gateway over the Beds24 HTTP API. When no API key
// is configured it serves fixture data instead of erroring, so the rest of
// the flow works in development.
type Beds24Gateway struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewBeds24Gateway(baseURL, apiKey string, logger *zap.Logger) *Beds24Gateway {
	return &Beds24Gateway{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

func (g *Beds24Gateway) devMode() bool {
	return g.APIKey == ""
}

func (g *Beds24Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("beds24 payload marshal failed: %w", err)
		}
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("beds24 request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("beds24 API error %d %s: %s", resp.StatusCode, path, string(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("beds24 response undecodable: %w", err)
	}
	return nil
}

// nightsBetween counts whole nights between two YYYY-MM-DD dates.
func nightsBetween(checkIn, checkOut string) int {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// Availability asks for bookable rooms with computed pricing for a date range.
func (g *Beds24Gateway) Availability(ctx context.Context, checkIn, checkOut string) (*models.AvailabilityResult, error) {
	if g.devMode() {
		return fixtureAvailability(checkIn, checkOut), nil
	}
	var result models.AvailabilityResult
	path := fmt.Sprintf("/api/public/availability?checkIn=%s&checkOut=%s", checkIn, checkOut)
	if err := g.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RoomImages fetches a room's photos, optionally filtered by type.
func (g *Beds24Gateway) RoomImages(ctx context.Context, roomID, imageType string) ([]models.RoomImage, error) {
	if g.devMode() {
		return fixtureImages(), nil
	}
	path := fmt.Sprintf("/api/public/rooms/%s/images", roomID)
	if imageType != "" {
		path += "?type=" + imageType
	}
	var result struct {
		Images []models.RoomImage `json:"images"`
	}
	if err := g.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Images, nil
}

// CreateBooking mirrors a paid booking into the property manager, which
// blocks the OTA calendar for those dates.
func (g *Beds24Gateway) CreateBooking(ctx context.Context, payload models.PMSBookingPayload) (*models.PMSBookingResult, error) {
	if g.devMode() {
		g.Logger.Warn("Beds24 API key not set, using stub booking creation",
			zap.String("bookingRef", payload.BookingRef))
		return fixtureBookingResult(payload), nil
	}
	var result models.PMSBookingResult
	if err := g.do(ctx, http.MethodPost, "/api/public/booking/create", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelBooking releases the calendar for a booking's dates.
func (g *Beds24Gateway) CancelBooking(ctx context.Context, bookingRef string) error {
	if g.devMode() {
		g.Logger.Warn("Beds24 API key not set, stub cancel", zap.String("bookingRef", bookingRef))
		return nil
	}
	return g.do(ctx, http.MethodPost, fmt.Sprintf("/api/public/booking/%s/cancel", bookingRef), nil, nil)
}

var _ Gateway = (*Beds24Gateway)(nil)
