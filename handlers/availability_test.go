package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zagroda/models"
	"zagroda/services/pms"
	"zagroda/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func availabilityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// Fixture mode: no API key configured.
	PMS = pms.NewBeds24Gateway("https://example.invalid", "", zap.NewNop())
	r := gin.New()
	r.GET("/api/booking/availability", GetAvailability)
	return r
}

func getAvailability(r *gin.Engine, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/booking/availability"+query, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAvailabilityRequiresDates(t *testing.T) {
	r := availabilityRouter()

	assert.Equal(t, http.StatusBadRequest, getAvailability(r, "").Code)
	assert.Equal(t, http.StatusBadRequest, getAvailability(r, "?checkIn=2026-09-10").Code)
}

func TestAvailabilityRejectsMalformedDate(t *testing.T) {
	r := availabilityRouter()

	rec := getAvailability(r, "?checkIn=10-09-2026&checkOut=2026-09-13")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityRejectsInvertedRange(t *testing.T) {
	r := availabilityRouter()

	rec := getAvailability(r, "?checkIn=2026-09-13&checkOut=2026-09-10")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type failingPMS struct {
	pms.Gateway
	err error
}

func (f *failingPMS) Availability(ctx context.Context, checkIn, checkOut string) (*models.AvailabilityResult, error) {
	return nil, f.err
}

func TestAvailabilityUpstreamFailureShape(t *testing.T) {
	r := availabilityRouter()
	PMS = &failingPMS{err: errors.New("beds24 status 503")}

	rec := getAvailability(r, "?checkIn=2026-09-10&checkOut=2026-09-13")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to fetch availability", body.Error)
	assert.Equal(t, "beds24 status 503", body.Details)
}

func TestAvailabilityReturnsRooms(t *testing.T) {
	r := availabilityRouter()

	rec := getAvailability(r, "?checkIn=2026-09-10&checkOut=2026-09-13")

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AvailabilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 3, result.Nights)
	assert.NotEmpty(t, result.AvailableRooms)
}
