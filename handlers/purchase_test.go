package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zagroda/config"
	"zagroda/services/payment"
	"zagroda/services/purchase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCheckoutGateway struct {
	calls      int
	lastParams payment.CheckoutSessionParams
}

func (f *fakeCheckoutGateway) CreateCheckoutSession(ctx context.Context, p payment.CheckoutSessionParams) (*payment.CheckoutSession, error) {
	f.calls++
	f.lastParams = p
	return &payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/pay/cs_test_1"}, nil
}

func purchaseRouter(checkout *fakeCheckoutGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := purchase.NewService(checkout, zap.NewNop())
	svc.NewVoucherCode = func() string { return "ALPACA-TESTXX" }
	Purchases = svc
	r := gin.New()
	r.POST("/api/vouchers/purchase", PurchaseVoucher)
	r.POST("/api/checkout", AdoptionCheckout)
	return r
}

func postPurchase(r *gin.Engine, path, body, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPurchaseVoucherEndpoint(t *testing.T) {
	checkout := &fakeCheckoutGateway{}
	r := purchaseRouter(checkout)

	rec := postPurchase(r, "/api/vouchers/purchase",
		`{"amount":10000,"currency":"PLN","locale":"pl"}`,
		"https://zagrodaalpakoterapii.com")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		URL         string `json:"url"`
		VoucherCode string `json:"voucherCode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", body.URL)
	assert.Equal(t, "ALPACA-TESTXX", body.VoucherCode)
	assert.Contains(t, checkout.lastParams.SuccessURL, "https://zagrodaalpakoterapii.com/pl/")
}

func TestPurchaseVoucherEndpointRejectsBadAmount(t *testing.T) {
	checkout := &fakeCheckoutGateway{}
	r := purchaseRouter(checkout)

	rec := postPurchase(r, "/api/vouchers/purchase",
		`{"amount":123,"currency":"PLN","locale":"pl"}`,
		"https://zagrodaalpakoterapii.com")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, checkout.calls)
}

func TestAdoptionCheckoutEndpoint(t *testing.T) {
	checkout := &fakeCheckoutGateway{}
	r := purchaseRouter(checkout)

	rec := postPurchase(r, "/api/checkout",
		`{"tier":"silver","alpaca":"Misia","locale":"en"}`,
		"https://zagrodaalpakoterapii.com")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", body.URL)
	assert.Equal(t, int64(49900), checkout.lastParams.AmountCents)
}

func TestPurchaseFallsBackToConfiguredOrigin(t *testing.T) {
	checkout := &fakeCheckoutGateway{}
	r := purchaseRouter(checkout)
	config.AppConfig.AllowedOrigins = "https://zagrodaalpakoterapii.com,https://staging.zagrodaalpakoterapii.com"

	rec := postPurchase(r, "/api/checkout",
		`{"tier":"bronze","alpaca":"Misia","locale":"pl"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, checkout.lastParams.SuccessURL, "https://zagrodaalpakoterapii.com/pl/adopt/success")
}
