package routes

import (
	"strings"
	"time"

	"zagroda/config"
	"zagroda/handlers"
	"zagroda/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the guest-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	booking := r.Group("/api/booking")
	{
		booking.GET("/availability", handlers.GetAvailability)
		booking.GET("/rooms/:roomId/images", handlers.GetRoomImages)
		booking.POST("/voucher/validate", handlers.ValidateVoucher)
		booking.POST("/intent", handlers.CreateBookingIntent)
		booking.POST("/cancel", handlers.CancelBooking)

		booking.POST("/session", handlers.StartWizardSession)
		booking.GET("/session/:sessionId", handlers.GetWizardSession)
		booking.POST("/session/:sessionId/event", handlers.WizardSessionEvent)
	}
}

// RegisterPurchaseRoutes sets up the voucher and adoption checkout endpoints.
func RegisterPurchaseRoutes(r *gin.Engine) {
	r.POST("/api/vouchers/purchase", handlers.PurchaseVoucher)
	r.POST("/api/checkout", handlers.AdoptionCheckout)
}

// RegisterWebhookRoutes sets up the payment processor callback.
func RegisterWebhookRoutes(r *gin.Engine) {
	r.POST("/api/stripe/webhook", handlers.StripeWebhook)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	origins := strings.Split(config.AppConfig.AllowedOrigins, ",")
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r)
	RegisterPurchaseRoutes(r)
	RegisterWebhookRoutes(r)
}
