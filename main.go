// File: zagroda/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zagroda/config"
	"zagroda/handlers"
	"zagroda/routes"
	"zagroda/services/analytics"
	"zagroda/services/booking"
	"zagroda/services/documents"
	"zagroda/services/fulfillment"
	"zagroda/services/notification"
	"zagroda/services/payment"
	"zagroda/services/pms"
	"zagroda/services/purchase"
	"zagroda/services/zoho"
	"zagroda/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionStore()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Upstream clients.
	zohoClient := zoho.NewClient(
		config.AppConfig.ZohoClientID,
		config.AppConfig.ZohoClientSecret,
		config.AppConfig.ZohoRefreshToken,
		config.AppConfig.ZohoAccountsURL,
		logger,
	)
	crm := &zoho.Service{API: zohoClient, Logger: logger}

	pmsGateway := pms.NewBeds24Gateway(
		config.AppConfig.Beds24BaseURL,
		config.AppConfig.Beds24APIKey,
		logger,
	)
	if config.AppConfig.Beds24APIKey == "" {
		logger.Warn("BEDS24_API_KEY not set, property manager runs on fixture data")
	}

	stripeGateway := payment.NewStripeGateway(config.AppConfig.StripeSecretKey, logger)

	var emitter analytics.Emitter = analytics.Noop{}
	if config.AppConfig.GA4MeasurementID != "" && config.AppConfig.GA4APISecret != "" {
		emitter = analytics.NewGA4Emitter(
			config.AppConfig.GA4MeasurementID,
			config.AppConfig.GA4APISecret,
			logger,
		)
	}

	mailer := notification.NewMailAPISender(
		config.AppConfig.MailAPIKey,
		config.AppConfig.MailFrom,
		logger,
	)

	// Services.
	handlers.PMS = pmsGateway
	handlers.CRM = crm
	handlers.Validator = &booking.VoucherValidator{CRM: crm, Logger: logger}
	handlers.IntentService = &booking.IntentService{CRM: crm, Payments: stripeGateway, Logger: logger}
	handlers.Sessions = &booking.SessionStore{Client: utils.GetSessionClient()}
	handlers.Engine = &booking.Engine{Emitter: emitter}
	handlers.Purchases = purchase.NewService(stripeGateway, logger)
	handlers.Fulfillment = &fulfillment.Handler{
		CRM:        crm,
		PMS:        pmsGateway,
		Documents:  documents.NewService(),
		Email:      mailer,
		AdminEmail: config.AppConfig.AdminEmail,
		Logger:     logger,
	}
	if config.AppConfig.StripeWebhookSecret != "" {
		handlers.Verifier = payment.StripeWebhookVerifier{Secret: config.AppConfig.StripeWebhookSecret}
	} else {
		logger.Warn("STRIPE_WEBHOOK_SECRET not set, webhook endpoint disabled")
	}

	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
