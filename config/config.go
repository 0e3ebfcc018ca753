package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (wizard session store).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Stripe.
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// Zoho CRM OAuth.
	ZohoClientID     string `mapstructure:"ZOHO_CLIENT_ID"`
	ZohoClientSecret string `mapstructure:"ZOHO_CLIENT_SECRET"`
	ZohoRefreshToken string `mapstructure:"ZOHO_REFRESH_TOKEN"`
	ZohoAccountsURL  string `mapstructure:"ZOHO_ACCOUNTS_URL"`

	// Beds24 property manager.
	Beds24BaseURL string `mapstructure:"BEDS24_BASE_URL"`
	Beds24APIKey  string `mapstructure:"BEDS24_API_KEY"`

	// Outbound email.
	MailAPIKey string `mapstructure:"MAIL_API_KEY"`
	MailFrom   string `mapstructure:"MAIL_FROM"`
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// GA4 Measurement Protocol.
	GA4MeasurementID string `mapstructure:"GA4_MEASUREMENT_ID"`
	GA4APISecret     string `mapstructure:"GA4_API_SECRET"`

	// Shared secret for the internal booking-cancel endpoint.
	CancelSecret string `mapstructure:"CANCEL_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ALLOWED_ORIGINS", "https://zagrodaalpakoterapii.com")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("ZOHO_ACCOUNTS_URL", "https://accounts.zoho.eu")
	viper.SetDefault("BEDS24_BASE_URL", "https://admin.zagrodaalpakoterapii.com")
	viper.SetDefault("BEDS24_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "Alpaca Farm <noreply@zagrodaalpakoterapii.com>")
	viper.SetDefault("ADMIN_EMAIL", "vouchers@zagrodaalpakoterapii.com")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
