package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI   string
	TelegramToken string

	// Checkout (PayPal) settings. BaseURL is where the approval redirect
	// lands; StateSecret signs the checkout state token.
	PayPalClientID string
	PayPalSecret   string
	PayPalBaseURL  string
	BaseURL        string
	StateSecret    string
	HTTPPort       string

	// Optional AI recipe suggestions.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	LogLevel    string
	Environment string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		DatabaseURI:    os.Getenv("DATABASE_URI"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		PayPalClientID: os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:   os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalBaseURL:  getEnvOrDefault("PAYPAL_BASE_URL", "https://api.sandbox.paypal.com"),
		BaseURL:        getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		StateSecret:    os.Getenv("CHECKOUT_STATE_SECRET"),
		HTTPPort:       getEnvOrDefault("HTTP_PORT", "8080"),
		AIAPIKey:       os.Getenv("AI_API_KEY"),
		AIBaseURL:      getEnvOrDefault("AI_BASE_URL", "https://openrouter.ai/api/v1"),
		AIModel:        getEnvOrDefault("AI_MODEL", "openai/gpt-4o-mini"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		Environment:    getEnvOrDefault("ENVIRONMENT", "development"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
