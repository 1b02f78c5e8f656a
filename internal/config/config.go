package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Lead sink. When DatabaseURL is set the Postgres sink is used,
	// otherwise records append to the CSV file at LeadLogPath.
	DatabaseURL string
	LeadLogPath string

	// Stripe checkout
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// HTTP server timeouts
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		LeadLogPath: getEnv("LEAD_LOG_PATH", "data/quote_leads.csv"),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", ""),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", ""),

		ReadTimeoutSeconds:  getEnvAsInt("READ_TIMEOUT_SECONDS", 15),
		WriteTimeoutSeconds: getEnvAsInt("WRITE_TIMEOUT_SECONDS", 15),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
