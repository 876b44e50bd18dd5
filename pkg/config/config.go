package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host               string
	Port               string
	FrontendURL        string
	BackendURL         string
	GoogleClientID     string
	GoogleClientSecret string
	GmailScopes        string
	SessionSecret      string
	SessionExpiry      time.Duration
	DatabaseURL        string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	sessionExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("SESSION_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			sessionExpiry = parsed
		}
	}

	return &Config{
		Host:               getEnv("HOST", "0.0.0.0"),
		Port:               getEnv("PORT", "8001"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:         getEnv("BACKEND_URL", "http://localhost:8001"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GmailScopes:        getEnv("GMAIL_SCOPES", "https://www.googleapis.com/auth/gmail.readonly"),
		SessionSecret:      getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		SessionExpiry:      sessionExpiry,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
	}
}

// RedirectURI is the OAuth callback registered with the identity provider.
func (c *Config) RedirectURI() string {
	return c.BackendURL + "/auth/callback"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
