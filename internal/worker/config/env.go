package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables. A local .env
// file is loaded first if present; a missing file is not an error.
//
// Recognized variables:
//
//	DATABASE_DSN          PostgreSQL DSN
//	GOOGLE_CLIENT_ID      OAuth client id
//	GOOGLE_CLIENT_SECRET  OAuth client secret
//	EXPO_ACCESS_TOKEN     Expo push access token
//	CALENDAR_ID           target calendar id
//	RETRY_CAP             delivery attempt cap, integer
//	RUN_INTERVAL          pass interval, Go duration string ("5m")
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		config.GoogleClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		config.GoogleClientSecret = v
	}
	if v := os.Getenv("EXPO_ACCESS_TOKEN"); v != "" {
		config.ExpoAccessToken = v
	}
	if v := os.Getenv("CALENDAR_ID"); v != "" {
		config.CalendarID = v
	}
	if v := os.Getenv("RETRY_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.RetryCap = n
		}
	}
	if v := os.Getenv("RUN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RunInterval = d
		}
	}
}
