package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/flagx"
	"github.com/dmitrijs2005/eventkeeper/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; its fields are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN        string         `json:"database_dsn"`
	GoogleClientID     string         `json:"google_client_id"`
	GoogleClientSecret string         `json:"google_client_secret"`
	ExpoAccessToken    string         `json:"expo_access_token"`
	CalendarID         string         `json:"calendar_id"`
	RetryCap           int            `json:"retry_cap"`
	RunInterval        timex.Duration `json:"run_interval"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, since the worker cannot meaningfully run half-configured.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.GoogleClientID != "" {
		config.GoogleClientID = c.GoogleClientID
	}
	if c.GoogleClientSecret != "" {
		config.GoogleClientSecret = c.GoogleClientSecret
	}
	if c.ExpoAccessToken != "" {
		config.ExpoAccessToken = c.ExpoAccessToken
	}
	if c.CalendarID != "" {
		config.CalendarID = c.CalendarID
	}
	if c.RetryCap != 0 {
		config.RetryCap = c.RetryCap
	}
	if c.RunInterval.Duration != 0 {
		config.RunInterval = time.Duration(c.RunInterval.Duration)
	}
}
