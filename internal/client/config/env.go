package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the environment. A .env file in the working
// directory is loaded first when present; a missing file is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("NEWSSCOPE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("NEWSSCOPE_SCRIPT_URL"); v != "" {
		cfg.ScriptURL = v
	}
	if v := os.Getenv("NEWSSCOPE_CALLBACK_ADDR"); v != "" {
		cfg.CallbackAddr = v
	}
	if v := os.Getenv("NEWSSCOPE_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("NEWSSCOPE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("NEWSSCOPE_HEALTH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HealthCheckInterval = d
		}
	}
}
