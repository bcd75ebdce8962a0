package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/newsscope/newsscope/internal/flagx"
)

// JsonConfig is the file DTO. Durations are time.ParseDuration strings,
// e.g. "30s".
type JsonConfig struct {
	APIBaseURL          string `json:"api_base_url"`
	ScriptURL           string `json:"script_url"`
	CallbackAddr        string `json:"callback_addr"`
	DatabasePath        string `json:"database_path"`
	RequestTimeout      string `json:"request_timeout"`
	HealthCheckInterval string `json:"health_check_interval"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// No flag, no file read. Read or parse failures panic; this runs once at
// startup before anything else is wired.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.ScriptURL != "" {
		cfg.ScriptURL = jc.ScriptURL
	}
	if jc.CallbackAddr != "" {
		cfg.CallbackAddr = jc.CallbackAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if d, err := time.ParseDuration(jc.RequestTimeout); err == nil && jc.RequestTimeout != "" {
		cfg.RequestTimeout = d
	}
	if d, err := time.ParseDuration(jc.HealthCheckInterval); err == nil && jc.HealthCheckInterval != "" {
		cfg.HealthCheckInterval = d
	}
}
