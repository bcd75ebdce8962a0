// Package config assembles the client's runtime settings from, in order of
// precedence (lowest first): built-in defaults, environment (.env is loaded
// when present), a JSON file given via -c/-config, and command-line flags.
package config

import "time"

type Config struct {
	// APIBaseURL is the NewsScope backend origin.
	APIBaseURL string
	// ScriptURL is the fixed gateway checkout script location.
	ScriptURL string
	// CallbackAddr is where the checkout widget's local page is served.
	CallbackAddr string
	// DatabasePath is the local SQLite store.
	DatabasePath string
	// RequestTimeout bounds each backend call.
	RequestTimeout time.Duration
	// HealthCheckInterval is how often the CLI probes backend liveness.
	HealthCheckInterval time.Duration
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.ScriptURL = "https://checkout.razorpay.com/v1/checkout.js"
	c.CallbackAddr = "127.0.0.1:0"
	c.DatabasePath = "newsscope.db"
	c.RequestTimeout = 30 * time.Second
	c.HealthCheckInterval = 15 * time.Second
}

// LoadConfig builds a Config with each later source overriding the earlier.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
