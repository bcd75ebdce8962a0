package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "https://checkout.razorpay.com/v1/checkout.js", cfg.ScriptURL)
	assert.Equal(t, "127.0.0.1:0", cfg.CallbackAddr)
	assert.Equal(t, "newsscope.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.HealthCheckInterval)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("NEWSSCOPE_API_URL", "https://api.example.com")
	t.Setenv("NEWSSCOPE_DB_PATH", "/tmp/ns.db")
	t.Setenv("NEWSSCOPE_REQUEST_TIMEOUT", "5s")
	t.Setenv("NEWSSCOPE_HEALTH_INTERVAL", "bogus")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/ns.db", cfg.DatabasePath)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	// Unparsable durations keep the default.
	assert.Equal(t, 15*time.Second, cfg.HealthCheckInterval)
}

func TestParseJson_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://json.example.com",
		"request_timeout": "12s"
	}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://json.example.com", cfg.APIBaseURL)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "newsscope.db", cfg.DatabasePath)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-a", "https://flags.example.com", "-t", "7", "-unrelated", "x"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "https://flags.example.com", cfg.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.HealthCheckInterval)
}
