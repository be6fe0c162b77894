package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  port: 9090
database:
  host: localhost
  port: 5432
  name: calendar
  user: calendar
  password: testpass
providers:
  fmp:
    api_key: fmp-key
  fred:
    series:
      - id: CPIAUCSL
        name: Consumer Price Index
        country: US
        unit: Index
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Providers.FMP.APIKey != "fmp-key" {
		t.Errorf("Providers.FMP.APIKey = %q, want %q", cfg.Providers.FMP.APIKey, "fmp-key")
	}
	if len(cfg.Providers.FRED.Series) != 1 || cfg.Providers.FRED.Series[0].ID != "CPIAUCSL" {
		t.Errorf("Providers.FRED.Series = %+v, want one CPIAUCSL entry", cfg.Providers.FRED.Series)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_FMP_KEY", "secret123")

	yaml := `
database:
  host: localhost
  name: calendar
  user: calendar
  password: pass
providers:
  fmp:
    api_key: ${TEST_FMP_KEY}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Providers.FMP.APIKey != "secret123" {
		t.Errorf("Providers.FMP.APIKey = %q, want %q", cfg.Providers.FMP.APIKey, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
database:
  host: localhost
  name: calendar
  user: calendar
  password: pass
providers:
  finnhub:
    api_key: fh-key
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Database.SSLMode != DefaultDBSSLMode {
		t.Errorf("Database.SSLMode = %q, want %q", cfg.Database.SSLMode, DefaultDBSSLMode)
	}
	if cfg.Providers.Finnhub.BaseURL != DefaultFinnhubURL {
		t.Errorf("Providers.Finnhub.BaseURL = %q, want %q", cfg.Providers.Finnhub.BaseURL, DefaultFinnhubURL)
	}
	if cfg.Providers.Finnhub.Timeout != 30*time.Second {
		t.Errorf("Providers.Finnhub.Timeout = %v, want 30s", cfg.Providers.Finnhub.Timeout)
	}
	if cfg.Sync.EarningsLookaheadDays != DefaultEarningsLookaheadDays {
		t.Errorf("Sync.EarningsLookaheadDays = %d, want %d", cfg.Sync.EarningsLookaheadDays, DefaultEarningsLookaheadDays)
	}
	if cfg.Enrichment.BatchSize != DefaultEnrichBatchSize {
		t.Errorf("Enrichment.BatchSize = %d, want %d", cfg.Enrichment.BatchSize, DefaultEnrichBatchSize)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{
			Database: DBConfig{
				Host:     "localhost",
				Name:     "calendar",
				User:     "calendar",
				Password: "pass",
			},
			Providers: ProvidersConfig{
				FMP: ProviderConfig{APIKey: "key"},
			},
		}
		cfg.applyDefaults()
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config failed validation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db password", func(c *Config) { c.Database.Password = "" }},
		{"no provider keys", func(c *Config) {
			c.Providers.FMP.APIKey = ""
			c.Providers.Finnhub.APIKey = ""
		}},
		{"fred series without id", func(c *Config) {
			c.Providers.FRED.Series = []FREDSeries{{Name: "CPI"}}
		}},
		{"bad server port", func(c *Config) { c.Server.Port = 99999 }},
		{"zero batch size", func(c *Config) { c.Enrichment.BatchSize = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
