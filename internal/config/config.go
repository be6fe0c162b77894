package config

import "time"

// Config is the root configuration for a calendard instance.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DBConfig         `yaml:"database"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Sync       SyncConfig       `yaml:"sync"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	LogLevel   string           `yaml:"log_level"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ProvidersConfig configures every external data provider. API keys are
// injected here rather than read from ambient environment by the adapters,
// so adapter behavior is a pure function of (config, window).
type ProvidersConfig struct {
	FMP     ProviderConfig `yaml:"fmp"`
	Finnhub ProviderConfig `yaml:"finnhub"`
	FRED    FREDConfig     `yaml:"fred"`
	Logo    ProviderConfig `yaml:"logo"`
}

// ProviderConfig holds one provider's endpoint and credential.
type ProviderConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// FREDConfig extends ProviderConfig with the series the adapter fans out
// over (one sub-call per series id).
type FREDConfig struct {
	ProviderConfig `yaml:",inline"`
	Series         []FREDSeries `yaml:"series"`
	RatePerSecond  float64      `yaml:"rate_per_second"`
	MaxConcurrent  int64        `yaml:"max_concurrent"`
}

// FREDSeries names one FRED series and how to present it.
type FREDSeries struct {
	ID      string `yaml:"id"`      // e.g. "CPIAUCSL"
	Name    string `yaml:"name"`    // e.g. "Consumer Price Index"
	Country string `yaml:"country"` // e.g. "US"
	Unit    string `yaml:"unit"`
}

// SyncConfig holds the fetch windows, in whole days from "today".
type SyncConfig struct {
	EarningsLookaheadDays int           `yaml:"earnings_lookahead_days"`
	EconomicLookbackDays  int           `yaml:"economic_lookback_days"`
	EconomicLookaheadDays int           `yaml:"economic_lookahead_days"`
	TranscriptQuarters    int           `yaml:"transcript_quarters"`
	AdapterTimeout        time.Duration `yaml:"adapter_timeout"`
}

// EnrichmentConfig holds the logo enrichment pipeline settings.
type EnrichmentConfig struct {
	BatchSize     int     `yaml:"batch_size"`
	RatePerSecond float64 `yaml:"rate_per_second"`
}

// SchedulerConfig enables interval-driven pipeline runs.
type SchedulerConfig struct {
	Enabled            bool          `yaml:"enabled"`
	EarningsInterval   time.Duration `yaml:"earnings_interval"`
	EconomicInterval   time.Duration `yaml:"economic_interval"`
	EnrichmentInterval time.Duration `yaml:"enrichment_interval"`
}
