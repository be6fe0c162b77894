package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultServerPort      = 8080
	DefaultShutdownTimeout = 10 * time.Second

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 10
	DefaultMinConns  = 2

	DefaultFMPURL     = "https://financialmodelingprep.com"
	DefaultFinnhubURL = "https://finnhub.io"
	DefaultFREDURL    = "https://api.stlouisfed.org"
	DefaultLogoURL    = "https://financialmodelingprep.com"

	DefaultProviderTimeout = 30 * time.Second
	DefaultMaxRetries      = 3

	DefaultEarningsLookaheadDays = 30
	DefaultEconomicLookbackDays  = 15
	DefaultEconomicLookaheadDays = 15
	DefaultTranscriptQuarters    = 4
	DefaultAdapterTimeout        = 2 * time.Minute

	DefaultFREDRatePerSecond = 6
	DefaultFREDMaxConcurrent = 4

	DefaultEnrichBatchSize     = 10
	DefaultEnrichRatePerSecond = 10

	DefaultEarningsInterval   = 6 * time.Hour
	DefaultEconomicInterval   = 4 * time.Hour
	DefaultEnrichmentInterval = 24 * time.Hour

	DefaultLogLevel = "info"
)

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	applyDBDefaults(&c.Database)

	applyProviderDefaults(&c.Providers.FMP, DefaultFMPURL)
	applyProviderDefaults(&c.Providers.Finnhub, DefaultFinnhubURL)
	applyProviderDefaults(&c.Providers.FRED.ProviderConfig, DefaultFREDURL)
	applyProviderDefaults(&c.Providers.Logo, DefaultLogoURL)

	if c.Providers.FRED.RatePerSecond == 0 {
		c.Providers.FRED.RatePerSecond = DefaultFREDRatePerSecond
	}
	if c.Providers.FRED.MaxConcurrent == 0 {
		c.Providers.FRED.MaxConcurrent = DefaultFREDMaxConcurrent
	}

	if c.Sync.EarningsLookaheadDays == 0 {
		c.Sync.EarningsLookaheadDays = DefaultEarningsLookaheadDays
	}
	if c.Sync.EconomicLookbackDays == 0 {
		c.Sync.EconomicLookbackDays = DefaultEconomicLookbackDays
	}
	if c.Sync.EconomicLookaheadDays == 0 {
		c.Sync.EconomicLookaheadDays = DefaultEconomicLookaheadDays
	}
	if c.Sync.TranscriptQuarters == 0 {
		c.Sync.TranscriptQuarters = DefaultTranscriptQuarters
	}
	if c.Sync.AdapterTimeout == 0 {
		c.Sync.AdapterTimeout = DefaultAdapterTimeout
	}

	if c.Enrichment.BatchSize == 0 {
		c.Enrichment.BatchSize = DefaultEnrichBatchSize
	}
	if c.Enrichment.RatePerSecond == 0 {
		c.Enrichment.RatePerSecond = DefaultEnrichRatePerSecond
	}

	if c.Scheduler.EarningsInterval == 0 {
		c.Scheduler.EarningsInterval = DefaultEarningsInterval
	}
	if c.Scheduler.EconomicInterval == 0 {
		c.Scheduler.EconomicInterval = DefaultEconomicInterval
	}
	if c.Scheduler.EnrichmentInterval == 0 {
		c.Scheduler.EnrichmentInterval = DefaultEnrichmentInterval
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}

func applyProviderDefaults(p *ProviderConfig, baseURL string) {
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	if p.Timeout == 0 {
		p.Timeout = DefaultProviderTimeout
	}
	if p.MaxRetries == 0 {
		p.MaxRetries = DefaultMaxRetries
	}
}
