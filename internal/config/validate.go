package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Providers.FMP.APIKey == "" && c.Providers.Finnhub.APIKey == "" {
		return errors.New("at least one earnings provider api_key is required (providers.fmp or providers.finnhub)")
	}

	for i, s := range c.Providers.FRED.Series {
		if s.ID == "" {
			return fmt.Errorf("providers.fred.series[%d].id is required", i)
		}
		if s.Name == "" {
			return fmt.Errorf("providers.fred.series[%d].name is required", i)
		}
	}

	if c.Sync.EarningsLookaheadDays < 1 {
		return errors.New("sync.earnings_lookahead_days must be >= 1")
	}
	if c.Sync.EconomicLookbackDays < 0 {
		return errors.New("sync.economic_lookback_days must be >= 0")
	}
	if c.Sync.EconomicLookaheadDays < 1 {
		return errors.New("sync.economic_lookahead_days must be >= 1")
	}

	if c.Enrichment.BatchSize < 1 {
		return errors.New("enrichment.batch_size must be >= 1")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
