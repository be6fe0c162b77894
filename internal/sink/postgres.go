package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantral/calendar-data/internal/model"
)

// Postgres persists canonical records into the calendar tables.
type Postgres struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres creates the sink over an existing connection pool.
func NewPostgres(db *pgxpool.Pool, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{db: db, logger: logger}
}

// UpsertEarnings writes reconciled earnings events, keyed by
// (symbol, fiscal_year, fiscal_quarter, data_provider).
func (p *Postgres) UpsertEarnings(ctx context.Context, events []model.EarningsEvent) error {
	if len(events) == 0 {
		return nil
	}

	start := time.Now()
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO earnings_events (
				symbol, exchange, event_date, session,
				eps_actual, eps_estimated, revenue_actual, revenue_estimated,
				eps_surprise, eps_surprise_percent,
				fiscal_year, fiscal_quarter, status, transcript_available,
				data_provider, last_updated
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			ON CONFLICT (symbol, fiscal_year, fiscal_quarter, data_provider) DO UPDATE SET
				exchange = EXCLUDED.exchange,
				event_date = EXCLUDED.event_date,
				session = EXCLUDED.session,
				eps_actual = EXCLUDED.eps_actual,
				eps_estimated = EXCLUDED.eps_estimated,
				revenue_actual = EXCLUDED.revenue_actual,
				revenue_estimated = EXCLUDED.revenue_estimated,
				eps_surprise = EXCLUDED.eps_surprise,
				eps_surprise_percent = EXCLUDED.eps_surprise_percent,
				status = EXCLUDED.status,
				transcript_available = EXCLUDED.transcript_available,
				last_updated = EXCLUDED.last_updated
		`,
			e.Symbol, e.Exchange, e.Date, e.Session,
			e.EPSActual, e.EPSEstimated, e.RevenueActual, e.RevenueEstimated,
			e.EPSSurprise, e.EPSSurprisePercent,
			e.FiscalYear, quarterKey(e.FiscalQuarter), e.Status, e.TranscriptAvailable,
			e.DataProvider, e.LastUpdated,
		)
	}

	if err := p.sendBatch(ctx, batch, len(events)); err != nil {
		return fmt.Errorf("upsert earnings: %w", err)
	}

	p.logger.Debug("upserted earnings events",
		"count", len(events),
		"duration", time.Since(start),
	)
	return nil
}

// UpsertEconomic writes reconciled macro events, keyed by
// (event_id, data_provider).
func (p *Postgres) UpsertEconomic(ctx context.Context, events []model.EconomicEvent) error {
	if len(events) == 0 {
		return nil
	}

	start := time.Now()
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO economic_events (
				event_id, country, event_name, period,
				actual, previous, forecast, unit,
				importance, category, frequency, market_impact,
				event_time, data_provider, last_updated
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (event_id, data_provider) DO UPDATE SET
				country = EXCLUDED.country,
				event_name = EXCLUDED.event_name,
				period = EXCLUDED.period,
				actual = EXCLUDED.actual,
				previous = EXCLUDED.previous,
				forecast = EXCLUDED.forecast,
				unit = EXCLUDED.unit,
				importance = EXCLUDED.importance,
				category = EXCLUDED.category,
				frequency = EXCLUDED.frequency,
				market_impact = EXCLUDED.market_impact,
				event_time = EXCLUDED.event_time,
				last_updated = EXCLUDED.last_updated
		`,
			e.EventID, e.Country, e.Name, e.Period,
			e.Actual, e.Previous, e.Forecast, e.Unit,
			e.Importance, e.Category, e.Frequency, e.MarketImpact,
			e.Timestamp, e.DataProvider, e.LastUpdated,
		)
	}

	if err := p.sendBatch(ctx, batch, len(events)); err != nil {
		return fmt.Errorf("upsert economic: %w", err)
	}

	p.logger.Debug("upserted economic events",
		"count", len(events),
		"duration", time.Since(start),
	)
	return nil
}

// UpsertTranscripts writes transcripts, keyed by
// (symbol, fiscal_quarter, fiscal_year, data_provider).
func (p *Postgres) UpsertTranscripts(ctx context.Context, transcripts []model.Transcript) error {
	if len(transcripts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tr := range transcripts {
		batch.Queue(`
			INSERT INTO transcripts (
				symbol, fiscal_quarter, fiscal_year,
				transcript_date, content, data_provider, last_updated
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (symbol, fiscal_quarter, fiscal_year, data_provider) DO UPDATE SET
				transcript_date = EXCLUDED.transcript_date,
				content = EXCLUDED.content,
				last_updated = EXCLUDED.last_updated
		`,
			tr.Symbol, tr.FiscalQuarter, tr.FiscalYear,
			tr.Date, tr.Content, tr.DataProvider, tr.LastUpdated,
		)
	}

	if err := p.sendBatch(ctx, batch, len(transcripts)); err != nil {
		return fmt.Errorf("upsert transcripts: %w", err)
	}
	return nil
}

// ListDistinctSymbols returns the known symbol universe.
func (p *Postgres) ListDistinctSymbols(ctx context.Context) ([]string, error) {
	rows, err := p.db.Query(ctx, `SELECT DISTINCT symbol FROM earnings_events ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("list distinct symbols: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// SymbolsMissingLogo returns symbols whose profile row still has no image
// reference, including symbols with no profile row yet.
func (p *Postgres) SymbolsMissingLogo(ctx context.Context) ([]string, error) {
	rows, err := p.db.Query(ctx, `
		SELECT DISTINCT e.symbol
		FROM earnings_events e
		LEFT JOIN company_profiles c ON c.symbol = e.symbol
		WHERE c.logo_url IS NULL OR c.logo_url = ''
		ORDER BY e.symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("symbols missing logo: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// SetLogoIfEmpty sets a symbol's image reference only if no concurrent
// writer already did. Returns true when the row was written.
func (p *Postgres) SetLogoIfEmpty(ctx context.Context, symbol, logoURL string) (bool, error) {
	ct, err := p.db.Exec(ctx, `
		INSERT INTO company_profiles (symbol, logo_url, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (symbol) DO UPDATE SET
			logo_url = EXCLUDED.logo_url,
			updated_at = now()
		WHERE company_profiles.logo_url IS NULL OR company_profiles.logo_url = ''
	`, symbol, logoURL)
	if err != nil {
		return false, fmt.Errorf("set logo for %s: %w", symbol, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Ping verifies the connection is healthy.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// sendBatch executes a batch and drains every result.
func (p *Postgres) sendBatch(ctx context.Context, batch *pgx.Batch, n int) error {
	results := p.db.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < n; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// quarterKey buckets a nil fiscal quarter under 0 so the conflict key
// stays total (Postgres unique indexes treat NULLs as distinct).
func quarterKey(q *int) int {
	if q == nil {
		return 0
	}
	return *q
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
