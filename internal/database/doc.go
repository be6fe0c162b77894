// Package database provides the PostgreSQL connection pool for the
// calendar tables (earnings_events, economic_events, transcripts,
// company_profiles).
package database
