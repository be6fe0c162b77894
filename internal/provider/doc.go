// Package provider implements the external data provider adapters.
//
// Each adapter translates one provider's wire shape into the canonical
// model types and stamps records with its own provider id. Adapters never
// abort a run: any network, decode, or non-2xx failure is returned as an
// error for the orchestrator to settle, and sibling adapters continue.
//
// Providers:
//   - fmp: earnings calendar, economic calendar, transcripts, profiles
//   - finnhub: earnings calendar
//   - fred: per-series observations (bounded fan-out, token-bucket limited)
package provider
