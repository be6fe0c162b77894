// Package orchestrator drives the reconciliation pipelines end to end.
//
// A run computes the fetch window, fans out to every configured provider
// adapter concurrently, and settles each one independently: a failed or
// hung adapter never cancels its siblings. Collected batches flow through
// the reconciler and into the upsert sink, and every run produces a
// structured summary regardless of outcome. Fetched data is never retried
// within a run; retries belong to the caller's schedule.
package orchestrator
