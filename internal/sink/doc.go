// Package sink is the persistence boundary for reconciled calendar data.
//
// All writes are idempotent upserts keyed by a declared natural key:
// repeated runs converge on one row per real-world event per provider
// union instead of duplicating. The sink performs insert-or-merge-replace
// on conflict; it assumes nothing about prior row state and never reads
// back before writing.
package sink
