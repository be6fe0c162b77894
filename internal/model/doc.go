// Package model defines the canonical record types shared across the
// calendar reconciliation pipeline.
//
// Conventions:
//   - Nullable numeric fields use pointer types (*float64, *int); nil means
//     "no provider supplied this field"
//   - Event dates are date-only, normalized to UTC midnight
//   - DataProvider is the comma-joined union of every provider that
//     contributed a field, in order of first appearance
package model
