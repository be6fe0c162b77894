// Package reconcile merges normalized records from all provider adapters
// into one canonical record per real-world event.
//
// Records are grouped by their provider-independent identity key and
// merged under a first-non-empty-wins policy: once any provider has
// populated a field, a later empty value never overwrites it. The merge
// rules are explicit per field so adding a field to a canonical type
// forces a decision here.
package reconcile
