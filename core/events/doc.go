// Package events defines the pipeline related events emitted on the event bus.
//
// Available event types:
//   - DepartureNormalized: a record passed validation and normalization
//   - RecordRejected: a record failed boundary or range checks
package events
