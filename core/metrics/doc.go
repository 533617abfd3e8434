// Package metrics defines the sink interfaces used to record normalization
// outcomes. Implementations live in infra/metrics.
package metrics
