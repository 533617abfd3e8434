// Package infra holds the technical adapters: the MQTT ingest client and
// the metrics exporters. Code here depends only on interfaces defined in
// the core packages.
package infra
