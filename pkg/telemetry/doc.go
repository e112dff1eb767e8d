// Package telemetry groups the observability subsystems: structured
// logging, Prometheus metrics, and health probe endpoints.
package telemetry
