// Package observability groups the observability infrastructure:
// structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracing middleware
package observability
