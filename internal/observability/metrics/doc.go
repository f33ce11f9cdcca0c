// Package metrics provides the Prometheus metrics used by the application:
// counters for food entry mutations, gauges for database state refreshed by
// the metrics worker, and database query duration histograms.
//
// All metrics register with the Prometheus default registry and are exposed
// via the /metrics endpoint.
package metrics
