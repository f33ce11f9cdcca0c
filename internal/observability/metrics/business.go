package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track food entry activity and database state.
var (
	// EntriesCreatedTotal counts food entries created through the add operation.
	EntriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "food_entries_created_total",
			Help: "Total number of food entries created",
		},
	)

	// EntriesUpdatedTotal counts successful edit operations.
	EntriesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "food_entries_updated_total",
			Help: "Total number of food entries updated",
		},
	)

	// EntriesDeletedTotal counts soft-delete operations.
	EntriesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "food_entries_deleted_total",
			Help: "Total number of food entries soft-deleted",
		},
	)

	// EntriesActiveTotal reports the current number of active entries.
	// Refreshed periodically by the metrics worker.
	EntriesActiveTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "food_entries_active_total",
			Help: "Current number of active (non-deleted) food entries",
		},
	)

	// CaloriesTodayTotal reports today's calorie sum over active entries.
	// Refreshed periodically by the metrics worker.
	CaloriesTodayTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "food_calories_today_total",
			Help: "Calorie sum of today's active food entries",
		},
	)

	// DBQueryDuration measures database query duration per repository operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// RecordEntryCreated records a successful add operation.
func RecordEntryCreated() {
	EntriesCreatedTotal.Inc()
}

// RecordEntryUpdated records a successful edit operation.
func RecordEntryUpdated() {
	EntriesUpdatedTotal.Inc()
}

// RecordEntryDeleted records a successful soft delete.
func RecordEntryDeleted() {
	EntriesDeletedTotal.Inc()
}

// UpdateEntriesActive updates the active entry count gauge.
func UpdateEntriesActive(count int64) {
	EntriesActiveTotal.Set(float64(count))
}

// UpdateCaloriesToday updates today's calorie total gauge.
func UpdateCaloriesToday(total int64) {
	CaloriesTodayTotal.Set(float64(total))
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// StartDBQuery starts a timer for a database operation. The returned function
// records the elapsed duration when called, typically via defer:
//
//	defer metrics.StartDBQuery("ListByDate")()
func StartDBQuery(operation string) func() {
	start := time.Now()
	return func() { RecordDBQuery(operation, time.Since(start)) }
}
