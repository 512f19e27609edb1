package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startTime = time.Now()

	// UptimeSeconds tracks the marketplace server uptime in seconds
	UptimeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marketplace",
		Subsystem: "ledger",
		Name:      "uptime_seconds",
		Help:      "The uptime of the marketplace server in seconds",
	})

	// LedgerOperationsTotal counts ledger operations by name and outcome
	LedgerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Total ledger operations processed",
	}, []string{"operation", "status"})

	// LedgerOperationDuration observes ledger operation latency
	LedgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketplace",
		Subsystem: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Ledger operation duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// TasksTotal tracks how many tasks have ever been created
	TasksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marketplace",
		Subsystem: "ledger",
		Name:      "tasks_total",
		Help:      "Total tasks ever created",
	})

	// SweepRunsTotal counts sweeper passes by outcome
	SweepRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "sweeper",
		Name:      "runs_total",
		Help:      "Total deadline sweeper passes",
	}, []string{"status"})

	// ArchiveWritesTotal counts archive writes by table and outcome
	ArchiveWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "archive",
		Name:      "writes_total",
		Help:      "Total durable archive writes",
	}, []string{"table", "status"})
)

// StartUptimeTracking updates the uptime gauge periodically.
func StartUptimeTracking() {
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			UptimeSeconds.Set(time.Since(startTime).Seconds())
		}
	}()
}

// TrackLedgerOperation records the duration and outcome of one ledger
// operation. Use as: track := TrackLedgerOperation("create_task"); ...;
// track(err).
func TrackLedgerOperation(operation string) func(error) {
	start := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		LedgerOperationsTotal.WithLabelValues(operation, status).Inc()
		LedgerOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// TrackArchiveWrite records the outcome of one archive write.
func TrackArchiveWrite(table string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ArchiveWritesTotal.WithLabelValues(table, status).Inc()
}
