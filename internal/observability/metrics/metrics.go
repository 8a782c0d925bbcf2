package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "feedertrack_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	reportGenerateTotal   *prometheus.CounterVec
	reportGenerateLatency *prometheus.HistogramVec
	reportExportTotal     *prometheus.CounterVec
	reportExportLatency   *prometheus.HistogramVec
	scheduledRunTotal     *prometheus.CounterVec

	readingUpsertTotal *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		reportGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generate_total",
				Help: "Total report generations by mode and result",
			},
			[]string{"mode", "result"},
		)
		reportGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_generate_latency_seconds",
				Help:    "Report generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode", "result"},
		)
		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		scheduledRunTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "scheduled_report_runs_total",
				Help: "Total scheduled report runs by result",
			},
			[]string{"result"},
		)
		readingUpsertTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reading_upserts_total",
				Help: "Total reading submissions and corrections by kind",
			},
			[]string{"kind"},
		)

		prometheus.MustRegister(
			reportGenerateTotal,
			reportGenerateLatency,
			reportExportTotal,
			reportExportLatency,
			scheduledRunTotal,
			readingUpsertTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveReportGenerate records generation latency and result for a mode.
func ObserveReportGenerate(mode, result string, duration time.Duration) {
	if mode == "" {
		mode = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportGenerateTotal != nil {
		reportGenerateTotal.WithLabelValues(mode, result).Inc()
	}
	if reportGenerateLatency != nil {
		reportGenerateLatency.WithLabelValues(mode, result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result for a format.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncScheduledRun increments the scheduled run counter.
func IncScheduledRun(result string) {
	if result == "" {
		result = resultSuccess
	}
	if scheduledRunTotal != nil {
		scheduledRunTotal.WithLabelValues(result).Inc()
	}
}

// IncReadingUpsert increments reading submission counters.
func IncReadingUpsert(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	if readingUpsertTotal != nil {
		readingUpsertTotal.WithLabelValues(kind).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
