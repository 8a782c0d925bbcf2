package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "feeders_total",
			Help: "Feeders in the catalog",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM feeders")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "readings_today",
			Help: "Readings recorded for the current UTC day",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM feeder_readings WHERE reading_date = (NOW() AT TIME ZONE 'utc')::date")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
