package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"feedertrack/internal/auth"
	catalogpg "feedertrack/internal/catalog/infrastructure/postgres"
	"feedertrack/internal/notify"
	"feedertrack/internal/observability/metrics"
	readingsapp "feedertrack/internal/readings/application"
	readingspg "feedertrack/internal/readings/infrastructure/postgres"
	readingshttp "feedertrack/internal/readings/interfaces/http"
	reportapp "feedertrack/internal/report/application"
	reporthttp "feedertrack/internal/report/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)

	feederRepo := catalogpg.NewFeederRepository(db)
	regionRepo := catalogpg.NewRegionRepository(db)
	hubRepo := catalogpg.NewBusinessHubRepository(db)
	readingRepo := readingspg.NewReadingRepository(db)

	reportCfg, err := reportapp.LoadConfig()
	if err != nil {
		logger.Fatalf("report config error: %v", err)
	}

	reportService, err := reportapp.NewService(feederRepo, regionRepo, hubRepo, readingRepo,
		reportapp.WithThresholds(reportCfg.ClassifierThresholds()))
	if err != nil {
		logger.Fatalf("report service error: %v", err)
	}
	reportHandler, err := reporthttp.NewReportHandler(reportService, nil)
	if err != nil {
		logger.Fatalf("report handler error: %v", err)
	}

	readingService, err := readingsapp.NewService(readingRepo, nil)
	if err != nil {
		logger.Fatalf("reading service error: %v", err)
	}
	readingHandler, err := readingshttp.NewHandler(readingService)
	if err != nil {
		logger.Fatalf("reading handler error: %v", err)
	}

	notifier, err := notify.NewWebhookNotifier(reportCfg.WebhookURL, logger)
	if err != nil {
		logger.Fatalf("notifier error: %v", err)
	}

	scheduler := cron.New()
	if notifier.Configured() {
		_, err := scheduler.AddFunc(reportCfg.Schedule.DailyCron, func() {
			if err := runScheduledReport(reportService, notifier, logger); err != nil {
				metrics.IncScheduledRun(metrics.ResultError)
				logger.Printf("scheduled report error: %v", err)
				return
			}
			metrics.IncScheduledRun(metrics.ResultSuccess)
		})
		if err != nil {
			logger.Fatalf("scheduler error: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Printf("scheduled daily report at %q", reportCfg.Schedule.DailyCron)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/reports/feeders/daily", reportHandler)
	mux.Handle("/api/v1/reports/feeders/monthly", reportHandler)
	mux.Handle("/api/v1/reports/feeders/range", reportHandler)
	mux.Handle("/api/v1/readings", readingHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

// runScheduledReport renders the month-to-date workbook and ships it to the
// configured webhook.
func runScheduledReport(service *reportapp.Service, notifier *notify.WebhookNotifier, logger *log.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rpt, err := service.MonthToDate(ctx)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	data, err := reporthttp.BuildReportXLSX(rpt)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	filename := fmt.Sprintf("Daily_Feeder_Report_%s_to_%s.xlsx",
		rpt.Range.Start.Format("2006-01-02"), rpt.Range.End.Format("2006-01-02"))
	logger.Printf("scheduled report generated: %s (%d bytes)", filename, len(data))

	return notifier.Send(ctx, "Daily feeder performance report", notify.Attachment{
		Filename:    filename,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	})
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
