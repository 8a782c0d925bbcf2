package interfaces

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"feedertrack/internal/observability/metrics"
	reportapp "feedertrack/internal/report/application"
	report "feedertrack/internal/report/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves feeder performance report downloads.
type ReportHandler struct {
	service *reportapp.Service
	clock   reportapp.Clock
}

// NewReportHandler constructs a handler.
func NewReportHandler(service *reportapp.Service, clock reportapp.Clock) (*ReportHandler, error) {
	if service == nil {
		return nil, errors.New("report handler: nil service")
	}
	if clock == nil {
		clock = reportapp.SystemClock{}
	}
	return &ReportHandler{service: service, clock: clock}, nil
}

// ServeHTTP handles report routes under /api/v1/reports/feeders.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/reports/feeders/daily":
		h.handleDaily(w, r)
	case "/api/v1/reports/feeders/monthly":
		h.handleMonthly(w, r)
	case "/api/v1/reports/feeders/range":
		h.handleRange(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// handleDaily serves the month-to-date report, or a single UTC day when
// specific date is given.
func (h *ReportHandler) handleDaily(w http.ResponseWriter, r *http.Request) {
	var (
		rpt *report.Report
		err error
	)
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		rpt, err = h.service.ForDate(r.Context(), date)
	} else {
		rpt, err = h.service.MonthToDate(r.Context())
	}
	if err != nil {
		respondReportError(w, err)
		return
	}
	filename := fmt.Sprintf("Daily_Feeder_Report_%s_to_%s.xlsx", formatDay(rpt.Range.Start), formatDay(rpt.Range.End))
	h.writeWorkbook(w, rpt, filename)
}

func (h *ReportHandler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "month and year are required", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "month and year are required", http.StatusBadRequest)
		return
	}
	rpt, err := h.service.ForMonth(r.Context(), year, time.Month(month))
	if err != nil {
		respondReportError(w, err)
		return
	}
	filename := fmt.Sprintf("MonthlyFeederReport-%d-%02d.xlsx", year, month)
	h.writeWorkbook(w, rpt, filename)
}

func (h *ReportHandler) handleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := time.Parse("2006-01-02", q.Get("start"))
	if err != nil {
		http.Error(w, "start and end dates are required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", q.Get("end"))
	if err != nil {
		http.Error(w, "start and end dates are required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	rpt, err := h.service.ForRange(r.Context(), reportapp.RangeParams{
		Start:       start,
		End:         end,
		Region:      q.Get("region"),
		BusinessHub: q.Get("business_hub"),
	})
	if err != nil {
		respondReportError(w, err)
		return
	}

	today := formatDay(h.clock.Now())
	if q.Get("format") == "pdf" {
		h.writeSummaryPDF(w, rpt, fmt.Sprintf("FeederPerformanceReport-%s.pdf", today))
		return
	}
	h.writeWorkbook(w, rpt, fmt.Sprintf("FeederPerformanceReport-%s.xlsx", today))
}

func (h *ReportHandler) writeWorkbook(w http.ResponseWriter, rpt *report.Report, filename string) {
	start := time.Now()
	data, err := BuildReportXLSX(rpt)
	if err != nil {
		metrics.ObserveReportExport("xlsx", metrics.ResultError, time.Since(start))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	metrics.ObserveReportExport("xlsx", metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
	_, _ = w.Write(data)
}

func (h *ReportHandler) writeSummaryPDF(w http.ResponseWriter, rpt *report.Report, filename string) {
	start := time.Now()
	data, err := BuildFailedChecksPDF(rpt)
	if err != nil {
		metrics.ObserveReportExport("pdf", metrics.ResultError, time.Since(start))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	metrics.ObserveReportExport("pdf", metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
	_, _ = w.Write(data)
}

// respondReportError maps the engine's error taxonomy onto status codes.
// Unknown names and empty matches both 404 but keep distinct messages.
func respondReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrRegionNotFound),
		errors.Is(err, report.ErrBusinessHubNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, report.ErrNoFeeders):
		http.Error(w, "no feeders found with the specified criteria", http.StatusNotFound)
	case errors.Is(err, report.ErrInvalidRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "an error occurred while generating the report", http.StatusInternalServerError)
	}
}
