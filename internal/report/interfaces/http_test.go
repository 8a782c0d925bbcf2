package interfaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalog "feedertrack/internal/catalog/domain"
	catalogmem "feedertrack/internal/catalog/infrastructure/memory"
	readings "feedertrack/internal/readings/domain"
	readingsmem "feedertrack/internal/readings/infrastructure/memory"
	reportapp "feedertrack/internal/report/application"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestHandler(t *testing.T) *ReportHandler {
	t.Helper()
	cat := catalogmem.NewCatalog()
	if err := cat.AddRegion(catalog.Region{ID: "r-1", Name: "North"}); err != nil {
		t.Fatalf("seed region: %v", err)
	}
	if err := cat.AddBusinessHub(catalog.BusinessHub{ID: "h-1", Name: "Central Hub", RegionID: "r-1"}); err != nil {
		t.Fatalf("seed hub: %v", err)
	}
	if err := cat.AddFeeder(catalog.Feeder{
		ID: "f-1", Name: "Airport Road",
		BusinessHubID: "h-1", BusinessHubName: "Central Hub",
		RegionID: "r-1", RegionName: "North",
		Band: catalog.BandA20H, DailyEnergyUptake: 100, MonthlyDeliveryPlan: 3000,
	}); err != nil {
		t.Fatalf("seed feeder: %v", err)
	}

	store := readingsmem.NewReadingStore()
	reading, err := readings.NewReading("f-1", day(2025, time.March, 1), 95, "tester", day(2025, time.March, 1))
	if err != nil {
		t.Fatalf("seed reading: %v", err)
	}
	if err := store.Save(context.Background(), reading); err != nil {
		t.Fatalf("seed reading: %v", err)
	}

	clock := fixedClock{now: day(2025, time.March, 2)}
	service, err := reportapp.NewService(cat, cat.Regions(), cat.BusinessHubs(), store, reportapp.WithClock(clock))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewReportHandler(service, clock)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestDailyReportDownload(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/feeders/daily", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type: %q", got)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "Daily_Feeder_Report_2025-03-01_to_2025-03-02.xlsx") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestMonthlyReportRequiresMonthAndYear(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/feeders/monthly?month=13&year=2025", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMonthlyReportDownload(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/feeders/monthly?month=3&year=2025", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "MonthlyFeederReport-2025-03.xlsx") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
}

func TestRangeReportUnknownRegion(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/feeders/range?start=2025-03-01&end=2025-03-02&region=Atlantis", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRangeReportInvertedRange(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/feeders/range?start=2025-03-05&end=2025-03-01", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRangeReportPDFFormat(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/feeders/range?start=2025-03-01&end=2025-03-02&format=pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type: %q", got)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "FeederPerformanceReport-2025-03-02.pdf") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
}

func TestReportRoutesRejectNonGET(t *testing.T) {
	handler := newTestHandler(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports/feeders/daily", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
