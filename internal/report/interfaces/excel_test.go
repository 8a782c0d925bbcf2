package interfaces

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	catalog "feedertrack/internal/catalog/domain"
	report "feedertrack/internal/report/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testReport() *report.Report {
	rng := report.NewDateRange(day(2025, time.March, 1), day(2025, time.March, 2))
	return report.Assemble(report.Input{
		Range: rng,
		Feeders: []catalog.Feeder{
			{ID: "f-1", Name: "Airport Road", BusinessHubID: "h-1", BusinessHubName: "Central Hub", RegionID: "r-1", RegionName: "North", Band: catalog.BandA20H, DailyEnergyUptake: 100, MonthlyDeliveryPlan: 3000},
			{ID: "f-2", Name: "Harbour Feeder", BusinessHubID: "h-2", BusinessHubName: "Coastal Hub", RegionID: "r-2", RegionName: "South", Band: catalog.BandC12H, DailyEnergyUptake: 60, MonthlyDeliveryPlan: 1800},
		},
		ActualsByFeeder: map[string]map[time.Time]float64{
			"f-1": {
				day(2025, time.March, 1): 95,
				day(2025, time.March, 2): 210,
			},
			"f-2": {
				day(2025, time.March, 1): 55,
				day(2025, time.March, 2): 50,
			},
		},
		Thresholds: report.DefaultThresholds(),
	})
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	value, err := f.GetCellValue(sheet, ref)
	if err != nil {
		t.Fatalf("get cell %s!%s: %v", sheet, ref, err)
	}
	return value
}

func TestBuildReportXLSXGridLayout(t *testing.T) {
	data, err := BuildReportXLSX(testReport())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	f := openWorkbook(t, data)

	if got := cell(t, f, performanceSheet, "F1"); got != "FEEDER PERFORMANCE TRACKER (2025-03-01 TO 2025-03-02)" {
		t.Fatalf("unexpected title: %q", got)
	}

	// Day headers start at column I and stride by 4.
	if got := cell(t, f, performanceSheet, "I3"); got != "2025-03-01" {
		t.Fatalf("expected first date header, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "M3"); got != "2025-03-02" {
		t.Fatalf("expected second date header, got %q", got)
	}
	for ref, want := range map[string]string{"I4": "Nomination", "J4": "Actual", "K4": "Variance"} {
		if got := cell(t, f, performanceSheet, ref); got != want {
			t.Fatalf("cell %s: expected %q, got %q", ref, want, got)
		}
	}

	// Row 5 is the North banner, row 6 its feeder, then the South pair.
	if got := cell(t, f, performanceSheet, "A5"); got != "North" {
		t.Fatalf("expected North banner, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "C6"); got != "Airport Road" {
		t.Fatalf("expected feeder name, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "A6"); got != "1" {
		t.Fatalf("expected serial 1, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "A7"); got != "South" {
		t.Fatalf("expected South banner, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "A8"); got != "2" {
		t.Fatalf("expected serial 2, got %q", got)
	}

	// f-1 day 1: nomination 100, actual 95, variance -5.
	if got := cell(t, f, performanceSheet, "I6"); got != "100" {
		t.Fatalf("expected nomination 100, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "J6"); got != "95" {
		t.Fatalf("expected actual 95, got %q", got)
	}
	if got := cell(t, f, performanceSheet, "K6"); got != "-5" {
		t.Fatalf("expected variance -5, got %q", got)
	}
}

func TestBuildReportXLSXCreatesAnalysisSheets(t *testing.T) {
	data, err := BuildReportXLSX(testReport())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	f := openWorkbook(t, data)

	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}
	if !sheets[performanceSheet] {
		t.Fatalf("missing main sheet, got %v", f.GetSheetList())
	}
	for _, category := range report.AnalysisCategories {
		if !sheets[category] {
			t.Fatalf("missing analysis sheet %q", category)
		}
	}
}

func TestBuildReportXLSXSummarySheet(t *testing.T) {
	data, err := BuildReportXLSX(testReport())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	f := openWorkbook(t, data)

	sheet := report.CategoryFailedChecksSummary
	for ref, want := range map[string]string{
		"A5": "Region", "B5": "Business Hub", "C5": "Feeder Name", "D5": "Date", "E5": "Failed Checks",
	} {
		if got := cell(t, f, sheet, ref); got != want {
			t.Fatalf("cell %s: expected %q, got %q", ref, want, got)
		}
	}

	// Harbour Feeder regressed and landed under target; it is the only
	// summary entry.
	if got := cell(t, f, sheet, "C6"); got != "Harbour Feeder" {
		t.Fatalf("expected Harbour Feeder in summary, got %q", got)
	}
	if got := cell(t, f, sheet, "C7"); got != "" {
		t.Fatalf("expected single summary entry, found %q", got)
	}
}

func TestBuildReportXLSXNilReport(t *testing.T) {
	if _, err := BuildReportXLSX(nil); err == nil {
		t.Fatal("expected error for nil report")
	}
}

func TestBuildFailedChecksPDF(t *testing.T) {
	data, err := BuildFailedChecksPDF(testReport())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected pdf bytes")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected pdf header, got %q", data[:8])
	}
}
