package report

import (
	"reflect"
	"testing"
	"time"

	catalog "feedertrack/internal/catalog/domain"
)

func testFeeders() []catalog.Feeder {
	// Sorted by region, hub, name, the order repositories guarantee.
	return []catalog.Feeder{
		{ID: "f-1", Name: "Airport Road", BusinessHubID: "h-1", BusinessHubName: "Central Hub", RegionID: "r-1", RegionName: "North", Band: catalog.BandA20H, DailyEnergyUptake: 100, MonthlyDeliveryPlan: 3000},
		{ID: "f-2", Name: "Stadium Line", BusinessHubID: "h-1", BusinessHubName: "Central Hub", RegionID: "r-1", RegionName: "North", Band: catalog.BandB16H, DailyEnergyUptake: 80, MonthlyDeliveryPlan: 2400},
		{ID: "f-3", Name: "Harbour Feeder", BusinessHubID: "h-2", BusinessHubName: "Coastal Hub", RegionID: "r-2", RegionName: "South", Band: catalog.BandC12H, DailyEnergyUptake: 60, MonthlyDeliveryPlan: 1800},
	}
}

func testInput() Input {
	rng := NewDateRange(day(2025, time.March, 1), day(2025, time.March, 3))
	return Input{
		Range:   rng,
		Feeders: testFeeders(),
		ActualsByFeeder: map[string]map[time.Time]float64{
			// Healthy: day 3 actual 310 vs nomination 300.
			"f-1": {
				day(2025, time.March, 1): 95,
				day(2025, time.March, 2): 200,
				day(2025, time.March, 3): 310,
			},
			// Regressing and under target on its last reading day (day 2).
			"f-2": {
				day(2025, time.March, 1): 90,
				day(2025, time.March, 2): 85,
			},
			// No readings at all.
			"f-3": nil,
		},
		Thresholds: DefaultThresholds(),
	}
}

func TestAssembleGroupsByRegionWithGlobalSerials(t *testing.T) {
	rpt := Assemble(testInput())

	if len(rpt.Groups) != 2 {
		t.Fatalf("expected 2 region groups, got %d", len(rpt.Groups))
	}
	if rpt.Groups[0].Region != "North" || rpt.Groups[1].Region != "South" {
		t.Fatalf("unexpected region order: %s, %s", rpt.Groups[0].Region, rpt.Groups[1].Region)
	}

	serial := 0
	for _, group := range rpt.Groups {
		for _, row := range group.Rows {
			serial++
			if row.Serial != serial {
				t.Fatalf("expected serial %d for %s, got %d", serial, row.FeederName, row.Serial)
			}
		}
	}
	if serial != 3 {
		t.Fatalf("expected 3 rows total, got %d", serial)
	}
}

func TestAssembleRoutesFeedersIntoBuckets(t *testing.T) {
	rpt := Assemble(testInput())

	noFlags := rpt.Bucket(CategoryNoFlags)
	if len(noFlags) != 1 || noFlags[0].FeederID != "f-1" {
		t.Fatalf("expected f-1 alone in No Flags, got %+v", noFlags)
	}

	regressions := rpt.Bucket(CheckActualRegression)
	if len(regressions) != 1 || regressions[0].FeederID != "f-2" {
		t.Fatalf("expected f-2 in regression bucket, got %+v", regressions)
	}
	underNom := rpt.Bucket(CheckUnderNomination)
	if len(underNom) != 1 || underNom[0].FeederID != "f-2" {
		t.Fatalf("expected f-2 in under-nomination bucket, got %+v", underNom)
	}

	// f-1 has positive variance on its last reading day; f-2 does not.
	positive := rpt.Bucket(CategoryPositiveVariance)
	if len(positive) != 1 || positive[0].FeederID != "f-1" {
		t.Fatalf("expected f-1 alone in Positive Variance, got %+v", positive)
	}

	// f-3 has no readings and joins no bucket.
	for _, category := range AnalysisCategories {
		for _, row := range rpt.Bucket(category) {
			if row.FeederID == "f-3" {
				t.Fatalf("feeder without readings must not appear in %q", category)
			}
		}
	}
}

func TestAssembleSummaryListsOnlyFlaggedFeeders(t *testing.T) {
	rpt := Assemble(testInput())

	if len(rpt.Summary) != 1 {
		t.Fatalf("expected 1 summary entry, got %d", len(rpt.Summary))
	}
	entry := rpt.Summary[0]
	if entry.FeederName != "Stadium Line" || entry.Region != "North" {
		t.Fatalf("unexpected summary entry: %+v", entry)
	}
	if !entry.Date.Equal(day(2025, time.March, 2)) {
		t.Fatalf("expected last reading date 2025-03-02, got %s", entry.Date)
	}
	want := []string{CheckActualRegression, CheckUnderNomination, CheckUnderDailyUptake}
	if !reflect.DeepEqual(entry.FailedChecks, want) {
		t.Fatalf("expected failed checks %v, got %v", want, entry.FailedChecks)
	}
}

func TestAssembleUsesStoredPreviousDayOnly(t *testing.T) {
	// The previous-day comparison reads the stored value on the preceding
	// calendar day, not the carried-forward rendering value. With a gap on
	// day 2 the comparison baseline is 0, so no regression fires.
	in := testInput()
	in.ActualsByFeeder = map[string]map[time.Time]float64{
		"f-1": {
			day(2025, time.March, 1): 95,
			day(2025, time.March, 3): 310,
		},
	}
	in.Feeders = in.Feeders[:1]

	rpt := Assemble(in)
	if got := rpt.Bucket(CheckActualRegression); len(got) != 0 {
		t.Fatalf("expected no regression with a gap before the last reading, got %+v", got)
	}
}

func TestAssembleEmptyRangeKeepsRows(t *testing.T) {
	in := testInput()
	in.Range = NewDateRange(day(2025, time.March, 5), day(2025, time.March, 1))

	rpt := Assemble(in)
	if len(rpt.Days) != 0 {
		t.Fatalf("expected no day columns, got %d", len(rpt.Days))
	}
	rows := 0
	for _, group := range rpt.Groups {
		for _, row := range group.Rows {
			rows++
			if len(row.Days) != 0 {
				t.Fatalf("expected no day cells for %s", row.FeederName)
			}
			if row.Classification.Evaluated {
				t.Fatalf("expected %s unevaluated with no days", row.FeederName)
			}
		}
	}
	if rows != 3 {
		t.Fatalf("expected all 3 feeder rows, got %d", rows)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	first := Assemble(testInput())
	second := Assemble(testInput())

	if !reflect.DeepEqual(first.Groups, second.Groups) {
		t.Fatal("expected identical groups across runs")
	}
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Fatal("expected identical summaries across runs")
	}
	for _, category := range AnalysisCategories {
		if !reflect.DeepEqual(first.Bucket(category), second.Bucket(category)) {
			t.Fatalf("bucket %q differs across runs", category)
		}
	}
}
