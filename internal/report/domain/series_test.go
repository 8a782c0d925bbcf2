package report

import (
	"testing"
	"time"
)

func TestNominationScalesLinearly(t *testing.T) {
	for i := 1; i <= 5; i++ {
		got := Nomination(100, i)
		want := float64(100 * i)
		if got != want {
			t.Fatalf("day %d: expected %.0f, got %.0f", i, want, got)
		}
	}
	if got := Nomination(0, 3); got != 0 {
		t.Fatalf("expected zero nomination for zero uptake, got %.0f", got)
	}
}

func TestBuildDailySeriesCarriesForwardActuals(t *testing.T) {
	days := NewDateRange(day(2025, time.March, 1), day(2025, time.March, 4)).Days()
	actuals := map[time.Time]float64{
		day(2025, time.March, 1): 90,
		day(2025, time.March, 3): 250,
	}

	cells := BuildDailySeries(100, days, actuals)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}

	wantActuals := []float64{90, 90, 250, 250}
	wantHas := []bool{true, false, true, false}
	for i, cell := range cells {
		if cell.Actual != wantActuals[i] {
			t.Fatalf("cell %d: expected actual %.0f, got %.0f", i, wantActuals[i], cell.Actual)
		}
		if cell.HasReading != wantHas[i] {
			t.Fatalf("cell %d: expected HasReading=%v", i, wantHas[i])
		}
		wantNom := float64(100 * (i + 1))
		if cell.Nomination != wantNom {
			t.Fatalf("cell %d: expected nomination %.0f, got %.0f", i, wantNom, cell.Nomination)
		}
		if cell.Variance != cell.Actual-cell.Nomination {
			t.Fatalf("cell %d: variance mismatch", i)
		}
	}
}

func TestBuildDailySeriesNoReadingsAtAll(t *testing.T) {
	days := NewDateRange(day(2025, time.March, 1), day(2025, time.March, 3)).Days()
	cells := BuildDailySeries(50, days, nil)
	for i, cell := range cells {
		if cell.Actual != 0 {
			t.Fatalf("cell %d: expected zero actual, got %.0f", i, cell.Actual)
		}
		if cell.HasReading {
			t.Fatalf("cell %d: expected HasReading=false", i)
		}
	}
}

func TestLastReadingDaySkipsTrailingGap(t *testing.T) {
	days := NewDateRange(day(2025, time.March, 1), day(2025, time.March, 5)).Days()
	actuals := map[time.Time]float64{
		day(2025, time.March, 2): 100,
		day(2025, time.March, 3): 200,
	}

	last, index, ok := LastReadingDay(days, actuals)
	if !ok {
		t.Fatal("expected a last reading day")
	}
	if !last.Equal(day(2025, time.March, 3)) {
		t.Fatalf("expected 2025-03-03, got %s", last)
	}
	if index != 3 {
		t.Fatalf("expected 1-based index 3, got %d", index)
	}
}

func TestLastReadingDayEmpty(t *testing.T) {
	days := NewDateRange(day(2025, time.March, 1), day(2025, time.March, 5)).Days()
	if _, _, ok := LastReadingDay(days, nil); ok {
		t.Fatal("expected no last reading day")
	}
}
