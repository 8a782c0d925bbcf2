package report

import (
	"time"

	catalog "feedertrack/internal/catalog/domain"
)

// Row is one feeder's line in the performance grid: static attributes plus
// one DayCell per day in the expanded range.
type Row struct {
	Serial                   int
	FeederID                 string
	FeederName               string
	BusinessHub              string
	Region                   string
	Band                     string
	DailyEnergyUptake        float64
	MonthlyDeliveryPlan      float64
	PreviousMonthConsumption float64
	Days                     []DayCell
	LastReadingDate          time.Time
	Classification           Classification
}

// RegionGroup is the set of rows for one region, in upstream feeder order.
type RegionGroup struct {
	Region string
	Rows   []Row
}

// SummaryEntry is one line of the failed-checks summary.
type SummaryEntry struct {
	Region       string
	BusinessHub  string
	FeederName   string
	Date         time.Time
	FailedChecks []string
}

// Report is the assembled performance report: per-region row groups plus the
// named analysis buckets.
type Report struct {
	Range   DateRange
	Days    []time.Time
	Groups  []RegionGroup
	buckets map[string][]Row
	Summary []SummaryEntry
}

// Bucket returns the rows routed into a named analysis category.
func (r *Report) Bucket(name string) []Row {
	if r == nil || r.buckets == nil {
		return nil
	}
	return r.buckets[name]
}

// Input is the immutable snapshot the assembler works from. Feeders must
// arrive sorted by region, business hub, then name; ActualsByFeeder maps
// feeder id to day-keyed stored actuals within the range.
type Input struct {
	Range           DateRange
	Feeders         []catalog.Feeder
	ActualsByFeeder map[string]map[time.Time]float64
	Thresholds      Thresholds
}

// Assemble lays out the date-indexed grid and classifies every feeder from
// its last-reading-day metrics. It is a single synchronous pass over the
// snapshot: no inputs are mutated and repeated runs over identical inputs
// produce identical output.
func Assemble(in Input) *Report {
	if in.Thresholds == (Thresholds{}) {
		in.Thresholds = DefaultThresholds()
	}
	days := in.Range.Days()

	rpt := &Report{
		Range:   in.Range,
		Days:    days,
		buckets: make(map[string][]Row, len(AnalysisCategories)),
	}

	// Partition by the feeder's own region reference, keeping first-seen
	// region order from the sorted feeder list.
	var regionOrder []string
	byRegion := make(map[string][]catalog.Feeder)
	for _, feeder := range in.Feeders {
		name := feeder.RegionName
		if name == "" {
			name = "Unknown"
		}
		if _, seen := byRegion[name]; !seen {
			regionOrder = append(regionOrder, name)
		}
		byRegion[name] = append(byRegion[name], feeder)
	}

	serial := 1
	for _, regionName := range regionOrder {
		group := RegionGroup{Region: regionName}
		for _, feeder := range byRegion[regionName] {
			actuals := in.ActualsByFeeder[feeder.ID]
			row := Row{
				Serial:                   serial,
				FeederID:                 feeder.ID,
				FeederName:               feeder.Name,
				BusinessHub:              hubName(feeder),
				Region:                   regionName,
				Band:                     string(feeder.Band),
				DailyEnergyUptake:        feeder.DailyEnergyUptake,
				MonthlyDeliveryPlan:      feeder.MonthlyDeliveryPlan,
				PreviousMonthConsumption: feeder.PreviousMonthConsumption,
				Days:                     BuildDailySeries(feeder.DailyEnergyUptake, days, actuals),
			}
			serial++

			if lastDay, dayIndex, ok := LastReadingDay(days, actuals); ok {
				row.LastReadingDate = lastDay
				prevActual := actuals[lastDay.AddDate(0, 0, -1)]
				actual := actuals[lastDay]
				nomination := Nomination(feeder.DailyEnergyUptake, dayIndex)
				row.Classification = Classify(LastDayMetrics{
					DayIndex:          dayIndex,
					Actual:            actual,
					PreviousDayActual: prevActual,
					Nomination:        nomination,
					Variance:          actual - nomination,
					DailyUptake:       feeder.DailyEnergyUptake,
				}, in.Thresholds)
			}

			rpt.route(row)
			group.Rows = append(group.Rows, row)
		}
		rpt.Groups = append(rpt.Groups, group)
	}

	return rpt
}

// route copies a row into every analysis bucket its classification names.
// A feeder can sit in several buckets at once; No Flags alone is exclusive
// with the failed-checks summary.
func (r *Report) route(row Row) {
	cls := row.Classification
	if !cls.Evaluated {
		return
	}
	for _, check := range cls.FailedChecks {
		r.buckets[check] = append(r.buckets[check], row)
	}
	if cls.PositiveVariance {
		r.buckets[CategoryPositiveVariance] = append(r.buckets[CategoryPositiveVariance], row)
	}
	if cls.NoFlags {
		r.buckets[CategoryNoFlags] = append(r.buckets[CategoryNoFlags], row)
	} else {
		r.Summary = append(r.Summary, SummaryEntry{
			Region:       row.Region,
			BusinessHub:  row.BusinessHub,
			FeederName:   row.FeederName,
			Date:         row.LastReadingDate,
			FailedChecks: cls.FailedChecks,
		})
	}
}

func hubName(feeder catalog.Feeder) string {
	if feeder.BusinessHubName == "" {
		return "Unknown"
	}
	return feeder.BusinessHubName
}
