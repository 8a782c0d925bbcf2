package report

// Check labels, verbatim from the performance tracker workbook. Analysis
// sheets are named after them, so they double as bucket keys.
const (
	CheckActualRegression = "Actual D-0 < Actual D-1"
	CheckUnderNomination  = "< 70% Nom"
	CheckOverNomination   = "> 130% Nom"
	CheckUnderDailyUptake = "< 70% Daily Uptake"
	CheckOverDailyUptake  = "> 130% Daily Uptake"

	CategoryPositiveVariance    = "Positive Variance"
	CategoryNoFlags             = "No Flags"
	CategoryFailedChecksSummary = "Failed Checks Summary"
)

// AnalysisCategories is the fixed, ordered set of analysis buckets.
var AnalysisCategories = []string{
	CheckActualRegression,
	CheckUnderNomination,
	CheckOverNomination,
	CheckUnderDailyUptake,
	CheckOverDailyUptake,
	CategoryPositiveVariance,
	CategoryNoFlags,
	CategoryFailedChecksSummary,
}

// Thresholds are the under/over ratios applied to nomination and daily
// uptake targets.
type Thresholds struct {
	Under float64
	Over  float64
}

// DefaultThresholds returns the observed 70% / 130% compliance band.
func DefaultThresholds() Thresholds {
	return Thresholds{Under: 0.7, Over: 1.3}
}

// ThresholdOutcome is a three-way comparison of a value against a target
// band. Under and Over are mutually exclusive by construction; the sequential
// else-if in earlier report generations is an invariant here, not an accident
// of check ordering.
type ThresholdOutcome int

const (
	OutcomeWithin ThresholdOutcome = iota
	OutcomeUnder
	OutcomeOver
)

// CompareToTarget classifies value against th.Under*target and
// th.Over*target. Under wins when a negative target makes both bounds
// overlap, matching the original evaluation order.
func CompareToTarget(value, target float64, th Thresholds) ThresholdOutcome {
	if value < th.Under*target {
		return OutcomeUnder
	}
	if value > th.Over*target {
		return OutcomeOver
	}
	return OutcomeWithin
}

// LastDayMetrics is the classifier input: the feeder's state on its
// last-reading date. PreviousDayActual is the stored reading on the calendar
// day immediately preceding that date, 0 if absent.
type LastDayMetrics struct {
	DayIndex          int
	Actual            float64
	PreviousDayActual float64
	Nomination        float64
	Variance          float64
	DailyUptake       float64
}

// Classification is the classifier output for one feeder.
// A feeder whose last-reading actual is zero or negative is treated as
// "no data yet": Evaluated is false and the feeder joins no bucket.
type Classification struct {
	Evaluated        bool
	FailedChecks     []string
	PositiveVariance bool
	NoFlags          bool
}

// Classify maps a feeder's last-reading-day metrics to its failed-check
// labels and the positive-variance / no-flags categories. Pure function.
func Classify(m LastDayMetrics, th Thresholds) Classification {
	if m.Actual <= 0 {
		return Classification{}
	}

	var failed []string
	if m.DayIndex > 1 && m.Actual <= m.PreviousDayActual {
		failed = append(failed, CheckActualRegression)
	}
	switch CompareToTarget(m.Actual, m.Nomination, th) {
	case OutcomeUnder:
		failed = append(failed, CheckUnderNomination)
	case OutcomeOver:
		failed = append(failed, CheckOverNomination)
	}
	if m.DayIndex > 1 {
		switch CompareToTarget(m.Actual-m.PreviousDayActual, m.DailyUptake, th) {
		case OutcomeUnder:
			failed = append(failed, CheckUnderDailyUptake)
		case OutcomeOver:
			failed = append(failed, CheckOverDailyUptake)
		}
	}

	return Classification{
		Evaluated:        true,
		FailedChecks:     failed,
		PositiveVariance: m.Variance >= 0,
		NoFlags:          len(failed) == 0,
	}
}
