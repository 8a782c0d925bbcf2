package report

import "time"

// DayCell is one (nomination, actual, variance) triple in a feeder row.
type DayCell struct {
	Date       time.Time
	Nomination float64
	Actual     float64
	Variance   float64
	HasReading bool
}

// BuildDailySeries computes the per-day cells for one feeder, left to right.
// Days without a stored actual carry forward the previously computed actual
// (0 when no earlier day had data). The fill-forward exists only for report
// rendering; callers must never write these values back to the reading store.
func BuildDailySeries(dailyUptake float64, days []time.Time, actuals map[time.Time]float64) []DayCell {
	cells := make([]DayCell, 0, len(days))
	prevActual := 0.0
	for i, day := range days {
		actual, ok := actuals[day]
		if !ok {
			actual = prevActual
		}
		nomination := Nomination(dailyUptake, i+1)
		cells = append(cells, DayCell{
			Date:       day,
			Nomination: nomination,
			Actual:     actual,
			Variance:   actual - nomination,
			HasReading: ok,
		})
		prevActual = actual
	}
	return cells
}

// LastReadingDay returns the latest day within the range that has a stored
// actual, with its 1-based index. This may be earlier than the range's final
// day when reporting runs mid-period with a gap.
func LastReadingDay(days []time.Time, actuals map[time.Time]float64) (time.Time, int, bool) {
	for i := len(days) - 1; i >= 0; i-- {
		if _, ok := actuals[days[i]]; ok {
			return days[i], i + 1, true
		}
	}
	return time.Time{}, 0, false
}
