package report

// Nomination is the expected cumulative delivery for a feeder as of a 1-based
// day index within the reporting window: dailyUptake * dayIndex. The linear
// model assumes uniform delivery from a zero baseline at the window start.
// The index is the position within the expanded range, not the calendar
// day-of-month, and negative or zero uptake is not clamped; both are kept
// for parity with existing reports.
func Nomination(dailyUptake float64, dayIndex int) float64 {
	return dailyUptake * float64(dayIndex)
}
