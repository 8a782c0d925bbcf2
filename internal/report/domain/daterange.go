package report

import "time"

// DateRange is an inclusive pair of calendar days, normalized to UTC
// midnight boundaries. A range whose end precedes its start is legal and
// simply expands to no days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both bounds to UTC midnight.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: dayStart(start), End: dayStart(end)}
}

// SingleDay is the range covering exactly one calendar day.
func SingleDay(date time.Time) DateRange {
	d := dayStart(date)
	return DateRange{Start: d, End: d}
}

// MonthToDate is the range from the 1st of now's UTC month through now's day.
func MonthToDate(now time.Time) DateRange {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: dayStart(now)}
}

// Days expands the range into an ordered sequence of UTC-midnight days,
// one per calendar day, start through end inclusive. An inverted range
// yields an empty sequence, not an error.
func (r DateRange) Days() []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsEmpty reports whether the range expands to no days.
func (r DateRange) IsEmpty() bool {
	return r.End.Before(r.Start)
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
