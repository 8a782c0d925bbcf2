package readings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Correction is a superseded reading value kept for audit.
type Correction struct {
	Date                        time.Time
	CumulativeEnergyConsumption float64
	UpdatedAt                   time.Time
	UpdatedBy                   string
}

// Reading is one feeder's cumulative energy counter value as observed on one
// calendar day. Date carries a UTC day key; time-of-day is irrelevant.
// The counter is intended to be monotonic but is not validated as such.
type Reading struct {
	ID                          string
	FeederID                    string
	Date                        time.Time
	CumulativeEnergyConsumption float64
	RecordedBy                  string
	History                     []Correction
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// NewReading creates the first daily submission for a (feeder, date) pair.
func NewReading(feederID string, date time.Time, value float64, recordedBy string, now time.Time) (*Reading, error) {
	if feederID == "" {
		return nil, ErrEmptyFeederRef
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	if recordedBy == "" {
		return nil, ErrEmptyRecorder
	}
	return &Reading{
		ID:                          uuid.NewString(),
		FeederID:                    feederID,
		Date:                        DayKey(date),
		CumulativeEnergyConsumption: value,
		RecordedBy:                  recordedBy,
		CreatedAt:                   now.UTC(),
		UpdatedAt:                   now.UTC(),
	}, nil
}

// Correct replaces the current value and pushes the old one into History.
// Corrections never delete; the audit trail is append-only.
func (r *Reading) Correct(value float64, updatedBy string, now time.Time) error {
	if r == nil {
		return ErrNilReading
	}
	if updatedBy == "" {
		return ErrEmptyRecorder
	}
	r.History = append(r.History, Correction{
		Date:                        r.Date,
		CumulativeEnergyConsumption: r.CumulativeEnergyConsumption,
		UpdatedAt:                   now.UTC(),
		UpdatedBy:                   updatedBy,
	})
	r.CumulativeEnergyConsumption = value
	r.RecordedBy = updatedBy
	r.UpdatedAt = now.UTC()
	return nil
}

// DayKey normalizes a timestamp to its UTC midnight day boundary.
func DayKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Repository manages reading persistence. ListByDateRange must return all
// readings whose date falls within [start, end] inclusive in one query; the
// report engine groups them in memory rather than querying per feeder per day.
type Repository interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Reading, error)
	FindByFeederAndDate(ctx context.Context, feederID string, date time.Time) (*Reading, error)
	Save(ctx context.Context, reading *Reading) error
}
