package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedertrack/internal/observability/metrics"
	readings "feedertrack/internal/readings/domain"
)

// Clock provides time for submissions.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Service handles daily reading submissions and corrections.
type Service struct {
	store readings.Repository
	clock Clock
}

// NewService constructs a readings service.
func NewService(store readings.Repository, clock Clock) (*Service, error) {
	if store == nil {
		return nil, errors.New("readings service: nil store")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{store: store, clock: clock}, nil
}

// Submit records a feeder's cumulative counter value for a calendar day.
// The first submission for a (feeder, date) pair creates the reading; a
// repeat submission is a correction that pushes the old value into history.
// Returns the stored reading and whether it was a correction.
func (s *Service) Submit(ctx context.Context, feederID string, date time.Time, value float64, recordedBy string) (*readings.Reading, bool, error) {
	existing, err := s.store.FindByFeederAndDate(ctx, feederID, date)
	if err != nil {
		return nil, false, fmt.Errorf("readings service: find reading: %w", err)
	}

	now := s.clock.Now()
	if existing == nil {
		reading, err := readings.NewReading(feederID, date, value, recordedBy, now)
		if err != nil {
			return nil, false, err
		}
		if err := s.store.Save(ctx, reading); err != nil {
			return nil, false, fmt.Errorf("readings service: save reading: %w", err)
		}
		metrics.IncReadingUpsert("submit")
		return reading, false, nil
	}

	if err := existing.Correct(value, recordedBy, now); err != nil {
		return nil, false, err
	}
	if err := s.store.Save(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("readings service: save correction: %w", err)
	}
	metrics.IncReadingUpsert("correct")
	return existing, true, nil
}

// Get loads the current reading with its correction history.
func (s *Service) Get(ctx context.Context, feederID string, date time.Time) (*readings.Reading, error) {
	return s.store.FindByFeederAndDate(ctx, feederID, date)
}
