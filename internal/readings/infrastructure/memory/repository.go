package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	readings "feedertrack/internal/readings/domain"
)

// ReadingStore is an in-memory reading repository keyed by (feeder, day).
type ReadingStore struct {
	mu   sync.RWMutex
	data map[string]*readings.Reading
}

// NewReadingStore constructs an empty store.
func NewReadingStore() *ReadingStore {
	return &ReadingStore{data: make(map[string]*readings.Reading)}
}

func key(feederID string, date time.Time) string {
	return feederID + "|" + readings.DayKey(date).Format("20060102")
}

// ListByDateRange returns readings with dates in [start, end] inclusive,
// sorted by date.
func (s *ReadingStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]readings.Reading, error) {
	_ = ctx
	startDay := readings.DayKey(start)
	endDay := readings.DayKey(end)

	s.mu.RLock()
	var list []readings.Reading
	for _, reading := range s.data {
		if reading.Date.Before(startDay) || reading.Date.After(endDay) {
			continue
		}
		list = append(list, cloneReading(reading))
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].FeederID < list[j].FeederID
	})
	return list, nil
}

// FindByFeederAndDate loads the current reading, nil when absent.
func (s *ReadingStore) FindByFeederAndDate(ctx context.Context, feederID string, date time.Time) (*readings.Reading, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	reading, ok := s.data[key(feederID, date)]
	if !ok {
		return nil, nil
	}
	clone := cloneReading(reading)
	return &clone, nil
}

// Save stores a copy of the reading, replacing any current one for the
// (feeder, date) pair.
func (s *ReadingStore) Save(ctx context.Context, reading *readings.Reading) error {
	_ = ctx
	if reading == nil {
		return readings.ErrNilReading
	}
	clone := cloneReading(reading)
	s.mu.Lock()
	s.data[key(reading.FeederID, reading.Date)] = &clone
	s.mu.Unlock()
	return nil
}

func cloneReading(reading *readings.Reading) readings.Reading {
	clone := *reading
	clone.History = append([]readings.Correction(nil), reading.History...)
	return clone
}
