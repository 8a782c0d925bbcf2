package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalog "feedertrack/internal/catalog/domain"
	"feedertrack/internal/observability/metrics"
	readings "feedertrack/internal/readings/domain"
	report "feedertrack/internal/report/domain"
)

// Clock provides time for report modes that default to "today".
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Service orchestrates report generation: it resolves filters, pulls the
// feeder and reading snapshot in bulk, and runs the assembler over it. Each
// invocation works on its own snapshot, so concurrent report requests never
// share mutable state.
type Service struct {
	feeders    catalog.FeederRepository
	regions    catalog.RegionRepository
	hubs       catalog.BusinessHubRepository
	store      readings.Repository
	clock      Clock
	thresholds report.Thresholds
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the clock.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithThresholds overrides the classifier thresholds.
func WithThresholds(th report.Thresholds) Option {
	return func(s *Service) {
		if th != (report.Thresholds{}) {
			s.thresholds = th
		}
	}
}

// NewService constructs a report service.
func NewService(feeders catalog.FeederRepository, regions catalog.RegionRepository, hubs catalog.BusinessHubRepository, store readings.Repository, opts ...Option) (*Service, error) {
	if feeders == nil {
		return nil, errors.New("report service: nil feeder repository")
	}
	if regions == nil {
		return nil, errors.New("report service: nil region repository")
	}
	if hubs == nil {
		return nil, errors.New("report service: nil business hub repository")
	}
	if store == nil {
		return nil, errors.New("report service: nil reading store")
	}
	s := &Service{
		feeders:    feeders,
		regions:    regions,
		hubs:       hubs,
		store:      store,
		clock:      SystemClock{},
		thresholds: report.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RangeParams select an arbitrary-range report, optionally narrowed to one
// region and/or business hub by case-insensitive exact name.
type RangeParams struct {
	Start       time.Time
	End         time.Time
	Region      string
	BusinessHub string
}

// MonthToDate generates the default daily report: 1st of the current UTC
// month through today.
func (s *Service) MonthToDate(ctx context.Context) (*report.Report, error) {
	return s.generate(ctx, "month_to_date", report.MonthToDate(s.clock.Now()), catalog.Filter{})
}

// ForDate generates the daily report for one specific UTC calendar day.
func (s *Service) ForDate(ctx context.Context, date time.Time) (*report.Report, error) {
	return s.generate(ctx, "single_day", report.SingleDay(date), catalog.Filter{})
}

// ForMonth generates the report covering a full calendar month.
func (s *Service) ForMonth(ctx context.Context, year int, month time.Month) (*report.Report, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.generate(ctx, "monthly", report.NewDateRange(start, end), catalog.Filter{})
}

// ForRange generates an arbitrary-range report. Inverted ranges are rejected
// here; the domain layer would happily expand them to zero day columns, but
// an explicit request for a backwards window is almost certainly a mistake.
func (s *Service) ForRange(ctx context.Context, params RangeParams) (*report.Report, error) {
	rng := report.NewDateRange(params.Start, params.End)
	if rng.IsEmpty() {
		return nil, report.ErrInvalidRange
	}

	filter, err := s.resolveFilter(ctx, params.Region, params.BusinessHub)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, "range", rng, filter)
}

// resolveFilter maps region and hub names to ids. An unknown name is a
// distinct failure from a filter that merely matches zero feeders.
func (s *Service) resolveFilter(ctx context.Context, regionName, hubName string) (catalog.Filter, error) {
	var filter catalog.Filter
	if regionName != "" {
		region, err := s.regions.FindByName(ctx, regionName)
		if err != nil {
			return filter, fmt.Errorf("report service: resolve region: %w", err)
		}
		if region == nil {
			return filter, fmt.Errorf("%w: %q", report.ErrRegionNotFound, regionName)
		}
		filter.RegionID = region.ID
	}
	if hubName != "" {
		hub, err := s.hubs.FindByName(ctx, hubName)
		if err != nil {
			return filter, fmt.Errorf("report service: resolve business hub: %w", err)
		}
		if hub == nil {
			return filter, fmt.Errorf("%w: %q", report.ErrBusinessHubNotFound, hubName)
		}
		filter.BusinessHubID = hub.ID
	}
	return filter, nil
}

func (s *Service) generate(ctx context.Context, mode string, rng report.DateRange, filter catalog.Filter) (*report.Report, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportGenerate(mode, result, time.Since(start))
	}()

	feeders, err := s.feeders.ListFeeders(ctx, filter)
	if err != nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("report service: list feeders: %w", err)
	}
	if len(feeders) == 0 {
		result = metrics.ResultError
		return nil, report.ErrNoFeeders
	}

	actuals, err := s.loadActuals(ctx, rng)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	return report.Assemble(report.Input{
		Range:           rng,
		Feeders:         feeders,
		ActualsByFeeder: actuals,
		Thresholds:      s.thresholds,
	}), nil
}

// loadActuals fetches every reading for the range in one bulk query and
// groups the stored actuals by feeder and day key.
func (s *Service) loadActuals(ctx context.Context, rng report.DateRange) (map[string]map[time.Time]float64, error) {
	actuals := make(map[string]map[time.Time]float64)
	if rng.IsEmpty() {
		return actuals, nil
	}
	list, err := s.store.ListByDateRange(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("report service: list readings: %w", err)
	}
	for _, reading := range list {
		day := readings.DayKey(reading.Date)
		byDay := actuals[reading.FeederID]
		if byDay == nil {
			byDay = make(map[time.Time]float64)
			actuals[reading.FeederID] = byDay
		}
		byDay[day] = reading.CumulativeEnergyConsumption
	}
	return actuals, nil
}
