package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	readings "feedertrack/internal/readings/domain"
)

// DBTX is the subset of *sql.DB the repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	defaultReadingsTable = "feeder_readings"
	defaultHistoryTable  = "feeder_reading_history"
)

// ReadingRepository is a Postgres implementation for feeder readings.
type ReadingRepository struct {
	db           DBTX
	table        string
	historyTable string
}

// NewReadingRepository constructs a repository.
func NewReadingRepository(db DBTX, opts ...Option) *ReadingRepository {
	repo := &ReadingRepository{db: db, table: defaultReadingsTable, historyTable: defaultHistoryTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Option configures the repository.
type Option func(*ReadingRepository)

// WithReadingsTable overrides the default table name.
func WithReadingsTable(table string) Option {
	return func(repo *ReadingRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// ListByDateRange returns all current readings with dates in [start, end]
// inclusive, sorted by date. One bulk query; the report engine groups the
// result by feeder in memory. History is not loaded here, the grid only
// needs current values.
func (r *ReadingRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]readings.Reading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reading repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, feeder_id, reading_date, cumulative_energy_consumption, recorded_by, created_at, updated_at
FROM %s
WHERE reading_date >= $1 AND reading_date <= $2
ORDER BY reading_date`, r.table)

	rows, err := r.db.QueryContext(ctx, query, readings.DayKey(start), readings.DayKey(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []readings.Reading
	for rows.Next() {
		var reading readings.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.FeederID,
			&reading.Date,
			&reading.CumulativeEnergyConsumption,
			&reading.RecordedBy,
			&reading.CreatedAt,
			&reading.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reading.Date = readings.DayKey(reading.Date)
		list = append(list, reading)
	}
	return list, rows.Err()
}

// FindByFeederAndDate loads the current reading for a (feeder, date) pair
// with its correction history. Returns nil when no reading exists.
func (r *ReadingRepository) FindByFeederAndDate(ctx context.Context, feederID string, date time.Time) (*readings.Reading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reading repo: nil db")
	}
	if feederID == "" {
		return nil, readings.ErrEmptyFeederRef
	}

	query := fmt.Sprintf(`
SELECT id, feeder_id, reading_date, cumulative_energy_consumption, recorded_by, created_at, updated_at
FROM %s
WHERE feeder_id = $1 AND reading_date = $2
LIMIT 1`, r.table)

	var reading readings.Reading
	if err := r.db.QueryRowContext(ctx, query, feederID, readings.DayKey(date)).Scan(
		&reading.ID,
		&reading.FeederID,
		&reading.Date,
		&reading.CumulativeEnergyConsumption,
		&reading.RecordedBy,
		&reading.CreatedAt,
		&reading.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	reading.Date = readings.DayKey(reading.Date)

	history, err := r.loadHistory(ctx, reading.ID)
	if err != nil {
		return nil, err
	}
	reading.History = history
	return &reading, nil
}

// Save upserts the current reading row and appends any new history entries.
// History rows are append-only; the conflict target makes re-saving a
// reading idempotent.
func (r *ReadingRepository) Save(ctx context.Context, reading *readings.Reading) error {
	if r == nil || r.db == nil {
		return errors.New("reading repo: nil db")
	}
	if reading == nil {
		return readings.ErrNilReading
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	feeder_id,
	reading_date,
	cumulative_energy_consumption,
	recorded_by
) VALUES (
	$1, $2, $3, $4, $5
)
ON CONFLICT (feeder_id, reading_date)
DO UPDATE SET
	cumulative_energy_consumption = EXCLUDED.cumulative_energy_consumption,
	recorded_by = EXCLUDED.recorded_by,
	updated_at = NOW()`, r.table)

	if _, err := r.db.ExecContext(
		ctx,
		query,
		reading.ID,
		reading.FeederID,
		readings.DayKey(reading.Date),
		reading.CumulativeEnergyConsumption,
		reading.RecordedBy,
	); err != nil {
		return err
	}

	historyQuery := fmt.Sprintf(`
INSERT INTO %s (
	reading_id,
	reading_date,
	cumulative_energy_consumption,
	updated_at,
	updated_by
) VALUES (
	$1, $2, $3, $4, $5
)
ON CONFLICT (reading_id, updated_at) DO NOTHING`, r.historyTable)

	for _, correction := range reading.History {
		if _, err := r.db.ExecContext(
			ctx,
			historyQuery,
			reading.ID,
			readings.DayKey(correction.Date),
			correction.CumulativeEnergyConsumption,
			correction.UpdatedAt,
			correction.UpdatedBy,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReadingRepository) loadHistory(ctx context.Context, readingID string) ([]readings.Correction, error) {
	query := fmt.Sprintf(`
SELECT reading_date, cumulative_energy_consumption, updated_at, updated_by
FROM %s
WHERE reading_id = $1
ORDER BY updated_at`, r.historyTable)

	rows, err := r.db.QueryContext(ctx, query, readingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []readings.Correction
	for rows.Next() {
		var correction readings.Correction
		if err := rows.Scan(
			&correction.Date,
			&correction.CumulativeEnergyConsumption,
			&correction.UpdatedAt,
			&correction.UpdatedBy,
		); err != nil {
			return nil, err
		}
		history = append(history, correction)
	}
	return history, rows.Err()
}
