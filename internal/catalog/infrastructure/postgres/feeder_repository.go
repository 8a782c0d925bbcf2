package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	catalog "feedertrack/internal/catalog/domain"
)

// DBTX is the subset of *sql.DB the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const defaultFeedersTable = "feeders"

// FeederRepository is a Postgres implementation for feeders.
type FeederRepository struct {
	db    DBTX
	table string
}

// NewFeederRepository constructs a repository.
func NewFeederRepository(db DBTX, opts ...FeederOption) *FeederRepository {
	repo := &FeederRepository{db: db, table: defaultFeedersTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// FeederOption configures the repository.
type FeederOption func(*FeederRepository)

// WithFeedersTable overrides the default table name.
func WithFeedersTable(table string) FeederOption {
	return func(repo *FeederRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// ListFeeders returns feeders with hub and region names resolved, sorted by
// region name, business hub name, then feeder name.
func (r *FeederRepository) ListFeeders(ctx context.Context, filter catalog.Filter) ([]catalog.Feeder, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("feeder repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT f.id, f.name, f.business_hub_id, h.name, f.region_id, g.name, f.band,
	f.daily_energy_uptake, f.monthly_delivery_plan, f.previous_month_consumption,
	f.created_at, f.updated_at
FROM %s f
JOIN business_hubs h ON h.id = f.business_hub_id
JOIN regions g ON g.id = f.region_id
WHERE ($1 = '' OR f.region_id = $1)
  AND ($2 = '' OR f.business_hub_id = $2)
ORDER BY g.name, h.name, f.name`, r.table)

	rows, err := r.db.QueryContext(ctx, query, filter.RegionID, filter.BusinessHubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feeders []catalog.Feeder
	for rows.Next() {
		var feeder catalog.Feeder
		if err := rows.Scan(
			&feeder.ID,
			&feeder.Name,
			&feeder.BusinessHubID,
			&feeder.BusinessHubName,
			&feeder.RegionID,
			&feeder.RegionName,
			&feeder.Band,
			&feeder.DailyEnergyUptake,
			&feeder.MonthlyDeliveryPlan,
			&feeder.PreviousMonthConsumption,
			&feeder.CreatedAt,
			&feeder.UpdatedAt,
		); err != nil {
			return nil, err
		}
		feeder.CreatedAt = feeder.CreatedAt.UTC()
		feeder.UpdatedAt = feeder.UpdatedAt.UTC()
		feeders = append(feeders, feeder)
	}
	return feeders, rows.Err()
}

// Save upserts a feeder.
func (r *FeederRepository) Save(ctx context.Context, feeder *catalog.Feeder) error {
	if r == nil || r.db == nil {
		return errors.New("feeder repo: nil db")
	}
	if feeder == nil {
		return errors.New("feeder repo: nil feeder")
	}
	if err := feeder.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	name,
	business_hub_id,
	region_id,
	band,
	daily_energy_uptake,
	monthly_delivery_plan,
	previous_month_consumption
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8
)
ON CONFLICT (id)
DO UPDATE SET
	name = EXCLUDED.name,
	business_hub_id = EXCLUDED.business_hub_id,
	region_id = EXCLUDED.region_id,
	band = EXCLUDED.band,
	daily_energy_uptake = EXCLUDED.daily_energy_uptake,
	monthly_delivery_plan = EXCLUDED.monthly_delivery_plan,
	previous_month_consumption = EXCLUDED.previous_month_consumption,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(
		ctx,
		query,
		feeder.ID,
		feeder.Name,
		feeder.BusinessHubID,
		feeder.RegionID,
		string(feeder.Band),
		feeder.DailyEnergyUptake,
		feeder.MonthlyDeliveryPlan,
		feeder.PreviousMonthConsumption,
	)
	return err
}
