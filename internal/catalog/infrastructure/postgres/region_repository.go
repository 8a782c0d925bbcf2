package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	catalog "feedertrack/internal/catalog/domain"
)

const (
	defaultRegionsTable      = "regions"
	defaultBusinessHubsTable = "business_hubs"
)

// RegionRepository is a Postgres implementation for regions.
type RegionRepository struct {
	db    DBTX
	table string
}

// NewRegionRepository constructs a repository.
func NewRegionRepository(db DBTX) *RegionRepository {
	return &RegionRepository{db: db, table: defaultRegionsTable}
}

// FindByName matches a region name case-insensitively. Returns nil when no
// region carries that name.
func (r *RegionRepository) FindByName(ctx context.Context, name string) (*catalog.Region, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("region repo: nil db")
	}
	if name == "" {
		return nil, errors.New("region repo: empty name")
	}

	query := fmt.Sprintf(`
SELECT id, name, created_at, updated_at
FROM %s
WHERE LOWER(name) = LOWER($1)
LIMIT 1`, r.table)

	var region catalog.Region
	if err := r.db.QueryRowContext(ctx, query, name).Scan(
		&region.ID,
		&region.Name,
		&region.CreatedAt,
		&region.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	region.CreatedAt = region.CreatedAt.UTC()
	region.UpdatedAt = region.UpdatedAt.UTC()
	return &region, nil
}

// BusinessHubRepository is a Postgres implementation for business hubs.
type BusinessHubRepository struct {
	db    DBTX
	table string
}

// NewBusinessHubRepository constructs a repository.
func NewBusinessHubRepository(db DBTX) *BusinessHubRepository {
	return &BusinessHubRepository{db: db, table: defaultBusinessHubsTable}
}

// FindByName matches a hub name case-insensitively. Returns nil when no hub
// carries that name.
func (r *BusinessHubRepository) FindByName(ctx context.Context, name string) (*catalog.BusinessHub, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("business hub repo: nil db")
	}
	if name == "" {
		return nil, errors.New("business hub repo: empty name")
	}

	query := fmt.Sprintf(`
SELECT id, name, region_id, created_at, updated_at
FROM %s
WHERE LOWER(name) = LOWER($1)
LIMIT 1`, r.table)

	var hub catalog.BusinessHub
	if err := r.db.QueryRowContext(ctx, query, name).Scan(
		&hub.ID,
		&hub.Name,
		&hub.RegionID,
		&hub.CreatedAt,
		&hub.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	hub.CreatedAt = hub.CreatedAt.UTC()
	hub.UpdatedAt = hub.UpdatedAt.UTC()
	return &hub, nil
}
