package catalog

import (
	"context"
	"time"
)

// Band is a feeder's service-tier classification. The band determines the
// hours-of-supply commitment and with it the daily energy uptake target.
type Band string

const (
	BandA20H Band = "A20H"
	BandB16H Band = "B16H"
	BandC12H Band = "C12H"
	BandD8H  Band = "D8H"
	BandE4H  Band = "E4H"
)

// IsValid reports whether the band is one of the known service tiers.
func (b Band) IsValid() bool {
	switch b {
	case BandA20H, BandB16H, BandC12H, BandD8H, BandE4H:
		return true
	}
	return false
}

// Region is a named grouping of business hubs and feeders.
type Region struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks region invariants.
func (r Region) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// BusinessHub is a named operating unit inside a region.
type BusinessHub struct {
	ID        string
	Name      string
	RegionID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks business hub invariants.
func (h BusinessHub) Validate() error {
	if h.ID == "" {
		return ErrEmptyID
	}
	if h.Name == "" {
		return ErrEmptyName
	}
	if h.RegionID == "" {
		return ErrEmptyRegionRef
	}
	return nil
}

// Feeder is a medium-voltage distribution line instrumented with a cumulative
// energy meter. The region reference is stored on the feeder itself and is
// not required to match the hub's region.
type Feeder struct {
	ID                       string
	Name                     string
	BusinessHubID            string
	BusinessHubName          string
	RegionID                 string
	RegionName               string
	Band                     Band
	DailyEnergyUptake        float64
	MonthlyDeliveryPlan      float64
	PreviousMonthConsumption float64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Validate checks feeder invariants.
func (f Feeder) Validate() error {
	if f.ID == "" {
		return ErrEmptyID
	}
	if f.Name == "" {
		return ErrEmptyName
	}
	if f.BusinessHubID == "" {
		return ErrEmptyHubRef
	}
	if f.RegionID == "" {
		return ErrEmptyRegionRef
	}
	if !f.Band.IsValid() {
		return ErrInvalidBand
	}
	return nil
}

// Filter narrows a feeder listing to a region and/or business hub.
type Filter struct {
	RegionID      string
	BusinessHubID string
}

// FeederRepository lists feeders with hub and region display names resolved.
// Implementations must return feeders sorted by region name, then business hub
// name, then feeder name, so report rows come out in a stable order.
type FeederRepository interface {
	ListFeeders(ctx context.Context, filter Filter) ([]Feeder, error)
}

// RegionRepository resolves regions by name.
type RegionRepository interface {
	// FindByName matches the name case-insensitively and returns nil when
	// no region exists with that name.
	FindByName(ctx context.Context, name string) (*Region, error)
}

// BusinessHubRepository resolves business hubs by name.
type BusinessHubRepository interface {
	// FindByName matches the name case-insensitively and returns nil when
	// no hub exists with that name.
	FindByName(ctx context.Context, name string) (*BusinessHub, error)
}
