package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	catalog "feedertrack/internal/catalog/domain"
)

// Catalog is an in-memory feeder catalog. It backs tests and keeps the
// repository contracts honest: listings come out sorted the same way the
// Postgres implementation sorts them.
type Catalog struct {
	mu      sync.RWMutex
	regions []catalog.Region
	hubs    []catalog.BusinessHub
	feeders []catalog.Feeder
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// AddRegion registers a region.
func (c *Catalog) AddRegion(region catalog.Region) error {
	if err := region.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.regions = append(c.regions, region)
	c.mu.Unlock()
	return nil
}

// AddBusinessHub registers a business hub.
func (c *Catalog) AddBusinessHub(hub catalog.BusinessHub) error {
	if err := hub.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.hubs = append(c.hubs, hub)
	c.mu.Unlock()
	return nil
}

// AddFeeder registers a feeder.
func (c *Catalog) AddFeeder(feeder catalog.Feeder) error {
	if err := feeder.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.feeders = append(c.feeders, feeder)
	c.mu.Unlock()
	return nil
}

// ListFeeders returns matching feeders sorted by region, hub, then name.
func (c *Catalog) ListFeeders(ctx context.Context, filter catalog.Filter) ([]catalog.Feeder, error) {
	_ = ctx
	c.mu.RLock()
	defer c.mu.RUnlock()

	var list []catalog.Feeder
	for _, feeder := range c.feeders {
		if filter.RegionID != "" && feeder.RegionID != filter.RegionID {
			continue
		}
		if filter.BusinessHubID != "" && feeder.BusinessHubID != filter.BusinessHubID {
			continue
		}
		list = append(list, feeder)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].RegionName != list[j].RegionName {
			return list[i].RegionName < list[j].RegionName
		}
		if list[i].BusinessHubName != list[j].BusinessHubName {
			return list[i].BusinessHubName < list[j].BusinessHubName
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// FindByName matches a region name case-insensitively.
func (c *Catalog) FindByName(ctx context.Context, name string) (*catalog.Region, error) {
	_ = ctx
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, region := range c.regions {
		if strings.EqualFold(region.Name, name) {
			found := region
			return &found, nil
		}
	}
	return nil, nil
}

// Regions exposes the catalog as a RegionRepository.
func (c *Catalog) Regions() catalog.RegionRepository { return regionView{c} }

// BusinessHubs exposes the catalog as a BusinessHubRepository.
func (c *Catalog) BusinessHubs() catalog.BusinessHubRepository { return hubView{c} }

type regionView struct{ c *Catalog }

func (v regionView) FindByName(ctx context.Context, name string) (*catalog.Region, error) {
	return v.c.FindByName(ctx, name)
}

type hubView struct{ c *Catalog }

func (v hubView) FindByName(ctx context.Context, name string) (*catalog.BusinessHub, error) {
	_ = ctx
	v.c.mu.RLock()
	defer v.c.mu.RUnlock()
	for _, hub := range v.c.hubs {
		if strings.EqualFold(hub.Name, name) {
			found := hub
			return &found, nil
		}
	}
	return nil, nil
}
