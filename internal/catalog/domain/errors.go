package catalog

import "errors"

var (
	// ErrEmptyID is returned when an entity id is empty.
	ErrEmptyID = errors.New("catalog: empty id")
	// ErrEmptyName is returned when an entity name is empty.
	ErrEmptyName = errors.New("catalog: empty name")
	// ErrEmptyRegionRef is returned when a region reference is missing.
	ErrEmptyRegionRef = errors.New("catalog: empty region reference")
	// ErrEmptyHubRef is returned when a business hub reference is missing.
	ErrEmptyHubRef = errors.New("catalog: empty business hub reference")
	// ErrInvalidBand is returned for a band outside the known service tiers.
	ErrInvalidBand = errors.New("catalog: invalid band")
)
