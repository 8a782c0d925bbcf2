package report

import "errors"

var (
	// ErrRegionNotFound is returned when a named region does not exist.
	ErrRegionNotFound = errors.New("report: region not found")
	// ErrBusinessHubNotFound is returned when a named business hub does not exist.
	ErrBusinessHubNotFound = errors.New("report: business hub not found")
	// ErrNoFeeders is returned when the filters matched zero feeders.
	ErrNoFeeders = errors.New("report: no feeders matched")
	// ErrInvalidRange is returned when an explicit range request has its end
	// before its start. The engine itself tolerates inverted ranges and
	// produces zero day columns; only the range API rejects them.
	ErrInvalidRange = errors.New("report: end date before start date")
)
