package readings

import "errors"

var (
	// ErrEmptyFeederRef is returned when the feeder reference is missing.
	ErrEmptyFeederRef = errors.New("readings: empty feeder reference")
	// ErrInvalidDate is returned when the reading date is zero.
	ErrInvalidDate = errors.New("readings: invalid date")
	// ErrEmptyRecorder is returned when the recording user is missing.
	ErrEmptyRecorder = errors.New("readings: empty recorder")
	// ErrNilReading is returned when operating on a nil reading.
	ErrNilReading = errors.New("readings: nil reading")
)
