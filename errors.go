package bikeshare

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a filter value outside its enumeration.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a city's data file is missing or unreadable.
	ErrNotFound = errors.New("data file not found")

	// ErrParse indicates a data file could not be parsed into trips.
	ErrParse = errors.New("parse error")

	// ErrComputation indicates a statistic could not be computed from the
	// values present in the selection.
	ErrComputation = errors.New("computation error")
)
