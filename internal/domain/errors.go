package domain

import "errors"

var (
	// ErrInvalidAggregation is returned for an aggregation code outside HH, DD, WW, YY.
	ErrInvalidAggregation = errors.New("invalid temporal aggregation")
	// ErrInvalidSetType is returned for a set type other than FULLSET or SUBSET.
	ErrInvalidSetType = errors.New("invalid set type")
	// ErrSiteNotFound is returned when no source directory matches a site code.
	ErrSiteNotFound = errors.New("site not found")
	// ErrAmbiguousSite is returned when several source directories match a site code.
	ErrAmbiguousSite = errors.New("ambiguous site code")
	// ErrSourceFileNotFound is returned when a station directory holds no CSV
	// for the requested set type and aggregation.
	ErrSourceFileNotFound = errors.New("source file not found")
	// ErrResolution marks a column with no canonical variable. It is never
	// fatal; the column is dropped.
	ErrResolution = errors.New("no canonical variable")
	// ErrMetadataMissing is returned when a site code is absent from the site registry.
	ErrMetadataMissing = errors.New("site metadata missing")
	// ErrInvalidTimestamp is returned for a time column that cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
