package services

import "errors"

// Match service errors
var (
	// ErrNoMatchLoaded is returned by every operation that runs before Ingest
	ErrNoMatchLoaded = errors.New("no match data loaded")

	// ErrInvalidInning is returned for inning numbers other than 1 and 2
	ErrInvalidInning = errors.New("invalid inning")
)
