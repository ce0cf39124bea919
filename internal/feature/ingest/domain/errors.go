// Package domain defines domain-level errors for the ingest feature.
package domain

import "errors"

// Source adapter errors. The pipeline driver decides retry behavior from the
// error kind, so adapters must wrap one of these sentinels.
var (
	// ErrSourceUnavailable indicates a transient transport, auth or rate
	// failure at the provider. Retried with bounded exponential backoff.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnknownSymbol indicates the provider reported that the requested
	// symbol/code does not exist. Permanent; never retried.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidRange indicates a date range with start after end.
	ErrInvalidRange = errors.New("invalid date range")
)
