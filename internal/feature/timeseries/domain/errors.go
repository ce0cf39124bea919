// Package domain defines domain-level errors for the timeseries feature.
package domain

import "errors"

// Domain errors for the time-series store.
// These errors represent business rule violations and should be handled
// appropriately by upper layers.
var (
	// ErrSeriesNotFound indicates that no series exists for the given
	// (provider, symbol) pair.
	ErrSeriesNotFound = errors.New("series not found")

	// ErrFrequencyChanged indicates an attempt to register a series with a
	// frequency different from the one already on record. Frequency is
	// immutable once observed.
	ErrFrequencyChanged = errors.New("series frequency is immutable")

	// ErrInvalidObservation indicates a record whose value is non-finite or
	// whose timestamp is unusable. Reported per record.
	ErrInvalidObservation = errors.New("invalid observation")

	// ErrBatchRejected indicates that a load batch was aborted under the
	// fail-fast policy. No rows from the batch are visible.
	ErrBatchRejected = errors.New("batch rejected")
)
