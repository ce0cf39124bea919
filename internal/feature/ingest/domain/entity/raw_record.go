// Package entity defines the domain models for the ingest feature.
package entity

import (
	"time"

	tsentity "quant_backend/internal/feature/timeseries/domain/entity"
)

// RawRecord is one provider-native data point, already parsed out of the
// provider payload but not yet normalized: the timestamp may carry a
// time-of-day component and records are in provider order (not guaranteed
// sorted, duplicates possible).
type RawRecord struct {
	Time   time.Time
	Value  float64
	Volume int64
}

// SeriesDescriptor names one series to ingest: which provider, which
// provider-native symbol, and what the series is.
type SeriesDescriptor struct {
	Provider   string
	Symbol     string
	AssetClass string
	Frequency  tsentity.Frequency
}
