// Package entity defines the domain models for the timeseries feature.
package entity

// Frequency is the native observation frequency of a series.
type Frequency string

const (
	// FrequencyDaily is one observation per trading/calendar day.
	FrequencyDaily Frequency = "daily"
	// FrequencyMonthly is one observation per calendar month.
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyMonthly
}

// Series identifies one time series from one provider.
// The (Provider, Symbol) pair is the natural key; the same instrument under
// two providers is two distinct series (cross-provider identity mapping is
// deliberately not attempted).
type Series struct {
	ID         uint
	Provider   string    // data provider code (e.g. "stooq", "fred", "frankfurter")
	Symbol     string    // provider-native symbol/code (e.g. "SPY.US", "CPIAUCSL", "USD/EUR")
	AssetClass string    // e.g. "equity", "macro", "fx"
	Frequency  Frequency // immutable once observed
}
