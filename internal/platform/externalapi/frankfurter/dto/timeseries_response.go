// Package dto defines data transfer objects for the Frankfurter API responses.
package dto

// TimeSeriesResponse represents the JSON response from the Frankfurter
// period endpoint (GET /{start}..{end}?from=X&to=Y).
type TimeSeriesResponse struct {
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Rates     map[string]map[string]float64 `json:"rates"` // date -> currency -> rate
}
