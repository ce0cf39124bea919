// Package dto defines data transfer objects for the FRED API responses.
package dto

// ObservationsResponse represents the JSON response from the FRED
// series/observations endpoint.
type ObservationsResponse struct {
	ObservationStart string `json:"observation_start"`
	ObservationEnd   string `json:"observation_end"`
	Count            int    `json:"count"`
	Observations     []struct {
		Date  string `json:"date"`
		Value string `json:"value"` // "." marks a missing value
	} `json:"observations"`
}

// ErrorResponse represents a FRED API error payload.
type ErrorResponse struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
