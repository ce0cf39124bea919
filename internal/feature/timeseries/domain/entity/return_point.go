package entity

import "time"

// ReturnPoint is one row of a return view: the percentage return of one
// series at one period, computed on read from stored observations.
//
// Return is nil at the start of a series where no predecessor exists; gaps
// are never interpolated.
type ReturnPoint struct {
	Time   time.Time
	Month  string // "YYYY-MM", set for monthly returns only
	Value  float64
	Return *float64
}
