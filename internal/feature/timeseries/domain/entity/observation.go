package entity

import "time"

// Observation は1つのシリーズ内の1データポイント（日付と値）です。
// Time はUTCの暦日（時刻成分なし）に正規化されています。
type Observation struct {
	SeriesID uint
	Time     time.Time // UTC date, midnight
	Value    float64
	Volume   int64 // 出来高（出来高の概念がないシリーズでは0）
}

// LoadPolicy controls how the loader treats invalid records inside one batch.
type LoadPolicy string

const (
	// PolicyFailFast aborts the whole batch on the first invalid record.
	// Nothing is written. This is the default.
	PolicyFailFast LoadPolicy = "fail-fast"
	// PolicySkipAndReport commits valid records and lists rejects.
	PolicySkipAndReport LoadPolicy = "skip-and-report"
)

// RejectedObservation is one record the loader refused, with the reason.
type RejectedObservation struct {
	Time   time.Time
	Reason string
}

// LoadSummary is the per-batch outcome of an upsert load.
type LoadSummary struct {
	Inserted  int
	Updated   int
	Unchanged int
	Rejected  []RejectedObservation
}
