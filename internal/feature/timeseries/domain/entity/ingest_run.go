package entity

import "time"

// RunStatus is the lifecycle state of one ingest attempt.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// IngestRun は1回の取り込み試行の監査レコードです。
// 取り込み開始時に作成され、終了時に確定されます。以後は変更されません
// （追記専用の監査証跡）。
type IngestRun struct {
	ID         uint
	Provider   string
	Symbol     string
	RangeStart time.Time
	RangeEnd   time.Time
	Fetched    int
	Inserted   int
	Updated    int
	Unchanged  int
	Rejected   int
	Status     RunStatus
	Error      string // error text when Status is failed
	StartedAt  time.Time
	FinishedAt time.Time
}
