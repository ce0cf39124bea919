// Package dto はtimeseriesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SeriesResponse は登録済みシリーズのレスポンスDTOです。
type SeriesResponse struct {
	Provider   string `json:"provider"`
	Symbol     string `json:"symbol"`
	AssetClass string `json:"asset_class"`
	Frequency  string `json:"frequency"`
}

// ObservationResponse は観測値のレスポンスDTOです。
type ObservationResponse struct {
	Time   string  `json:"time"` // 日付 (YYYY-MM-DD)
	Value  float64 `json:"value"`
	Volume int64   `json:"volume"`
}

// ReturnResponse はリターンビュー1行のレスポンスDTOです。
// Return はシリーズ先頭（前値なし）では null になります。
type ReturnResponse struct {
	Time   string   `json:"time"`
	Month  string   `json:"month,omitempty"` // 月次リターンのみ
	Value  float64  `json:"value"`
	Return *float64 `json:"return"`
}

// IngestRunResponse は取り込み監査レコードのレスポンスDTOです。
type IngestRunResponse struct {
	ID         uint   `json:"id"`
	Provider   string `json:"provider"`
	Symbol     string `json:"symbol"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	Unchanged  int    `json:"unchanged"`
	Rejected   int    `json:"rejected"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}
