package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quant_backend/internal/feature/ingest/domain"
	"quant_backend/internal/feature/ingest/domain/entity"
	"quant_backend/internal/feature/ingest/usecase"
)

// StooqSource はStooqの日足CSVエンドポイントから株価・ETF価格を取得する
// SourceRepository実装です。値は終値を採用します。
type StooqSource struct {
	cfg    Config
	client *http.Client
}

// StooqSourceがSourceRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SourceRepository = (*StooqSource)(nil)

// NewStooqSource は指定された設定とHTTPクライアントでStooqSourceの新しいインスタンスを生成します。
func NewStooqSource(cfg Config, client *http.Client) *StooqSource {
	return &StooqSource{cfg: cfg, client: client}
}

// Provider returns the provider code.
func (s *StooqSource) Provider() string { return "stooq" }

// FetchSeries はStooqから日足の価格データを取得します。
//
// エンドポイント例:
// GET /q/d/l/?s=spy.us&d1=20240101&d2=20240131&i=d
func (s *StooqSource) FetchSeries(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawRecord, error) {
	q := url.Values{}
	q.Set("s", strings.ToLower(symbol))
	q.Set("d1", from.Format("20060102"))
	q.Set("d2", to.Format("20060102"))
	q.Set("i", "d") // daily

	u := fmt.Sprintf("%s/q/d/l/?%s", s.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: stooq: %v", domain.ErrSourceUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: stooq: %s", domain.ErrUnknownSymbol, symbol)
	case res.StatusCode >= 400:
		return nil, fmt.Errorf("%w: stooq http %d", domain.ErrSourceUnavailable, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: stooq: %v", domain.ErrSourceUnavailable, err)
	}

	// StooqはエラーをHTTP 200のプレーンテキストで返す
	trimmed := strings.TrimSpace(string(body))
	switch {
	case strings.HasPrefix(trimmed, "No data"):
		return nil, fmt.Errorf("%w: stooq: %s", domain.ErrUnknownSymbol, symbol)
	case strings.HasPrefix(trimmed, "Exceeded"):
		// daily hits limit
		return nil, fmt.Errorf("%w: stooq: %s", domain.ErrSourceUnavailable, trimmed)
	}

	return parseCSV(trimmed)
}

// parseCSV decodes Stooq's "Date,Open,High,Low,Close,Volume" payload.
// A header-only payload (holiday range) yields zero records, not an error.
func parseCSV(body string) ([]entity.RawRecord, error) {
	r := csv.NewReader(strings.NewReader(body))
	r.FieldsPerRecord = -1 // Volume column is absent for some instruments

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) <= 1 {
		return []entity.RawRecord{}, nil
	}

	out := make([]entity.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 5 {
			return nil, fmt.Errorf("parse csv row %q: want at least 5 fields", strings.Join(row, ","))
		}
		tm, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", row[0], err)
		}
		closePx, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", row[4], err)
		}
		var vol int64
		if len(row) > 5 && row[5] != "" {
			v, err := strconv.ParseFloat(row[5], 64)
			if err != nil {
				return nil, fmt.Errorf("parse volume %q: %w", row[5], err)
			}
			vol = int64(v)
		}
		out = append(out, entity.RawRecord{Time: tm, Value: closePx, Volume: vol})
	}
	return out, nil
}
