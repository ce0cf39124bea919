package fred

import (
	"context"
	"encoding/json"
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
	"quant_backend/internal/platform/externalapi/fred/dto"
)

// FredSource はFRED APIからマクロ経済時系列を取得するSourceRepository実装です。
type FredSource struct {
	cfg    Config
	client *http.Client
}

// FredSourceがSourceRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SourceRepository = (*FredSource)(nil)

// NewFredSource は指定された設定とHTTPクライアントでFredSourceの新しいインスタンスを生成します。
func NewFredSource(cfg Config, client *http.Client) *FredSource {
	return &FredSource{cfg: cfg, client: client}
}

// Provider returns the provider code.
func (f *FredSource) Provider() string { return "fred" }

// FetchSeries はFREDから系列の観測値を取得します。
// 値が "." のレコードは欠損値なのでスキップします（ギャップとして扱う）。
//
// エンドポイント例:
// GET /fred/series/observations?series_id=CPIAUCSL&observation_start=2015-01-01&...
func (f *FredSource) FetchSeries(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawRecord, error) {
	q := url.Values{}
	q.Set("series_id", symbol)
	q.Set("observation_start", from.Format("2006-01-02"))
	q.Set("observation_end", to.Format("2006-01-02"))
	q.Set("file_type", "json")
	q.Set("api_key", f.cfg.FredAPIKey)

	u := fmt.Sprintf("%s/fred/series/observations?%s", f.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fred: %v", domain.ErrSourceUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, classifyError(res, symbol)
	}

	var body dto.ObservationsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode fred response: %w", err)
	}

	out := make([]entity.RawRecord, 0, len(body.Observations))
	for _, o := range body.Observations {
		if o.Value == "." {
			// 欠損値は合成しない
			continue
		}
		tm, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", o.Date, err)
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %q: %w", o.Value, err)
		}
		out = append(out, entity.RawRecord{Time: tm, Value: v})
	}
	return out, nil
}

// classifyError maps a FRED error response onto the adapter error taxonomy.
// FRED reports an unknown series as 400 with an explanatory message.
func classifyError(res *http.Response, symbol string) error {
	raw, _ := io.ReadAll(res.Body)
	var e dto.ErrorResponse
	_ = json.Unmarshal(raw, &e)

	if res.StatusCode == http.StatusBadRequest && strings.Contains(e.ErrorMessage, "does not exist") {
		return fmt.Errorf("%w: fred: %s", domain.ErrUnknownSymbol, symbol)
	}
	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: fred: %s", domain.ErrUnknownSymbol, symbol)
	}
	msg := e.ErrorMessage
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return fmt.Errorf("%w: fred http %d: %s", domain.ErrSourceUnavailable, res.StatusCode, msg)
}
