package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quant_backend/internal/feature/ingest/domain"
	"quant_backend/internal/feature/ingest/domain/entity"
	"quant_backend/internal/feature/ingest/usecase"
	"quant_backend/internal/platform/externalapi/frankfurter/dto"
)

// FrankfurterSource はFrankfurter APIからECBの為替参照レートを取得する
// SourceRepository実装です。シンボルは "BASE/QUOTE" 形式（例 "USD/EUR"）です。
type FrankfurterSource struct {
	cfg    Config
	client *http.Client
}

// FrankfurterSourceがSourceRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SourceRepository = (*FrankfurterSource)(nil)

// NewFrankfurterSource は指定された設定とHTTPクライアントでFrankfurterSourceの新しいインスタンスを生成します。
func NewFrankfurterSource(cfg Config, client *http.Client) *FrankfurterSource {
	return &FrankfurterSource{cfg: cfg, client: client}
}

// Provider returns the provider code.
func (f *FrankfurterSource) Provider() string { return "frankfurter" }

// splitPair parses "BASE/QUOTE" into its two currency codes.
func splitPair(symbol string) (base, quote string, err error) {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: frankfurter: want BASE/QUOTE, got %q", domain.ErrUnknownSymbol, symbol)
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), nil
}

// FetchSeries は指定期間の為替レートを取得します。ECBの営業日のみ返ります
// （週末・祝日はギャップ）。
//
// エンドポイント例:
// GET /2015-01-01..2015-01-31?from=USD&to=EUR
func (f *FrankfurterSource) FetchSeries(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawRecord, error) {
	base, quote, err := splitPair(symbol)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("from", base)
	q.Set("to", quote)
	u := fmt.Sprintf("%s/%s..%s?%s",
		f.cfg.BaseURL, from.Format("2006-01-02"), to.Format("2006-01-02"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: frankfurter: %v", domain.ErrSourceUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		// 未知の通貨コードは404で返る
		return nil, fmt.Errorf("%w: frankfurter: %s", domain.ErrUnknownSymbol, symbol)
	case res.StatusCode >= 400:
		return nil, fmt.Errorf("%w: frankfurter http %d", domain.ErrSourceUnavailable, res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode frankfurter response: %w", err)
	}

	out := make([]entity.RawRecord, 0, len(body.Rates))
	for date, rates := range body.Rates {
		rate, ok := rates[quote]
		if !ok {
			return nil, fmt.Errorf("%w: frankfurter: no %s rate on %s", domain.ErrUnknownSymbol, quote, date)
		}
		tm, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		out = append(out, entity.RawRecord{Time: tm, Value: rate})
	}
	// マップ走査のため順序は不定だが、順序の保証は正規化層の責務
	return out, nil
}
