package usecase

import (
	"fmt"
	"math"
	"sort"
	"time"

	"quant_backend/internal/feature/ingest/domain/entity"
	tsdomain "quant_backend/internal/feature/timeseries/domain"
	tsentity "quant_backend/internal/feature/timeseries/domain/entity"
)

// toDate canonicalizes a timestamp to a UTC calendar date. Providers report
// in mixed shapes (dates, datetimes, local zones); the store holds dates only.
func toDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthKey returns the "YYYY-MM" bucket of a date.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Normalize は生レコード列を正規化済みの観測値列に変換します。
//
//   - タイムスタンプをUTCの暦日に正規化する
//   - 同一日付の重複は最後に出現した値を採用する（プロバイダの改定値の意味論）
//   - 月次シリーズでは各月の月末以前で最後に利用可能な観測値を代表値とする
//   - 欠損日は合成しない（ギャップ埋めは下流ビューの責務）
//   - 非有限値および要求範囲外のタイムスタンプは ErrInvalidObservation で拒否する
//
// 出力は日付昇順です。
func Normalize(raw []entity.RawRecord, freq tsentity.Frequency, from, to time.Time) ([]tsentity.Observation, error) {
	from, to = toDate(from), toDate(to)

	// 日付ごとに最後に見た値を残す
	byDate := make(map[time.Time]tsentity.Observation, len(raw))
	order := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, fmt.Errorf("%w: non-finite value at %s",
				tsdomain.ErrInvalidObservation, r.Time.Format("2006-01-02"))
		}
		d := toDate(r.Time)
		if d.Before(from) || d.After(to) {
			return nil, fmt.Errorf("%w: %s outside requested range %s..%s",
				tsdomain.ErrInvalidObservation,
				d.Format("2006-01-02"), from.Format("2006-01-02"), to.Format("2006-01-02"))
		}
		if _, ok := byDate[d]; !ok {
			order = append(order, d)
		}
		byDate[d] = tsentity.Observation{Time: d, Value: r.Value, Volume: r.Volume}
	}

	dates := order
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if freq == tsentity.FrequencyMonthly {
		// 各月の最後の観測値を代表値として残す
		lastInMonth := make(map[string]time.Time, len(dates))
		for _, d := range dates {
			lastInMonth[monthKey(d)] = d // dates is ascending
		}
		kept := dates[:0]
		for _, d := range dates {
			if lastInMonth[monthKey(d)].Equal(d) {
				kept = append(kept, d)
			}
		}
		dates = kept
	}

	out := make([]tsentity.Observation, 0, len(dates))
	for _, d := range dates {
		out = append(out, byDate[d])
	}
	return out, nil
}
