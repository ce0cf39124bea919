package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/usecase"
)

// Return views are pure functions of stored observations, recomputed on
// read. That keeps the write path simple: nothing materialized, nothing to
// go stale.
//
// daily_returns: ret(t) = value(t)/value(prev stored t) - 1 over daily
// series. The predecessor is the previous stored observation, not the
// previous calendar day: gaps (holidays) are not interpolated, and the first
// row of a series has a NULL ret.
//
// monthly_returns: same formula over the last stored observation of each
// calendar month, for every series. Monthly-native series already hold one
// representative value per month, so the month-end pick is the identity for
// them.

const (
	dailyReturnsSQLite = `
CREATE VIEW daily_returns AS
SELECT o.series_id AS series_id,
       s.provider  AS provider,
       s.symbol    AS symbol,
       o.time      AS time,
       o.value     AS value,
       o.value / LAG(o.value) OVER (PARTITION BY o.series_id ORDER BY o.time) - 1 AS ret
FROM observations o
JOIN series s ON s.id = o.series_id
WHERE s.frequency = 'daily'`

	monthlyReturnsSQLite = `
CREATE VIEW monthly_returns AS
WITH eom AS (
    SELECT series_id, MAX(time) AS time
    FROM observations
    GROUP BY series_id, strftime('%Y-%m', time)
)
SELECT o.series_id AS series_id,
       s.provider  AS provider,
       s.symbol    AS symbol,
       strftime('%Y-%m', o.time) AS ym,
       o.time      AS time,
       o.value     AS value,
       o.value / LAG(o.value) OVER (PARTITION BY o.series_id ORDER BY o.time) - 1 AS ret
FROM eom
JOIN observations o ON o.series_id = eom.series_id AND o.time = eom.time
JOIN series s ON s.id = o.series_id`

	dailyReturnsPostgres = `
CREATE VIEW daily_returns AS
SELECT o.series_id AS series_id,
       s.provider  AS provider,
       s.symbol    AS symbol,
       o.time      AS time,
       o.value     AS value,
       o.value / LAG(o.value) OVER (PARTITION BY o.series_id ORDER BY o.time) - 1 AS ret
FROM observations o
JOIN series s ON s.id = o.series_id
WHERE s.frequency = 'daily'`

	monthlyReturnsPostgres = `
CREATE VIEW monthly_returns AS
WITH eom AS (
    SELECT series_id, MAX(time) AS time
    FROM observations
    GROUP BY series_id, to_char(time, 'YYYY-MM')
)
SELECT o.series_id AS series_id,
       s.provider  AS provider,
       s.symbol    AS symbol,
       to_char(o.time, 'YYYY-MM') AS ym,
       o.time      AS time,
       o.value     AS value,
       o.value / LAG(o.value) OVER (PARTITION BY o.series_id ORDER BY o.time) - 1 AS ret
FROM eom
JOIN observations o ON o.series_id = eom.series_id AND o.time = eom.time
JOIN series s ON s.id = o.series_id`
)

// CreateReturnViews (re)creates the daily and monthly return views for the
// connected dialect. Dropping and recreating keeps definitions current; the
// views hold no state.
func CreateReturnViews(db *gorm.DB) error {
	daily, monthly := dailyReturnsSQLite, monthlyReturnsSQLite
	if db.Dialector.Name() == "postgres" {
		daily, monthly = dailyReturnsPostgres, monthlyReturnsPostgres
	}
	for _, stmt := range []struct{ drop, create string }{
		{"DROP VIEW IF EXISTS daily_returns", daily},
		{"DROP VIEW IF EXISTS monthly_returns", monthly},
	} {
		if err := db.Exec(stmt.drop).Error; err != nil {
			return err
		}
		if err := db.Exec(stmt.create).Error; err != nil {
			return err
		}
	}
	return nil
}

type returnsGorm struct {
	db *gorm.DB
}

var _ usecase.ReturnsRepository = (*returnsGorm)(nil)

func NewReturnsRepository(db *gorm.DB) *returnsGorm {
	return &returnsGorm{db: db}
}

type returnRow struct {
	Time  time.Time
	Ym    string
	Value float64
	Ret   *float64
}

// Returns reads one series' return view rows in ascending time order.
// Zero from/to bounds are open.
func (r *returnsGorm) Returns(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error) {
	var view, cols string
	switch period {
	case entity.FrequencyDaily:
		view, cols = "daily_returns", `time, '' AS ym, value, ret`
	case entity.FrequencyMonthly:
		view, cols = "monthly_returns", `time, ym, value, ret`
	default:
		return nil, fmt.Errorf("unknown return period %q", period)
	}

	q := r.db.WithContext(ctx).Table(view).
		Select(cols).
		Where("provider = ? AND symbol = ?", provider, symbol).
		Order("time")
	if !from.IsZero() {
		q = q.Where("time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("time <= ?", to)
	}

	var rows []returnRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.ReturnPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.ReturnPoint{
			Time:   row.Time,
			Month:  row.Ym,
			Value:  row.Value,
			Return: row.Ret,
		})
	}
	return out, nil
}
