package cache

import (
	"time"
)

// TimeUntilNextMidnightUTC は次のUTC午前0時までの期間を返します。
// 日次データは1日1回しか更新されないため、キャッシュは日付の変わり目で
// 失効させれば十分です。
func TimeUntilNextMidnightUTC() time.Duration {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}
