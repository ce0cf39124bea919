package adapters

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"quant_backend/internal/feature/timeseries/domain"
	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/usecase"
	"quant_backend/internal/shared/keylock"
)

type observationGorm struct {
	db    *gorm.DB
	locks *keylock.KeyedMutex
}

var _ usecase.ObservationRepository = (*observationGorm)(nil)

func NewObservationRepository(db *gorm.DB) *observationGorm {
	return &observationGorm{db: db, locks: keylock.New()}
}

// ObservationModel is the persisted shape of entity.Observation.
type ObservationModel struct {
	ID       uint      `gorm:"primaryKey"`
	SeriesID uint      `gorm:"not null;uniqueIndex:obs_series_time,priority:1"`
	Time     time.Time `gorm:"not null;uniqueIndex:obs_series_time,priority:2"`
	Value    float64   `gorm:"not null"`
	Volume   int64     `gorm:"not null;default:0"`
}

func (ObservationModel) TableName() string {
	return "observations"
}

// rejectReason validates one observation against what the store will accept.
// An empty return means the record is loadable.
func rejectReason(o entity.Observation, seen map[int64]struct{}) string {
	if o.Time.IsZero() {
		return "zero timestamp"
	}
	if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
		return "non-finite value"
	}
	if _, dup := seen[o.Time.Unix()]; dup {
		return "duplicate timestamp in batch"
	}
	return ""
}

// Load merges one normalized batch into the store.
//
// 各レコードについて既存の (series_id, time) 行を調べ、
// 無ければ挿入、値が異なれば更新（プロバイダの改定値）、同一なら何もしません。
// バッチ全体は1トランザクションで適用されるため、途中状態が読み手に
// 見えることはありません。同一シリーズへのロードは直列化されます。
func (r *observationGorm) Load(ctx context.Context, seriesID uint, obs []entity.Observation, policy entity.LoadPolicy) (entity.LoadSummary, error) {
	r.locks.Lock(seriesID)
	defer r.locks.Unlock(seriesID)

	var sum entity.LoadSummary
	seen := make(map[int64]struct{}, len(obs))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range obs {
			if reason := rejectReason(o, seen); reason != "" {
				if policy != entity.PolicySkipAndReport {
					// fail-fast: トランザクションごと破棄する
					return fmt.Errorf("%w: %s at %s",
						domain.ErrBatchRejected, reason, o.Time.Format("2006-01-02"))
				}
				sum.Rejected = append(sum.Rejected, entity.RejectedObservation{
					Time:   o.Time,
					Reason: reason,
				})
				continue
			}
			seen[o.Time.Unix()] = struct{}{}

			var row ObservationModel
			err := tx.Where("series_id = ? AND time = ?", seriesID, o.Time).Take(&row).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				m := ObservationModel{
					SeriesID: seriesID,
					Time:     o.Time,
					Value:    o.Value,
					Volume:   o.Volume,
				}
				if err := tx.Create(&m).Error; err != nil {
					return err
				}
				sum.Inserted++
			case err != nil:
				return err
			case row.Value != o.Value || row.Volume != o.Volume:
				// restatement path
				if err := tx.Model(&ObservationModel{}).
					Where("id = ?", row.ID).
					Updates(map[string]any{"value": o.Value, "volume": o.Volume}).Error; err != nil {
					return err
				}
				sum.Updated++
			default:
				sum.Unchanged++
			}
		}
		return nil
	})
	if err != nil {
		return entity.LoadSummary{}, err
	}
	return sum, nil
}

// Find returns stored observations for one series in ascending time order.
// Zero from/to bounds are open.
func (r *observationGorm) Find(ctx context.Context, seriesID uint, from, to time.Time) ([]entity.Observation, error) {
	q := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("time")
	if !from.IsZero() {
		q = q.Where("time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("time <= ?", to)
	}

	var rows []ObservationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Observation, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Observation{
			SeriesID: m.SeriesID,
			Time:     m.Time,
			Value:    m.Value,
			Volume:   m.Volume,
		})
	}
	return out, nil
}
