package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/usecase"
)

type ingestRunGorm struct {
	db *gorm.DB
}

var _ usecase.IngestRunRepository = (*ingestRunGorm)(nil)

func NewIngestRunRepository(db *gorm.DB) *ingestRunGorm {
	return &ingestRunGorm{db: db}
}

// IngestRunModel is the persisted shape of entity.IngestRun.
type IngestRunModel struct {
	ID         uint      `gorm:"primaryKey"`
	Provider   string    `gorm:"size:32;not null;index"`
	Symbol     string    `gorm:"size:64;not null;index"`
	RangeStart time.Time `gorm:"not null"`
	RangeEnd   time.Time `gorm:"not null"`
	Fetched    int       `gorm:"not null;default:0"`
	Inserted   int       `gorm:"not null;default:0"`
	Updated    int       `gorm:"not null;default:0"`
	Unchanged  int       `gorm:"not null;default:0"`
	Rejected   int       `gorm:"not null;default:0"`
	Status     string    `gorm:"size:16;not null"`
	Error      string    `gorm:"not null;default:''"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt time.Time
}

func (IngestRunModel) TableName() string {
	return "ingest_runs"
}

// Begin records the start of one ingest attempt and returns the run ID.
func (r *ingestRunGorm) Begin(ctx context.Context, run entity.IngestRun) (uint, error) {
	m := IngestRunModel{
		Provider:   run.Provider,
		Symbol:     run.Symbol,
		RangeStart: run.RangeStart,
		RangeEnd:   run.RangeEnd,
		Status:     string(entity.RunRunning),
		StartedAt:  run.StartedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// Finish finalizes the audit row created by Begin. Finished rows are never
// mutated again.
func (r *ingestRunGorm) Finish(ctx context.Context, run entity.IngestRun) error {
	return r.db.WithContext(ctx).Model(&IngestRunModel{}).
		Where("id = ? AND status = ?", run.ID, string(entity.RunRunning)).
		Updates(map[string]any{
			"fetched":     run.Fetched,
			"inserted":    run.Inserted,
			"updated":     run.Updated,
			"unchanged":   run.Unchanged,
			"rejected":    run.Rejected,
			"status":      string(run.Status),
			"error":       run.Error,
			"finished_at": run.FinishedAt,
		}).Error
}

// List returns the most recent runs, newest first.
func (r *ingestRunGorm) List(ctx context.Context, limit int) ([]entity.IngestRun, error) {
	q := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []IngestRunModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.IngestRun, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.IngestRun{
			ID:         m.ID,
			Provider:   m.Provider,
			Symbol:     m.Symbol,
			RangeStart: m.RangeStart,
			RangeEnd:   m.RangeEnd,
			Fetched:    m.Fetched,
			Inserted:   m.Inserted,
			Updated:    m.Updated,
			Unchanged:  m.Unchanged,
			Rejected:   m.Rejected,
			Status:     entity.RunStatus(m.Status),
			Error:      m.Error,
			StartedAt:  m.StartedAt,
			FinishedAt: m.FinishedAt,
		})
	}
	return out, nil
}
