package usecase

import (
	"context"

	"quant_backend/internal/feature/timeseries/domain/entity"
)

const (
	// DefaultRunsLimit はデフォルトの監査レコード返却件数です。
	DefaultRunsLimit = 50
	// MaxRunsLimit は監査レコードの最大返却件数です。
	MaxRunsLimit = 1000
)

// runsUsecase は取り込み監査証跡読み取りのユースケースを定義します。
type runsUsecase struct {
	runs IngestRunRepository
}

// NewRunsUsecase はrunsUsecaseの新しいインスタンスを生成します。
func NewRunsUsecase(runs IngestRunRepository) *runsUsecase {
	return &runsUsecase{runs: runs}
}

// ListRuns は直近の取り込み試行を新しい順で返します。
func (ru *runsUsecase) ListRuns(ctx context.Context, limit int) ([]entity.IngestRun, error) {
	if limit <= 0 || limit > MaxRunsLimit {
		limit = DefaultRunsLimit
	}
	return ru.runs.List(ctx, limit)
}
