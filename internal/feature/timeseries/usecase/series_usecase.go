// Package usecase は時系列ストアに対する操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"quant_backend/internal/feature/timeseries/domain/entity"
)

// SeriesRepository はシリーズ登録簿の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SeriesRepository interface {
	// Ensure returns the series for s's (provider, symbol), creating it on
	// first sighting. Fails if the stored frequency differs from s's.
	Ensure(ctx context.Context, s entity.Series) (entity.Series, error)
	// FindBySymbol looks up one series by its natural key.
	FindBySymbol(ctx context.Context, provider, symbol string) (entity.Series, error)
	// List returns all registered series.
	List(ctx context.Context) ([]entity.Series, error)
}

// ObservationRepository は観測値の読み書きレイヤーを抽象化します。
// Load が唯一の書き込み経路です（Upsert Loader）。
type ObservationRepository interface {
	// Load merges one normalized batch into the store as one transaction.
	Load(ctx context.Context, seriesID uint, obs []entity.Observation, policy entity.LoadPolicy) (entity.LoadSummary, error)
	// Find returns stored observations in ascending time order.
	Find(ctx context.Context, seriesID uint, from, to time.Time) ([]entity.Observation, error)
}

// IngestRunRepository は取り込み監査証跡の永続化レイヤーを抽象化します。
type IngestRunRepository interface {
	Begin(ctx context.Context, run entity.IngestRun) (uint, error)
	Finish(ctx context.Context, run entity.IngestRun) error
	List(ctx context.Context, limit int) ([]entity.IngestRun, error)
}

// seriesUsecase はシリーズと観測値の読み取りユースケースを定義します。
type seriesUsecase struct {
	series SeriesRepository
	obs    ObservationRepository
}

// NewSeriesUsecase はseriesUsecaseの新しいインスタンスを生成します。
func NewSeriesUsecase(series SeriesRepository, obs ObservationRepository) *seriesUsecase {
	return &seriesUsecase{series: series, obs: obs}
}

// ListSeries は登録済みの全シリーズを返します。
func (su *seriesUsecase) ListSeries(ctx context.Context) ([]entity.Series, error) {
	return su.series.List(ctx)
}

// GetObservations は指定されたシリーズの観測値を昇順で返します。
func (su *seriesUsecase) GetObservations(ctx context.Context, provider, symbol string, from, to time.Time) ([]entity.Observation, error) {
	s, err := su.series.FindBySymbol(ctx, provider, symbol)
	if err != nil {
		return nil, err
	}
	return su.obs.Find(ctx, s.ID, from, to)
}
