package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quant_backend/internal/feature/timeseries/domain"
	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/usecase"
)

type seriesGorm struct {
	db *gorm.DB
}

var _ usecase.SeriesRepository = (*seriesGorm)(nil)

func NewSeriesRepository(db *gorm.DB) *seriesGorm {
	return &seriesGorm{db: db}
}

// SeriesModel is the persisted shape of entity.Series.
type SeriesModel struct {
	ID         uint   `gorm:"primaryKey"`
	Provider   string `gorm:"size:32;not null;uniqueIndex:series_provider_symbol,priority:1"`
	Symbol     string `gorm:"size:64;not null;uniqueIndex:series_provider_symbol,priority:2"`
	AssetClass string `gorm:"size:32;not null"`
	Frequency  string `gorm:"size:16;not null"`
}

func (SeriesModel) TableName() string {
	return "series"
}

func toSeriesEntity(m SeriesModel) entity.Series {
	return entity.Series{
		ID:         m.ID,
		Provider:   m.Provider,
		Symbol:     m.Symbol,
		AssetClass: m.AssetClass,
		Frequency:  entity.Frequency(m.Frequency),
	}
}

// Ensure returns the series for (provider, symbol), creating it on first
// sighting. Series are never deleted. An Ensure with a frequency different
// from the stored one fails: frequency is immutable once observed.
func (r *seriesGorm) Ensure(ctx context.Context, s entity.Series) (entity.Series, error) {
	m := SeriesModel{
		Provider:   s.Provider,
		Symbol:     s.Symbol,
		AssetClass: s.AssetClass,
		Frequency:  string(s.Frequency),
	}
	// DoNothing + re-read keeps the create race-safe under concurrent
	// pipelines hitting the same new (provider, symbol).
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "symbol"}},
		DoNothing: true,
	}).Create(&m).Error
	if err != nil {
		return entity.Series{}, err
	}

	var row SeriesModel
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND symbol = ?", s.Provider, s.Symbol).
		Take(&row).Error; err != nil {
		return entity.Series{}, err
	}

	if row.Frequency != string(s.Frequency) {
		return entity.Series{}, fmt.Errorf("%w: %s/%s is %s, got %s",
			domain.ErrFrequencyChanged, s.Provider, s.Symbol, row.Frequency, s.Frequency)
	}
	return toSeriesEntity(row), nil
}

// FindBySymbol looks up one series by its natural key.
func (r *seriesGorm) FindBySymbol(ctx context.Context, provider, symbol string) (entity.Series, error) {
	var row SeriesModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND symbol = ?", provider, symbol).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Series{}, domain.ErrSeriesNotFound
	}
	if err != nil {
		return entity.Series{}, err
	}
	return toSeriesEntity(row), nil
}

// List returns all registered series ordered by provider then symbol.
func (r *seriesGorm) List(ctx context.Context) ([]entity.Series, error) {
	var rows []SeriesModel
	if err := r.db.WithContext(ctx).
		Order("provider, symbol").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Series, 0, len(rows))
	for _, m := range rows {
		out = append(out, toSeriesEntity(m))
	}
	return out, nil
}
