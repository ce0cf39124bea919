package usecase

import (
	"context"
	"fmt"
	"time"

	"quant_backend/internal/feature/timeseries/domain/entity"
)

// ReturnsRepository はリターンビューの読み取りレイヤーを抽象化します。
type ReturnsRepository interface {
	// Returns reads one series' return view rows in ascending time order.
	Returns(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error)
}

// returnsUsecase はリターンビュー読み取りのユースケースを定義します。
type returnsUsecase struct {
	returns ReturnsRepository
}

// NewReturnsUsecase はreturnsUsecaseの新しいインスタンスを生成します。
func NewReturnsUsecase(returns ReturnsRepository) *returnsUsecase {
	return &returnsUsecase{returns: returns}
}

// GetReturns は指定されたシリーズの日次または月次リターンを返します。
// period が未指定の場合は daily を使用します。
func (ru *returnsUsecase) GetReturns(ctx context.Context, provider, symbol, period string, from, to time.Time) ([]entity.ReturnPoint, error) {
	if period == "" {
		period = string(entity.FrequencyDaily)
	}
	p := entity.Frequency(period)
	if !p.Valid() {
		return nil, fmt.Errorf("period must be daily or monthly, got %q", period)
	}
	return ru.returns.Returns(ctx, provider, symbol, p, from, to)
}
