package usecase

import (
	"context"
	"testing"
	"time"

	"quant_backend/internal/feature/timeseries/domain/entity"
)

// mockReturnsRepository is a mock implementation of the ReturnsRepository interface.
type mockReturnsRepository struct {
	ReturnsFunc func(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error)
}

func (m *mockReturnsRepository) Returns(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error) {
	if m.ReturnsFunc != nil {
		return m.ReturnsFunc(ctx, provider, symbol, period, from, to)
	}
	return nil, nil
}

func TestReturnsUsecase_GetReturns(t *testing.T) {
	ctx := context.Background()

	t.Run("success: empty period defaults to daily", func(t *testing.T) {
		var gotPeriod entity.Frequency
		uc := NewReturnsUsecase(&mockReturnsRepository{
			ReturnsFunc: func(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error) {
				gotPeriod = period
				return nil, nil
			},
		})

		_, err := uc.GetReturns(ctx, "stooq", "SPY.US", "", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPeriod != entity.FrequencyDaily {
			t.Errorf("expected daily, got %s", gotPeriod)
		}
	})

	t.Run("success: monthly is passed through", func(t *testing.T) {
		var gotPeriod entity.Frequency
		uc := NewReturnsUsecase(&mockReturnsRepository{
			ReturnsFunc: func(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error) {
				gotPeriod = period
				return nil, nil
			},
		})

		_, err := uc.GetReturns(ctx, "stooq", "SPY.US", "monthly", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPeriod != entity.FrequencyMonthly {
			t.Errorf("expected monthly, got %s", gotPeriod)
		}
	})

	t.Run("failure: unsupported period", func(t *testing.T) {
		called := false
		uc := NewReturnsUsecase(&mockReturnsRepository{
			ReturnsFunc: func(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error) {
				called = true
				return nil, nil
			},
		})

		_, err := uc.GetReturns(ctx, "stooq", "SPY.US", "weekly", time.Time{}, time.Time{})
		if err == nil {
			t.Fatal("expected error for unsupported period")
		}
		if called {
			t.Error("repository must not be reached with an invalid period")
		}
	})
}
