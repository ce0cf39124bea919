package usecase

import (
	"context"
	"testing"

	"quant_backend/internal/feature/timeseries/domain/entity"
)

// mockIngestRunRepository is a mock implementation of the IngestRunRepository interface.
type mockIngestRunRepository struct {
	ListFunc func(ctx context.Context, limit int) ([]entity.IngestRun, error)
}

func (m *mockIngestRunRepository) Begin(ctx context.Context, run entity.IngestRun) (uint, error) {
	return 1, nil
}

func (m *mockIngestRunRepository) Finish(ctx context.Context, run entity.IngestRun) error {
	return nil
}

func (m *mockIngestRunRepository) List(ctx context.Context, limit int) ([]entity.IngestRun, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return nil, nil
}

func TestRunsUsecase_ListRuns(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero uses default", 0, DefaultRunsLimit},
		{"negative uses default", -5, DefaultRunsLimit},
		{"in range is kept", 10, 10},
		{"max is kept", MaxRunsLimit, MaxRunsLimit},
		{"over max uses default", MaxRunsLimit + 1, DefaultRunsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			uc := NewRunsUsecase(&mockIngestRunRepository{
				ListFunc: func(ctx context.Context, limit int) ([]entity.IngestRun, error) {
					gotLimit = limit
					return nil, nil
				},
			})

			_, err := uc.ListRuns(ctx, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", gotLimit, tt.wantLimit)
			}
		})
	}
}
