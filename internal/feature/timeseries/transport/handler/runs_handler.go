package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/transport/http/dto"
)

// RunsUsecase は取り込み監査証跡読み取りのユースケースインターフェースを定義します。
type RunsUsecase interface {
	ListRuns(ctx context.Context, limit int) ([]entity.IngestRun, error)
}

// RunsHandler は取り込み監査証跡のHTTPリクエストを処理します。
type RunsHandler struct {
	uc RunsUsecase
}

// NewRunsHandler は指定されたusecaseでRunsHandlerの新しいインスタンスを生成します。
func NewRunsHandler(uc RunsUsecase) *RunsHandler {
	return &RunsHandler{uc: uc}
}

// List は直近の取り込み試行を新しい順でJSONで返します。
//
// エンドポイント例:
// GET /runs?limit=50
func (h *RunsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	runs, err := h.uc.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.IngestRunResponse, 0, len(runs))
	for _, r := range runs {
		res := dto.IngestRunResponse{
			ID:         r.ID,
			Provider:   r.Provider,
			Symbol:     r.Symbol,
			RangeStart: r.RangeStart.UTC().Format("2006-01-02"),
			RangeEnd:   r.RangeEnd.UTC().Format("2006-01-02"),
			Fetched:    r.Fetched,
			Inserted:   r.Inserted,
			Updated:    r.Updated,
			Unchanged:  r.Unchanged,
			Rejected:   r.Rejected,
			Status:     string(r.Status),
			Error:      r.Error,
			StartedAt:  r.StartedAt.UTC().Format(timeFormat),
		}
		if !r.FinishedAt.IsZero() {
			res.FinishedAt = r.FinishedAt.UTC().Format(timeFormat)
		}
		out = append(out, res)
	}
	c.JSON(http.StatusOK, out)
}

const timeFormat = "2006-01-02T15:04:05Z"
