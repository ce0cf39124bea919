// Package handler はtimeseriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	tsdomain "quant_backend/internal/feature/timeseries/domain"
	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/transport/http/dto"
)

// SeriesUsecase はシリーズと観測値の読み取りユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SeriesUsecase interface {
	ListSeries(ctx context.Context) ([]entity.Series, error)
	GetObservations(ctx context.Context, provider, symbol string, from, to time.Time) ([]entity.Observation, error)
}

// SeriesHandler はシリーズ関連のHTTPリクエストを処理します。
type SeriesHandler struct {
	uc SeriesUsecase
}

// NewSeriesHandler は指定されたusecaseでSeriesHandlerの新しいインスタンスを生成します。
func NewSeriesHandler(uc SeriesUsecase) *SeriesHandler {
	return &SeriesHandler{uc: uc}
}

// List は登録済みの全シリーズをJSONで返します。
//
// エンドポイント例:
// GET /series
func (h *SeriesHandler) List(c *gin.Context) {
	series, err := h.uc.ListSeries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SeriesResponse, 0, len(series))
	for _, s := range series {
		out = append(out, dto.SeriesResponse{
			Provider:   s.Provider,
			Symbol:     s.Symbol,
			AssetClass: s.AssetClass,
			Frequency:  string(s.Frequency),
		})
	}
	c.JSON(http.StatusOK, out)
}

// parseDateRange は from/to クエリパラメータを解釈します。未指定は開区間です。
func parseDateRange(c *gin.Context) (from, to time.Time, err error) {
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			return
		}
	}
	return
}

// Observations は指定されたシリーズの観測値をJSONで返します。
//
// エンドポイント例:
// GET /series/:provider/:symbol/observations?from=2015-01-01&to=2015-12-31
func (h *SeriesHandler) Observations(c *gin.Context) {
	provider := c.Param("provider")
	symbol := c.Param("symbol")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	obs, err := h.uc.GetObservations(c.Request.Context(), provider, symbol, from, to)
	if errors.Is(err, tsdomain.ErrSeriesNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.ObservationResponse, 0, len(obs))
	for _, o := range obs {
		out = append(out, dto.ObservationResponse{
			Time:   o.Time.UTC().Format("2006-01-02"),
			Value:  o.Value,
			Volume: o.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}
