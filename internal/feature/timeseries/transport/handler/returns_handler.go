package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/transport/http/dto"
)

// ReturnsUsecase はリターンビュー読み取りのユースケースインターフェースを定義します。
type ReturnsUsecase interface {
	GetReturns(ctx context.Context, provider, symbol, period string, from, to time.Time) ([]entity.ReturnPoint, error)
}

// ReturnsHandler はリターンビューのHTTPリクエストを処理します。
type ReturnsHandler struct {
	uc ReturnsUsecase
}

// NewReturnsHandler は指定されたusecaseでReturnsHandlerの新しいインスタンスを生成します。
func NewReturnsHandler(uc ReturnsUsecase) *ReturnsHandler {
	return &ReturnsHandler{uc: uc}
}

// Get は指定されたシリーズの日次または月次リターンをJSONで返します。
//
// エンドポイント例:
// GET /returns/:provider/:symbol?period=daily&from=2015-01-01&to=2015-12-31
func (h *ReturnsHandler) Get(c *gin.Context) {
	provider := c.Param("provider")
	symbol := c.Param("symbol")
	period := c.DefaultQuery("period", "daily")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	points, err := h.uc.GetReturns(c.Request.Context(), provider, symbol, period, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.ReturnResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ReturnResponse{
			Time:   p.Time.UTC().Format("2006-01-02"),
			Month:  p.Month,
			Value:  p.Value,
			Return: p.Return,
		})
	}
	c.JSON(http.StatusOK, out)
}
